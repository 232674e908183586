package lsystem

import "math"

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Polyline is a connected run of points.
type Polyline []Point

// Drawing holds one polyline per branch segment, in the order the turtle
// opened them.
type Drawing []Polyline

type Rect struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Segments is the number of polylines.
func (d Drawing) Segments() int {
	return len(d)
}

// Points counts every point of every polyline.
func (d Drawing) Points() int {
	n := 0
	for _, pl := range d {
		n += len(pl)
	}
	return n
}

// Bounds returns the smallest rectangle holding every point. An empty
// drawing has zero bounds.
func (d Drawing) Bounds() Rect {
	if d.Points() == 0 {
		return Rect{}
	}
	r := Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, pl := range d {
		for _, p := range pl {
			r.Min.X = math.Min(p.X, r.Min.X)
			r.Min.Y = math.Min(p.Y, r.Min.Y)
			r.Max.X = math.Max(p.X, r.Max.X)
			r.Max.Y = math.Max(p.Y, r.Max.Y)
		}
	}
	return r
}
