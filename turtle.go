package lsystem

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// State is the pen: where it is and where it points. Heading is in radians,
// zero along +X.
type State struct {
	Position Point
	Heading  float64
}

// Stack saves pen states across branches.
type Stack []State

func (s *Stack) Push(st State) {
	*s = append(*s, st)
}

// Pop returns false when the stack is empty.
func (s *Stack) Pop() (State, bool) {
	n := len(*s)
	if n == 0 {
		return State{}, false
	}
	st := (*s)[n-1]
	*s = (*s)[:n-1]
	return st, true
}

func (s Stack) Len() int {
	return len(s)
}

// Turtle is the pen automaton. The zero value starts at the origin facing
// +X with an empty stack.
type Turtle struct {
	state State
	stack Stack
}

func NewTurtle() *Turtle {
	return &Turtle{}
}

func (t *Turtle) Current() State {
	return t.state
}

// Forward moves distance along the heading and returns the new position.
func (t *Turtle) Forward(distance float64) Point {
	dy, dx := math.Sincos(t.state.Heading)
	t.state.Position = t.state.Position.Add(Point{X: distance * dx, Y: distance * dy})
	return t.state.Position
}

func (t *Turtle) Left(degrees float64) {
	t.state.Heading += degrees * math.Pi / 180
}

func (t *Turtle) Right(degrees float64) {
	t.state.Heading -= degrees * math.Pi / 180
}

func (t *Turtle) Push() {
	t.stack.Push(t.state)
}

// Pop restores the last pushed state. On an empty stack the turtle is left
// untouched and false is returned.
func (t *Turtle) Pop() (Point, bool) {
	st, ok := t.stack.Pop()
	if !ok {
		return t.state.Position, false
	}
	t.state = st
	return st.Position, true
}

func (t *Turtle) Depth() int {
	return t.stack.Len()
}

type DiagnosticKind uint8

const (
	UnknownSymbol DiagnosticKind = iota + 1
	StackUnderflow
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnknownSymbol:
		return "unrecognized symbol"
	case StackUnderflow:
		return "nothing to pop"
	default:
		return "diagnostic"
	}
}

// Diagnostic reports a symbol the turtle could not act on. The walk always
// continues past it.
type Diagnostic struct {
	Index  int
	Symbol Symbol
	Kind   DiagnosticKind
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("symbol %d %q: %s", d.Index, d.Symbol, d.Kind)
}

type Diagnostics []Diagnostic

// Count returns how many diagnostics are of kind k.
func (ds Diagnostics) Count(k DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Err folds the diagnostics into a single error, or nil when there are none.
func (ds Diagnostics) Err() error {
	switch len(ds) {
	case 0:
		return nil
	case 1:
		return ds[0]
	}
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.Error()
	}
	return fmt.Errorf("%d turtle diagnostics: %s", len(ds), strings.Join(msgs, "; "))
}

// Render walks symbols left to right and returns the polylines traced by
// the turtle. A pop opens a new polyline at the restored position so that
// no line is drawn across the jump. Anomalies are collected as diagnostics
// and never stop the walk.
func Render(symbols []Symbol, alphabet Alphabet, stepLength, turnAngle float64) (Drawing, Diagnostics) {
	turtle := NewTurtle()
	table := newCommandTable(alphabet)
	drawing := Drawing{Polyline{turtle.Current().Position}}
	var diags Diagnostics

	report := func(i int, s Symbol, k DiagnosticKind) {
		d := Diagnostic{Index: i, Symbol: s, Kind: k}
		diags = append(diags, d)
		Logger().Warn("turtle diagnostic",
			slog.Int("index", i),
			slog.String("symbol", string(s)),
			slog.String("kind", k.String()))
	}

	for i, s := range symbols {
		last := len(drawing) - 1
		switch table.lookup(s) {
		case CommandSkip:
		case CommandDraw:
			drawing[last] = append(drawing[last], turtle.Forward(stepLength))
		case CommandMove:
			pos := turtle.Forward(stepLength)
			if len(drawing[last]) == 1 {
				drawing[last][0] = pos
			} else {
				drawing = append(drawing, Polyline{pos})
			}
		case CommandTurnLeft:
			turtle.Left(turnAngle)
		case CommandTurnRight:
			turtle.Right(turnAngle)
		case CommandPush:
			turtle.Push()
		case CommandPop:
			pos, ok := turtle.Pop()
			if !ok {
				report(i, s, StackUnderflow)
				continue
			}
			drawing = append(drawing, Polyline{pos})
		default:
			report(i, s, UnknownSymbol)
		}
	}

	Logger().Debug("render finished",
		slog.Int("symbols", len(symbols)),
		slog.Int("segments", drawing.Segments()),
		slog.Int("points", drawing.Points()),
		slog.Int("diagnostics", len(diags)))

	return drawing, diags
}
