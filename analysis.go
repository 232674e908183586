package lsystem

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// GenerationStats describes one generation of a rewrite.
type GenerationStats struct {
	Generation int
	Length     int
	Draws      int
	Branches   int

	// Growth is Length divided by the previous generation's Length.
	Growth float64
}

// AnalyseGrowth rewrites spec generation by generation and records how the
// string grows. The counts use the same alphabet as rendering does.
// Negative generations are treated as zero.
func AnalyseGrowth(spec Spec, generations int, seed uint64) []GenerationStats {
	generations = max(generations, 0)
	l := New(spec, seed)
	table := newCommandTable(spec.alphabet())

	sample := func(symbols []Symbol, prev int) GenerationStats {
		st := GenerationStats{Generation: l.Generation(), Length: len(symbols)}
		for _, s := range symbols {
			switch table.lookup(s) {
			case CommandDraw:
				st.Draws++
			case CommandPush:
				st.Branches++
			}
		}
		if prev > 0 {
			st.Growth = float64(st.Length) / float64(prev)
		}
		return st
	}

	stats := make([]GenerationStats, 0, generations+1)
	stats = append(stats, sample(l.State(), 0))
	for i := 0; i < generations; i++ {
		stats = append(stats, sample(l.IterateOnce(), stats[i].Length))
	}
	return stats
}

// RenderGrowthChart writes an HTML page with a bar chart of the symbol
// counts per generation.
func RenderGrowthChart(w io.Writer, title string, stats []GenerationStats) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Growth Analysis",
			Subtitle: title + " over " + strconv.Itoa(len(stats)) + " generations (last growth " + lastGrowth(stats) + ")",
		}))

	labels := make([]string, len(stats))
	lengths := make([]opts.BarData, len(stats))
	draws := make([]opts.BarData, len(stats))
	branches := make([]opts.BarData, len(stats))
	for i, st := range stats {
		labels[i] = strconv.Itoa(st.Generation)
		lengths[i] = opts.BarData{Value: st.Length}
		draws[i] = opts.BarData{Value: st.Draws}
		branches[i] = opts.BarData{Value: st.Branches}
	}

	bar.SetXAxis(labels).
		AddSeries("Symbols", lengths).
		AddSeries("Draws", draws).
		AddSeries("Branches", branches)
	return bar.Render(w)
}

func lastGrowth(stats []GenerationStats) string {
	if len(stats) == 0 {
		return "n/a"
	}
	return strconv.FormatFloat(stats[len(stats)-1].Growth, 'f', 4, 64)
}

// GrowthHandler serves the growth chart of spec.
func GrowthHandler(title string, spec Spec, generations int, seed uint64) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		if err := RenderGrowthChart(&buf, title, AnalyseGrowth(spec, generations, seed)); err != nil {
			Logger().Error("rendering growth chart", slog.String("title", title), slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := buf.WriteTo(w); err != nil {
			Logger().Warn("writing growth chart", slog.String("title", title), slog.Any("error", err))
		}
	}
}
