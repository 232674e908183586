package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	. "github.com/viktordanov/lturtle"
)

//go:embed presets.yaml
var presetsYAML []byte

var (
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
	presetName  = flag.String("preset", "koch", "built-in grammar to draw")
	file        = flag.String("file", "", "grammar document (YAML); overrides -preset")
	generations = flag.Int("n", -1, "generations to rewrite (default: from the grammar)")
	seed        = flag.Uint64("seed", 0, "random seed for stochastic grammars (default: from the grammar)")
	step        = flag.Float64("step", 0, "step length (default: from the grammar)")
	angle       = flag.Float64("angle", 0, "turn angle in degrees (default: from the grammar)")
	format      = flag.String("format", "yaml", "output format: yaml or json")
	output      = flag.String("o", "-", "output file, - for stdout")
	chart       = flag.String("chart", "", "write the growth chart of the grammar to this HTML file")
	serve       = flag.String("serve", "", "serve the growth chart on this address, e.g. :8081")
	verbose     = flag.Bool("v", false, "debug logging")
	listPresets = flag.Bool("list", false, "list built-in presets and exit")
)

type result struct {
	Name        string     `json:"name" yaml:"name"`
	Generations int        `json:"generations" yaml:"generations"`
	Seed        uint64     `json:"seed" yaml:"seed"`
	Symbols     int        `json:"symbols" yaml:"symbols"`
	Diagnostics int        `json:"diagnostics" yaml:"diagnostics"`
	Bounds      Rect       `json:"bounds" yaml:"bounds"`
	Polylines   []Polyline `json:"polylines" yaml:"polylines"`
}

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	presets, err := DecodeAll(bytes.NewReader(presetsYAML))
	if err != nil {
		log.Fatalf("Error while decoding presets: %v", err)
	}
	if *listPresets {
		for _, p := range presets {
			fmt.Println(p.Name)
		}
		return
	}

	doc, err := selectDocument(presets, *presetName, *file)
	if err != nil {
		log.Fatal(err)
	}
	applyOverrides(doc)

	spec, err := doc.Spec()
	if err != nil {
		log.Fatalf("Error while importing grammar: %v", err)
	}

	if *chart != "" {
		if err := writeChart(*chart, doc.Name, spec, doc.Generations, doc.Seed); err != nil {
			log.Fatal(err)
		}
	}

	if *serve != "" {
		http.HandleFunc("/", GrowthHandler(doc.Name, spec, doc.Generations, doc.Seed))
		log.Println("Serving growth chart of", doc.Name, "on", *serve)
		log.Fatal(http.ListenAndServe(*serve, nil))
	}

	res := draw(doc, spec)

	w := io.Writer(os.Stdout)
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := encode(w, *format, res); err != nil {
		log.Fatal(err)
	}
}

func selectDocument(presets []*Document, name, path string) (*Document, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		doc, err := NewDecoder(f).Decode()
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		if doc.Name == "" {
			doc.Name = path
		}
		return doc, nil
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("unknown preset %q (use -list)", name)
}

func applyOverrides(doc *Document) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			doc.Generations = *generations
		case "seed":
			doc.Seed = *seed
		case "step":
			doc.Step = *step
		case "angle":
			doc.Angle = *angle
		}
	})
}

func draw(doc *Document, spec Spec) result {
	lsys := New(spec, doc.Seed)
	symbols := lsys.IterateUntil(doc.Generations)
	drawing, diags := lsys.Render(symbols)
	if err := diags.Err(); err != nil {
		Logger().Warn("grammar produced turtle diagnostics", slog.Int("count", len(diags)), slog.Any("error", err))
	}
	return result{
		Name:        doc.Name,
		Generations: doc.Generations,
		Seed:        doc.Seed,
		Symbols:     len(symbols),
		Diagnostics: len(diags),
		Bounds:      drawing.Bounds(),
		Polylines:   drawing,
	}
}

func writeChart(path, title string, spec Spec, n int, seed uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return RenderGrowthChart(f, title, AnalyseGrowth(spec, n, seed))
}

func encode(w io.Writer, format string, res result) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		return errors.Errorf("unknown format %q", format)
	}
}
