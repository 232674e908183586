package lsystem

import (
	"log/slog"

	"pgregory.net/rand"
)

// Spec is the full description of one draw: the grammar plus the turtle
// parameters. It is not modified by the engine.
type Spec struct {
	Start      []Symbol
	Rules      RuleSet
	StepLength float64

	// TurnAngle is in degrees.
	TurnAngle float64

	// Scale multiplies StepLength. Zero means 1.
	Scale float64

	// Alphabet overrides how symbols are interpreted by the turtle. The
	// zero value behaves like DefaultAlphabet.
	Alphabet Alphabet
}

// Step returns the effective forward distance.
func (s Spec) Step() float64 {
	if s.Scale == 0 {
		return s.StepLength
	}
	return s.StepLength * s.Scale
}

// LSystem rewrites a Spec generation by generation. It owns its random
// source so that stochastic grammars are reproducible from the seed alone.
// An LSystem must not be shared between goroutines.
type LSystem struct {
	Spec    Spec
	Seed    uint64
	MemPool *BufferPool

	rng        *rand.Rand
	generation int
}

func New(spec Spec, seed uint64) *LSystem {
	l := &LSystem{
		Spec:    spec,
		Seed:    seed,
		MemPool: NewBufferPool(max(len(spec.Start), 1) * 16),
	}
	l.Reset()
	return l
}

// Reset rewinds to generation 0 and reseeds the random source.
func (l *LSystem) Reset() {
	l.rng = rand.New(l.Seed)
	l.generation = 0
	l.MemPool.Reset()
	l.MemPool.AppendSlice(l.Spec.Start)
	l.MemPool.Swap()
}

func (l *LSystem) Generation() int {
	return l.generation
}

// State returns a copy of the current generation.
func (l *LSystem) State() []Symbol {
	return l.MemPool.ReadAll()
}

func (l *LSystem) step() {
	l.MemPool.ResetWritingHead()
	for _, s := range l.MemPool.GetSwap().Symbols {
		rule, ok := l.Spec.Rules.rewrites(s)
		if !ok {
			l.MemPool.Append(s)
			continue
		}
		l.MemPool.AppendSlice(rule.ChooseSuccessor(l.rng))
	}
	l.generation++
	Logger().Debug("generation rewritten",
		slog.Int("generation", l.generation),
		slog.Int("length", l.MemPool.GetLen()),
		slog.Int("capacity", l.MemPool.GetCap()))
	l.MemPool.Swap()
}

// IterateOnce rewrites every symbol of the current generation once and
// returns the new generation.
func (l *LSystem) IterateOnce() []Symbol {
	l.step()
	return l.MemPool.ReadAll()
}

// IterateUntil resets the system and rewrites n generations. The result
// depends only on the spec, the seed and n.
func (l *LSystem) IterateUntil(n int) []Symbol {
	l.Reset()
	for i := 0; i < n; i++ {
		l.step()
	}
	Logger().Debug("rewrite finished",
		slog.Int("generations", l.generation),
		slog.Int("length", len(l.MemPool.GetSwap().Symbols)))
	return l.MemPool.ReadAll()
}

// Render interprets symbols with the spec's step, angle and alphabet.
func (l *LSystem) Render(symbols []Symbol) (Drawing, Diagnostics) {
	return Render(symbols, l.Spec.alphabet(), l.Spec.Step(), l.Spec.TurnAngle)
}

// Draw rewrites n generations and renders the result.
func (l *LSystem) Draw(n int) (Drawing, Diagnostics) {
	return l.Render(l.IterateUntil(n))
}

// Rewrite returns generation n of spec using a fresh random source seeded
// with seed. Negative n is treated as zero.
func Rewrite(spec Spec, generations int, seed uint64) []Symbol {
	return New(spec, seed).IterateUntil(generations)
}

func (s Spec) alphabet() Alphabet {
	if s.Alphabet.IsZero() {
		return DefaultAlphabet(s.Rules)
	}
	if s.Alphabet.Rules == nil {
		a := s.Alphabet
		a.Rules = s.Rules
		return a
	}
	return s.Alphabet
}
