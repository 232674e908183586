package lsystem

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"pgregory.net/rand"
)

// ErrInvalidWeight is returned for a production whose weight is not positive.
var ErrInvalidWeight = errors.New("production weight must be positive")

type Production struct {
	Replacement []Symbol
	Weight      int
}

// ProductionRule holds the alternatives of one predecessor. With more than
// one production the successor is drawn proportionally to the weights.
type ProductionRule struct {
	Predecessor Symbol
	Productions []Production
}

func NewProductionRule(predecessor Symbol, productions ...Production) (ProductionRule, error) {
	rule := ProductionRule{
		Predecessor: predecessor,
		Productions: productions,
	}
	if err := rule.validate(); err != nil {
		return ProductionRule{}, err
	}
	return rule, nil
}

// MustProductionRule is like NewProductionRule but panics on invalid weights.
// It is meant for grammars written in code.
func MustProductionRule(predecessor Symbol, productions ...Production) ProductionRule {
	rule, err := NewProductionRule(predecessor, productions...)
	if err != nil {
		panic(err)
	}
	return rule
}

func (r *ProductionRule) String() string {
	var sb strings.Builder
	sb.WriteRune('"')
	sb.WriteString(string(r.Predecessor))
	sb.WriteRune('"')
	sb.WriteString(": `")
	for i, p := range r.Productions {
		sb.WriteString(strconv.Itoa(p.Weight))
		sb.WriteString(" ")
		sb.WriteString(Join(p.Replacement))
		if i != len(r.Productions)-1 {
			sb.WriteString("; ")
		}
	}
	sb.WriteString("`")
	return sb.String()
}

func (r *ProductionRule) Stochastic() bool {
	return len(r.Productions) > 1
}

// TotalWeight is the sum of all alternative weights. It is recomputed on
// every call, so alternatives appended to Productions take part in the draw.
func (r *ProductionRule) TotalWeight() uint64 {
	var total uint64
	for _, p := range r.Productions {
		total += uint64(p.Weight)
	}
	return total
}

// ChooseSuccessor returns the replacement for the predecessor. A rule
// without productions copies the predecessor; a single production takes
// no draw from rng.
func (r *ProductionRule) ChooseSuccessor(rng *rand.Rand) []Symbol {
	switch len(r.Productions) {
	case 0:
		return []Symbol{r.Predecessor}
	case 1:
		return r.Productions[0].Replacement
	}

	random := rng.Uint64n(r.TotalWeight())
	for _, p := range r.Productions {
		w := uint64(p.Weight)
		if random < w {
			return p.Replacement
		}
		random -= w
	}
	// unreachable while weights are positive
	return r.Productions[len(r.Productions)-1].Replacement
}

func (r *ProductionRule) validate() error {
	for i, p := range r.Productions {
		if p.Weight <= 0 {
			return errors.Wrapf(ErrInvalidWeight, "rule %q alternative %d has weight %d", r.Predecessor, i, p.Weight)
		}
	}
	return nil
}

// RuleSet maps a predecessor to its production rule. Symbols without an
// entry rewrite to themselves.
type RuleSet map[Symbol]ProductionRule

// Add registers a rule for predecessor, replacing any previous one.
func (rs RuleSet) Add(predecessor Symbol, productions ...Production) error {
	rule, err := NewProductionRule(predecessor, productions...)
	if err != nil {
		return err
	}
	rs[predecessor] = rule
	return nil
}

func (rs RuleSet) Has(s Symbol) bool {
	_, exists := rs[s]
	return exists
}

// rewrites reports whether s has a rule with at least one production.
func (rs RuleSet) rewrites(s Symbol) (ProductionRule, bool) {
	rule, exists := rs[s]
	return rule, exists && len(rule.Productions) > 0
}

// Expand performs the rewrite of a single symbol. Symbols without a rule,
// or whose rule has no productions, rewrite to themselves.
func (rs RuleSet) Expand(s Symbol, rng *rand.Rand) []Symbol {
	rule, ok := rs.rewrites(s)
	if !ok {
		return []Symbol{s}
	}
	return rule.ChooseSuccessor(rng)
}

// Stochastic reports whether any rule has more than one alternative.
func (rs RuleSet) Stochastic() bool {
	for _, rule := range rs {
		if rule.Stochastic() {
			return true
		}
	}
	return false
}

// Validate checks every weight, for rule sets assembled by hand rather
// than through NewProductionRule.
func (rs RuleSet) Validate() error {
	for _, s := range rs.Predecessors() {
		rule := rs[s]
		if rule.Predecessor != "" && rule.Predecessor != s {
			return errors.Errorf("rule registered under %q has predecessor %q", s, rule.Predecessor)
		}
		if err := rule.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Predecessors returns the rule keys in lexical order.
func (rs RuleSet) Predecessors() []Symbol {
	keys := make(SymbolSet, len(rs))
	for s := range rs {
		keys.Add(s)
	}
	return keys.AsSlice()
}
