package lsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rand"
)

func TestNewProductionRuleRejectsWeights(t *testing.T) {
	tests := []struct {
		name   string
		weight int
	}{
		{"zero", 0},
		{"negative", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProductionRule("F",
				Production{Replacement: Symbols("FF"), Weight: 1},
				Production{Replacement: Symbols("F"), Weight: tt.weight},
			)
			assert.ErrorIs(t, err, ErrInvalidWeight)
			assert.Contains(t, err.Error(), `"F" alternative 1`)
		})
	}
}

func TestChooseSuccessorSingleTakesNoDraw(t *testing.T) {
	rule := MustProductionRule("F", Production{Replacement: Symbols("F+F"), Weight: 3})

	a, b := rand.New(9), rand.New(9)
	assert.Equal(t, Symbols("F+F"), rule.ChooseSuccessor(a))
	assert.Equal(t, b.Uint64(), a.Uint64(), "generator must not advance")
}

func TestChooseSuccessorEmptyRuleCopiesPredecessor(t *testing.T) {
	rules := RuleSet{"A": MustProductionRule("A")}
	assert.Equal(t, []Symbol{"A"}, rules.Expand("A", rand.New(1)))
	assert.Equal(t, []Symbol{"A"}, Rewrite(Spec{Start: Symbols("A"), Rules: rules}, 3, 0))
}

func TestExpandEmptyRuleWithoutPredecessor(t *testing.T) {
	rules := RuleSet{"A": {}}
	require.NoError(t, rules.Validate())

	assert.Equal(t, []Symbol{"A"}, rules.Expand("A", rand.New(1)))
	assert.Equal(t, Symbols("AB"), Rewrite(Spec{Start: Symbols("AB"), Rules: rules}, 2, 0))
}

func TestTotalWeightFollowsAppendedProductions(t *testing.T) {
	rule := MustProductionRule("F",
		Production{Replacement: Symbols("a"), Weight: 1},
		Production{Replacement: Symbols("b"), Weight: 1},
	)
	require.Equal(t, uint64(2), rule.TotalWeight())

	rule.Productions = append(rule.Productions, Production{Replacement: Symbols("c"), Weight: 2})
	require.Equal(t, uint64(4), rule.TotalWeight())

	const draws = 20000
	counts := map[Symbol]int{}
	rng := rand.New(7)
	for i := 0; i < draws; i++ {
		counts[rule.ChooseSuccessor(rng)[0]]++
	}
	assert.InDelta(t, 0.25, float64(counts["a"])/draws, 0.02)
	assert.InDelta(t, 0.25, float64(counts["b"])/draws, 0.02)
	assert.InDelta(t, 0.5, float64(counts["c"])/draws, 0.02)
}

func TestChooseSuccessorConvergesToWeights(t *testing.T) {
	rule := MustProductionRule("F",
		Production{Replacement: Symbols("a"), Weight: 1},
		Production{Replacement: Symbols("b"), Weight: 2},
		Production{Replacement: Symbols("c"), Weight: 7},
	)
	require.Equal(t, uint64(10), rule.TotalWeight())

	const draws = 100000
	counts := map[Symbol]int{}
	rng := rand.New(2024)
	for i := 0; i < draws; i++ {
		counts[rule.ChooseSuccessor(rng)[0]]++
	}

	assert.InDelta(t, 0.1, float64(counts["a"])/draws, 0.01)
	assert.InDelta(t, 0.2, float64(counts["b"])/draws, 0.01)
	assert.InDelta(t, 0.7, float64(counts["c"])/draws, 0.01)
}

func TestRuleSetExpand(t *testing.T) {
	rules := RuleSet{}
	require.NoError(t, rules.Add("F", Production{Replacement: Symbols("FG"), Weight: 1}))

	rng := rand.New(1)
	assert.Equal(t, Symbols("FG"), rules.Expand("F", rng))
	assert.Equal(t, []Symbol{"G"}, rules.Expand("G", rng))
	assert.True(t, rules.Has("F"))
	assert.False(t, rules.Has("G"))
	assert.False(t, rules.Stochastic())
	assert.True(t, stochasticSpec().Rules.Stochastic())
}

func TestRuleSetValidate(t *testing.T) {
	rules := RuleSet{
		"F": {Predecessor: "F", Productions: []Production{{Replacement: Symbols("F"), Weight: 1}}},
	}
	assert.NoError(t, rules.Validate())

	rules["G"] = ProductionRule{Predecessor: "G", Productions: []Production{{Replacement: Symbols("G"), Weight: 0}}}
	assert.ErrorIs(t, rules.Validate(), ErrInvalidWeight)

	mismatched := RuleSet{"F": {Predecessor: "G"}}
	assert.Error(t, mismatched.Validate())
}

func TestProductionRuleString(t *testing.T) {
	rule := MustProductionRule("F",
		Production{Replacement: Symbols("F+F"), Weight: 1},
		Production{Replacement: Symbols("F"), Weight: 2},
	)
	assert.Equal(t, "\"F\": `1 F+F; 2 F`", rule.String())
}
