package chart

import (
	"testing"

	"chartscout/domain/column"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryShape(t *testing.T) {
	entries := Entries()
	require.NotEmpty(t, entries)

	seen := make(map[Type]map[int]bool)
	for i, spec := range entries {
		assert.Contains(t, []int{1, 2}, spec.Arity, spec.Type)
		require.NotEmpty(t, spec.Combos, spec.Type)
		for _, combo := range spec.Combos {
			assert.Len(t, combo, spec.Arity, spec.Type)
			for _, slot := range combo {
				assert.NotEmpty(t, slot, spec.Type)
			}
		}

		// One entry per (chart type, arity); priority follows
		// declaration order.
		if seen[spec.Type] == nil {
			seen[spec.Type] = make(map[int]bool)
		}
		assert.False(t, seen[spec.Type][spec.Arity], "duplicate spec for %s arity %d", spec.Type, spec.Arity)
		seen[spec.Type][spec.Arity] = true
		assert.Equal(t, i, spec.Priority)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	first := Entries()
	first[0].Type = "Mutated"
	first[0].Combos = nil

	second := Entries()
	assert.NotEqual(t, Type("Mutated"), second[0].Type)
	assert.NotEmpty(t, second[0].Combos)
}

func TestLookup(t *testing.T) {
	// Bar is registered at both arities.
	specs := Lookup(BarChart)
	require.Len(t, specs, 2)
	assert.ElementsMatch(t, []int{1, 2}, []int{specs[0].Arity, specs[1].Arity})

	assert.Empty(t, Lookup(Type("No Such Chart")))
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name     string
		chart    Type
		types    []column.SemanticType
		expected bool
	}{
		{"bar accepts one categorical", BarChart, []column.SemanticType{column.TypeCategorical}, true},
		{"bar accepts one boolean", BarChart, []column.SemanticType{column.TypeBoolean}, true},
		{"bar rejects one numeric", BarChart, []column.SemanticType{column.TypeNumeric}, false},
		{"bar accepts categorical then numeric", BarChart, []column.SemanticType{column.TypeCategorical, column.TypeNumeric}, true},
		{"bar accepts numeric then categorical", BarChart, []column.SemanticType{column.TypeNumeric, column.TypeCategorical}, true},
		{"scatter requires two numerics", ScatterPlot, []column.SemanticType{column.TypeNumeric, column.TypeNumeric}, true},
		{"scatter rejects categorical slot", ScatterPlot, []column.SemanticType{column.TypeCategorical, column.TypeNumeric}, false},
		{"pie rejects two categoricals", PieChart, []column.SemanticType{column.TypeCategorical, column.TypeCategorical}, false},
		{"area accepts datetime then numeric", AreaChart, []column.SemanticType{column.TypeDatetime, column.TypeNumeric}, true},
		{"heatmap accepts two categoricals", Heatmap, []column.SemanticType{column.TypeCategorical, column.TypeCategorical}, true},
		{"table view accepts any single column", TableView, []column.SemanticType{column.TypeOther}, true},
		{"table view accepts any column pair", TableView, []column.SemanticType{column.TypeOther, column.TypeDatetime}, true},
		{"unknown chart is never compatible", Type("No Such Chart"), []column.SemanticType{column.TypeNumeric}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compatible(tt.chart, tt.types))
		})
	}
}

func TestSpecMatchesHonorsSlotOrder(t *testing.T) {
	var swarm Spec
	for _, s := range Lookup(SwarmPlot) {
		if s.Arity == 2 {
			swarm = s
		}
	}
	require.Equal(t, 2, swarm.Arity)

	assert.True(t, swarm.Matches([]column.SemanticType{column.TypeCategorical, column.TypeNumeric}))
	assert.False(t, swarm.Matches([]column.SemanticType{column.TypeCategorical, column.TypeCategorical}))
	assert.False(t, swarm.Matches([]column.SemanticType{column.TypeCategorical}))
}
