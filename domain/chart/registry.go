package chart

import "chartscout/domain/column"

// Slot shorthands for the registry table.
var (
	num     = TypeSet{column.TypeNumeric}
	cat     = TypeSet{column.TypeCategorical}
	dt      = TypeSet{column.TypeDatetime}
	boolean = TypeSet{column.TypeBoolean}
	txt     = TypeSet{column.TypeText}
	catBool = TypeSet{column.TypeCategorical, column.TypeBoolean}
	anyCol  = TypeSet(column.AllTypes())
)

// registry is the static chart catalog. It is built once at process
// start and never mutated; declaration order fixes the tie-break
// priority used by the suggestion engine. One entry exists per
// (chart type, arity) pair.
var registry = buildRegistry()

func buildRegistry() []Spec {
	specs := []Spec{
		// Single-column charts.
		{Type: Histogram, Arity: 1, Combos: []Combo{{num}, {dt}}},
		{Type: BarChart, Arity: 1, Combos: []Combo{{catBool}}},
		{Type: PieChart, Arity: 1, Combos: []Combo{{catBool}}},
		{Type: CountPlot, Arity: 1, Combos: []Combo{{catBool}}},
		{Type: BoxPlot, Arity: 1, Combos: []Combo{{num}}},
		{Type: DensityPlot, Arity: 1, Combos: []Combo{{num}}},
		{Type: ViolinPlot, Arity: 1, Combos: []Combo{{num}}},
		{Type: TimeSeriesPlot, Arity: 1, Combos: []Combo{{dt}}},
		{Type: EventTimeline, Arity: 1, Combos: []Combo{{dt}}},
		{Type: WordCloud, Arity: 1, Combos: []Combo{{txt}}},
		{Type: TextLengthHist, Arity: 1, Combos: []Combo{{txt}}},
		{Type: TableView, Arity: 1, Combos: []Combo{{anyCol}}},

		// Two-column charts. Slot order is significant; symmetric
		// charts list both orders explicitly.
		{Type: ScatterPlot, Arity: 2, Combos: []Combo{{num, num}, {txt, num}, {num, txt}}},
		{Type: LineChart, Arity: 2, Combos: []Combo{{num, num}, {dt, num}, {num, dt}, {dt, cat}, {cat, dt}}},
		{Type: BarChart, Arity: 2, Combos: []Combo{
			{catBool, num}, {num, catBool},
			{cat, cat}, {boolean, cat}, {cat, boolean},
			{txt, num}, {num, txt}, {txt, cat}, {cat, txt},
		}},
		{Type: BoxPlot, Arity: 2, Combos: []Combo{{catBool, num}, {num, catBool}}},
		{Type: ViolinPlot, Arity: 2, Combos: []Combo{{catBool, num}, {num, catBool}}},
		{Type: PieChart, Arity: 2, Combos: []Combo{{cat, num}, {num, cat}}},
		{Type: SwarmPlot, Arity: 2, Combos: []Combo{{cat, num}, {num, cat}}},
		{Type: StripPlot, Arity: 2, Combos: []Combo{{cat, num}, {num, cat}}},
		{Type: Heatmap, Arity: 2, Combos: []Combo{{cat, cat}, {boolean, cat}, {cat, boolean}, {txt, cat}, {cat, txt}}},
		{Type: StackedBar, Arity: 2, Combos: []Combo{{cat, cat}, {boolean, cat}, {cat, boolean}}},
		{Type: TimeSeriesPlot, Arity: 2, Combos: []Combo{{dt, num}, {num, dt}}},
		{Type: AreaChart, Arity: 2, Combos: []Combo{{dt, num}, {num, dt}}},
		{Type: BarOverTime, Arity: 2, Combos: []Combo{{dt, cat}, {cat, dt}}},
		{Type: HexbinPlot, Arity: 2, Combos: []Combo{{num, num}}},
		{Type: JointPlot, Arity: 2, Combos: []Combo{{num, num}}},
		{Type: WordCloudComp, Arity: 2, Combos: []Combo{{txt, txt}}},
		{Type: TextLengthComp, Arity: 2, Combos: []Combo{{txt, txt}}},
		{Type: TableView, Arity: 2, Combos: []Combo{{anyCol, anyCol}}},
	}

	for i := range specs {
		specs[i].Priority = i
	}
	return specs
}

// Entries returns a copy of the catalog so callers cannot mutate the
// shared table.
func Entries() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the specs registered for a chart type, one per arity.
// An empty result means the identifier is unknown.
func Lookup(t Type) []Spec {
	var out []Spec
	for _, s := range registry {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// Compatible reports whether the chart type accepts the ordered
// selection types. This is the single source of truth the plotting
// collaborator must consult before rendering.
func Compatible(t Type, types []column.SemanticType) bool {
	for _, s := range Lookup(t) {
		if s.Matches(types) {
			return true
		}
	}
	return false
}
