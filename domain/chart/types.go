package chart

import "chartscout/domain/column"

// Type identifies a chart type. Identifiers match what the plotting
// collaborator accepts.
type Type string

const (
	Histogram      Type = "Histogram"
	BarChart       Type = "Bar Chart"
	ScatterPlot    Type = "Scatter Plot"
	LineChart      Type = "Line Chart"
	BoxPlot        Type = "Box Plot"
	PieChart       Type = "Pie Chart"
	DensityPlot    Type = "Density Plot"
	TimeSeriesPlot Type = "Time Series Plot"
	AreaChart      Type = "Area Chart"
	CountPlot      Type = "Count Plot"
	ViolinPlot     Type = "Violin Plot"
	HexbinPlot     Type = "Hexbin Plot"
	JointPlot      Type = "Joint Plot"
	SwarmPlot      Type = "Swarm Plot"
	StripPlot      Type = "Strip Plot"
	Heatmap        Type = "Heatmap"
	StackedBar     Type = "Stacked Bar Chart"
	BarOverTime    Type = "Bar Chart over Time"
	EventTimeline  Type = "Event Timeline"
	WordCloud      Type = "Word Cloud"
	TextLengthHist Type = "Text Length Histogram"
	WordCloudComp  Type = "Word Cloud Comparison"
	TextLengthComp Type = "Text Length Comparison"
	TableView      Type = "Table View"
)

// TypeSet is the set of semantic types one column slot accepts.
type TypeSet []column.SemanticType

// Contains reports whether t is in the set.
func (s TypeSet) Contains(t column.SemanticType) bool {
	for _, st := range s {
		if st == t {
			return true
		}
	}
	return false
}

// Combo is one accepted assignment of semantic types to column slots,
// one TypeSet per slot in order. Slot order is significant.
type Combo []TypeSet

// Spec declares one chart type at one column arity: which ordered type
// combinations it accepts, and its fixed tie-break priority (lower wins).
type Spec struct {
	Type     Type    `json:"type"`
	Arity    int     `json:"arity"`
	Combos   []Combo `json:"combos"`
	Priority int     `json:"priority"`
}

// Matches reports whether the ordered selection types satisfy any of
// the spec's accepted combinations.
func (s Spec) Matches(types []column.SemanticType) bool {
	if len(types) != s.Arity {
		return false
	}
	for _, combo := range s.Combos {
		ok := true
		for i, slot := range combo {
			if !slot.Contains(types[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Suggestion is a ranked chart recommendation for a selection. The score
// is a heuristic ordering signal, not a probability.
type Suggestion struct {
	Spec  Spec    `json:"spec"`
	Score float64 `json:"score"`
}
