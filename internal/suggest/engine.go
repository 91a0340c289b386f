// Package suggest ranks chart types for a selection of 1-2 columns.
// Candidate charts come from the registry; ranking is an explicit,
// ordered list of (predicate, score-delta) rules so the heuristics are
// individually testable and extensible.
package suggest

import (
	"fmt"
	"sort"

	"chartscout/domain/chart"
	"chartscout/domain/column"
	"chartscout/internal/errors"
)

// Config holds the scoring policy constants.
type Config struct {
	// PieMaxDistinct is the largest category count for which a pie
	// chart is still preferred over a bar chart.
	PieMaxDistinct int
	// HistogramMinDistinct is the numeric cardinality above which
	// binned distribution charts are favored.
	HistogramMinDistinct int
	// SkewThreshold is the absolute skewness above which a density
	// plot is favored over a histogram.
	SkewThreshold float64
}

// DefaultConfig returns the documented default scoring policy.
func DefaultConfig() Config {
	return Config{
		PieMaxDistinct:       8,
		HistogramMinDistinct: 20,
		SkewThreshold:        1.0,
	}
}

// baseScore is every matching chart's starting score before rule deltas.
const baseScore = 1.0

// Rule is one scoring heuristic: a named predicate and the score delta
// applied when it holds. Rules are evaluated in declaration order.
type Rule struct {
	Name    string
	Applies func(spec chart.Spec, selection []column.Info) bool
	Delta   float64
}

// Engine produces ranked chart suggestions. It holds only immutable
// policy, so calls are independent and safe to repeat or run
// concurrently.
type Engine struct {
	config Config
	rules  []Rule
}

// NewEngine creates an engine with the default rule set for the given
// policy.
func NewEngine(config Config) *Engine {
	return &Engine{config: config, rules: defaultRules(config)}
}

// Suggest returns chart suggestions for an ordered selection of 1 or 2
// columns, sorted by descending score with ties broken by the
// registry's fixed priority order. An empty result is a valid state,
// not an error. A selection outside 1-2 columns fails with
// INVALID_SELECTION.
func (e *Engine) Suggest(selection []column.Info) ([]chart.Suggestion, error) {
	if len(selection) < 1 || len(selection) > 2 {
		return nil, errors.InvalidSelection(
			fmt.Sprintf("selection must have 1 or 2 columns, got %d", len(selection)))
	}

	types := make([]column.SemanticType, len(selection))
	for i, info := range selection {
		types[i] = info.Type
	}

	var out []chart.Suggestion
	for _, spec := range chart.Entries() {
		if !spec.Matches(types) {
			continue
		}
		out = append(out, chart.Suggestion{Spec: spec, Score: e.score(spec, selection)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Spec.Priority < out[j].Spec.Priority
	})
	return out, nil
}

func (e *Engine) score(spec chart.Spec, selection []column.Info) float64 {
	score := baseScore
	for _, rule := range e.rules {
		if rule.Applies(spec, selection) {
			score += rule.Delta
		}
	}
	return score
}

// Rules returns the engine's rule set in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

func defaultRules(config Config) []Rule {
	return []Rule{
		{
			Name:  "high-cardinality numeric favors histogram",
			Delta: 0.5,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				return spec.Type == chart.Histogram &&
					singleNumericDistinctAtLeast(sel, config.HistogramMinDistinct)
			},
		},
		{
			Name:  "high-cardinality numeric favors density",
			Delta: 0.4,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				return spec.Type == chart.DensityPlot &&
					singleNumericDistinctAtLeast(sel, config.HistogramMinDistinct)
			},
		},
		{
			Name:  "low-cardinality numeric demotes histogram",
			Delta: -0.3,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				return spec.Type == chart.Histogram &&
					len(sel) == 1 && sel[0].Type == column.TypeNumeric &&
					!singleNumericDistinctAtLeast(sel, config.HistogramMinDistinct)
			},
		},
		{
			Name:  "skewed numeric favors density over histogram",
			Delta: 0.2,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				if spec.Type != chart.DensityPlot || len(sel) != 1 {
					return false
				}
				ns := sel[0].Profile.Numeric
				if ns == nil || ns.Shape == nil {
					return false
				}
				return abs(ns.Shape.Skewness) > config.SkewThreshold
			},
		},
		{
			Name:  "few categories favor pie",
			Delta: 0.4,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				if spec.Type != chart.PieChart {
					return false
				}
				d, ok := categoricalDistinct(sel)
				return ok && d <= config.PieMaxDistinct
			},
		},
		{
			Name:  "many categories demote pie",
			Delta: -0.6,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				if spec.Type != chart.PieChart {
					return false
				}
				d, ok := categoricalDistinct(sel)
				return ok && d > config.PieMaxDistinct
			},
		},
		{
			Name:  "degenerate numeric axis demotes scatter",
			Delta: -0.8,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				if spec.Type != chart.ScatterPlot {
					return false
				}
				for _, info := range sel {
					if info.Type == column.TypeNumeric && info.Profile.DistinctCount() < 2 {
						return true
					}
				}
				return false
			},
		},
		{
			Name:  "datetime slot favors time-series charts",
			Delta: 0.3,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				switch spec.Type {
				case chart.TimeSeriesPlot, chart.AreaChart, chart.EventTimeline,
					chart.LineChart, chart.BarOverTime:
				default:
					return false
				}
				for _, info := range sel {
					if info.Type == column.TypeDatetime {
						return true
					}
				}
				return false
			},
		},
		{
			Name:  "table view is a last resort",
			Delta: -0.5,
			Applies: func(spec chart.Spec, sel []column.Info) bool {
				return spec.Type == chart.TableView
			},
		},
	}
}

func singleNumericDistinctAtLeast(sel []column.Info, min int) bool {
	return len(sel) == 1 && sel[0].Type == column.TypeNumeric &&
		sel[0].Profile.DistinctCount() >= min
}

// categoricalDistinct returns the distinct count of the first
// categorical or boolean column in the selection.
func categoricalDistinct(sel []column.Info) (int, bool) {
	for _, info := range sel {
		if info.Type == column.TypeCategorical || info.Type == column.TypeBoolean {
			return info.Profile.DistinctCount(), true
		}
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
