// Package profile computes type-dependent descriptive summaries of
// columns. Profiling is a pure function of (values, semantic type):
// identical input always yields an identical profile.
package profile

import (
	"math"
	"sort"
	"time"

	"chartscout/domain/column"
	"chartscout/internal/detect"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// topCategories caps the frequency list on categorical profiles.
const topCategories = 5

// shapeMinSamples is the minimum sample size for distribution-shape
// markers. Below this the skewness/kurtosis estimates are noise.
const shapeMinSamples = 8

// Profiler derives column profiles. Values that fail the parse for the
// given type are excluded from its statistics; missing values are
// excluded from every statistic but always counted separately.
type Profiler struct {
	config detect.Config
}

// NewProfiler creates a profiler sharing the detector's policy (for the
// datetime format list).
func NewProfiler(config detect.Config) *Profiler {
	return &Profiler{config: config}
}

// Profile computes the summary for a column under the given semantic
// type. Exactly one type-specific stat block is populated. Empty and
// all-missing columns yield neutral profiles with zero counts and no
// moment statistics.
func (p *Profiler) Profile(values []column.Value, t column.SemanticType) column.Profile {
	prof := column.Profile{Type: t}
	var present []string
	for _, v := range values {
		if v.IsMissing {
			prof.MissingCount++
			continue
		}
		present = append(present, v.Raw)
	}

	switch t {
	case column.TypeNumeric:
		prof.Numeric = numericStats(present)
	case column.TypeCategorical:
		prof.Categorical = categoricalStats(present)
	case column.TypeDatetime:
		prof.Datetime = datetimeStats(present, p.config.DatetimeFormats)
	case column.TypeBoolean:
		prof.Boolean = booleanStats(present)
	case column.TypeText:
		prof.Text = textStats(present)
	default:
		prof.Other = &column.OtherStats{Distinct: distinct(present)}
	}
	return prof
}

func numericStats(present []string) *column.NumericStats {
	var parsed []float64
	seen := make(map[float64]struct{})
	for _, s := range present {
		v, ok := detect.ParseNumeric(s)
		if !ok {
			continue
		}
		parsed = append(parsed, v)
		seen[v] = struct{}{}
	}

	ns := &column.NumericStats{Count: len(parsed), Distinct: len(seen)}
	if len(parsed) == 0 {
		return ns
	}

	mean, _ := stats.Mean(parsed)
	min, _ := stats.Min(parsed)
	max, _ := stats.Max(parsed)
	median, _ := stats.Median(parsed)
	stdDev, _ := stats.StandardDeviationPopulation(parsed)

	ns.Moments = &column.NumericMoments{
		Mean:   mean,
		Min:    min,
		Max:    max,
		Median: median,
		StdDev: stdDev,
	}

	// Percentile fails for very small samples; a failed quartile stays
	// absent instead of leaking NaN into the profile.
	q25, err25 := stats.Percentile(parsed, 25)
	q75, err75 := stats.Percentile(parsed, 75)
	if err25 == nil && err75 == nil {
		ns.Quartiles = &column.QuartileStats{Q25: q25, Q75: q75}
	}

	ns.Shape = shapeStats(parsed, mean, stdDev)
	return ns
}

// shapeStats computes population skewness, excess kurtosis, and a
// Jarque-Bera normality p-value via the chi-squared distribution.
func shapeStats(parsed []float64, mean, stdDev float64) *column.ShapeStats {
	n := len(parsed)
	if n < shapeMinSamples || stdDev == 0 {
		return nil
	}

	var m3, m4 float64
	for _, v := range parsed {
		d := v - mean
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m3 /= float64(n)
	m4 /= float64(n)

	variance := stdDev * stdDev
	skew := m3 / math.Pow(variance, 1.5)
	kurt := m4/(variance*variance) - 3

	jb := float64(n) / 6 * (skew*skew + kurt*kurt/4)
	chi := distuv.ChiSquared{K: 2}
	normalP := 1 - chi.CDF(jb)

	return &column.ShapeStats{Skewness: skew, Kurtosis: kurt, NormalP: normalP}
}

func categoricalStats(present []string) *column.CategoricalStats {
	counts := make(map[string]int)
	var order []string
	for _, s := range present {
		if _, ok := counts[s]; !ok {
			order = append(order, s)
		}
		counts[s]++
	}

	// Stable sort over first-seen order breaks frequency ties by first
	// appearance in the column.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := make([]column.CategoryCount, 0, topCategories)
	for _, v := range order {
		if len(top) == topCategories {
			break
		}
		top = append(top, column.CategoryCount{Value: v, Count: counts[v]})
	}

	return &column.CategoricalStats{Count: len(present), Distinct: len(counts), Top: top}
}

func datetimeStats(present []string, formats []string) *column.DatetimeStats {
	layout, ok := detect.MatchingDatetimeFormat(present, formats)
	if !ok || len(present) == 0 {
		return &column.DatetimeStats{Distinct: distinct(present)}
	}

	var parsed []time.Time
	seen := make(map[time.Time]struct{})
	for _, s := range present {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
		seen[t] = struct{}{}
	}

	ds := &column.DatetimeStats{Count: len(parsed), Distinct: len(seen)}
	if len(parsed) == 0 {
		return ds
	}

	min, max := parsed[0], parsed[0]
	for _, t := range parsed[1:] {
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	ds.Min = &min
	ds.Max = &max
	ds.Granularity = inferGranularity(parsed)
	return ds
}

// inferGranularity finds the coarsest resolution that loses no
// information across the parsed timestamps.
func inferGranularity(parsed []time.Time) column.Granularity {
	granularity := column.GranularityYear
	for _, t := range parsed {
		switch {
		case t.Second() != 0 || t.Nanosecond() != 0:
			return column.GranularitySecond
		case t.Minute() != 0:
			granularity = finer(granularity, column.GranularityMinute)
		case t.Hour() != 0:
			granularity = finer(granularity, column.GranularityHour)
		case t.Day() != 1:
			granularity = finer(granularity, column.GranularityDay)
		case t.Month() != time.January:
			granularity = finer(granularity, column.GranularityMonth)
		}
	}
	return granularity
}

var granularityRank = map[column.Granularity]int{
	column.GranularityYear:   0,
	column.GranularityMonth:  1,
	column.GranularityDay:    2,
	column.GranularityHour:   3,
	column.GranularityMinute: 4,
	column.GranularitySecond: 5,
}

func finer(a, b column.Granularity) column.Granularity {
	if granularityRank[b] > granularityRank[a] {
		return b
	}
	return a
}

func booleanStats(present []string) *column.BooleanStats {
	bs := &column.BooleanStats{}
	for _, s := range present {
		v, ok := detect.ParseBoolToken(s)
		if !ok {
			continue
		}
		if v {
			bs.TrueCount++
		} else {
			bs.FalseCount++
		}
	}
	return bs
}

func textStats(present []string) *column.TextStats {
	ts := &column.TextStats{Count: len(present), Distinct: distinct(present)}
	if len(present) == 0 {
		return ts
	}
	total := 0
	for _, s := range present {
		total += len(s)
		if len(s) > ts.MaxLength {
			ts.MaxLength = len(s)
		}
	}
	ts.AvgLength = float64(total) / float64(len(present))
	return ts
}

func distinct(present []string) int {
	seen := make(map[string]struct{}, len(present))
	for _, s := range present {
		seen[s] = struct{}{}
	}
	return len(seen)
}
