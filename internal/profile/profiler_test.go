package profile

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"chartscout/domain/column"
	"chartscout/internal/detect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vals(raw ...string) []column.Value {
	out := make([]column.Value, len(raw))
	for i, s := range raw {
		out[i] = column.NewValue(s)
	}
	return out
}

func newProfiler() *Profiler {
	return NewProfiler(detect.DefaultConfig())
}

func TestNumericProfile(t *testing.T) {
	p := newProfiler()
	values := append(vals("1", "2", "3", "4"), column.NewMissingValue())

	prof := p.Profile(values, column.TypeNumeric)

	assert.Equal(t, column.TypeNumeric, prof.Type)
	assert.Equal(t, 1, prof.MissingCount)
	require.NotNil(t, prof.Numeric)
	assert.Nil(t, prof.Categorical)
	assert.Nil(t, prof.Text)

	ns := prof.Numeric
	assert.Equal(t, 4, ns.Count)
	assert.Equal(t, 4, ns.Distinct)
	require.NotNil(t, ns.Moments)
	assert.InDelta(t, 2.5, ns.Moments.Mean, 1e-9)
	assert.InDelta(t, 1, ns.Moments.Min, 1e-9)
	assert.InDelta(t, 4, ns.Moments.Max, 1e-9)
	assert.InDelta(t, 2.5, ns.Moments.Median, 1e-9)
	// Population standard deviation of 1..4.
	assert.InDelta(t, 1.1180339887, ns.Moments.StdDev, 1e-6)
	require.NotNil(t, ns.Quartiles)
	assert.InDelta(t, 1.5, ns.Quartiles.Q25, 1e-9)
	assert.InDelta(t, 3.5, ns.Quartiles.Q75, 1e-9)
	// Below the minimum sample size for shape markers.
	assert.Nil(t, ns.Shape)
}

func TestNumericProfileSmallSamples(t *testing.T) {
	p := newProfiler()

	for _, values := range [][]column.Value{
		vals("1", "2"),
		vals("1", "2", "3"),
	} {
		prof := p.Profile(values, column.TypeNumeric)

		require.NotNil(t, prof.Numeric)
		require.NotNil(t, prof.Numeric.Moments)
		assert.False(t, math.IsNaN(prof.Numeric.Moments.Mean))
		// Quartiles are undefined this small and must stay absent
		// rather than carry NaN.
		assert.Nil(t, prof.Numeric.Quartiles)

		// The profile must survive serialization, which rejects NaN.
		_, err := json.Marshal(prof)
		require.NoError(t, err)
	}
}

func TestNumericProfileShape(t *testing.T) {
	p := newProfiler()
	// Right-skewed sample, large enough for shape markers.
	values := vals("1", "1", "1", "2", "2", "3", "4", "20", "25", "30")

	prof := p.Profile(values, column.TypeNumeric)

	require.NotNil(t, prof.Numeric)
	require.NotNil(t, prof.Numeric.Shape)
	assert.Greater(t, prof.Numeric.Shape.Skewness, 0.0)
	assert.GreaterOrEqual(t, prof.Numeric.Shape.NormalP, 0.0)
	assert.LessOrEqual(t, prof.Numeric.Shape.NormalP, 1.0)
}

func TestNumericProfileNeutralWhenEmpty(t *testing.T) {
	p := newProfiler()

	prof := p.Profile(nil, column.TypeNumeric)

	assert.Equal(t, 0, prof.MissingCount)
	require.NotNil(t, prof.Numeric)
	assert.Equal(t, 0, prof.Numeric.Count)
	assert.Nil(t, prof.Numeric.Moments)
	assert.Nil(t, prof.Numeric.Shape)
}

func TestCategoricalProfileTieBreak(t *testing.T) {
	p := newProfiler()
	values := vals("b", "a", "b", "a", "c")

	prof := p.Profile(values, column.TypeCategorical)

	require.NotNil(t, prof.Categorical)
	cs := prof.Categorical
	assert.Equal(t, 5, cs.Count)
	assert.Equal(t, 3, cs.Distinct)
	// b and a tie at two occurrences; b appeared first in the column.
	require.Len(t, cs.Top, 3)
	assert.Equal(t, column.CategoryCount{Value: "b", Count: 2}, cs.Top[0])
	assert.Equal(t, column.CategoryCount{Value: "a", Count: 2}, cs.Top[1])
	assert.Equal(t, column.CategoryCount{Value: "c", Count: 1}, cs.Top[2])
}

func TestCategoricalProfileTopCap(t *testing.T) {
	p := newProfiler()
	values := vals("a", "b", "c", "d", "e", "f", "g", "a")

	prof := p.Profile(values, column.TypeCategorical)

	require.NotNil(t, prof.Categorical)
	assert.Equal(t, 7, prof.Categorical.Distinct)
	assert.Len(t, prof.Categorical.Top, topCategories)
	assert.Equal(t, "a", prof.Categorical.Top[0].Value)
}

func TestBooleanProfile(t *testing.T) {
	p := newProfiler()

	prof := p.Profile(vals("true", "false", "yes", "no", "1"), column.TypeBoolean)

	require.NotNil(t, prof.Boolean)
	assert.Equal(t, 3, prof.Boolean.TrueCount)
	assert.Equal(t, 2, prof.Boolean.FalseCount)
}

func TestDatetimeProfile(t *testing.T) {
	p := newProfiler()

	prof := p.Profile(vals("2021-03-01", "2021-01-01", "2021-02-01"), column.TypeDatetime)

	require.NotNil(t, prof.Datetime)
	ds := prof.Datetime
	assert.Equal(t, 3, ds.Count)
	assert.Equal(t, 3, ds.Distinct)
	require.NotNil(t, ds.Min)
	require.NotNil(t, ds.Max)
	assert.Equal(t, time.January, ds.Min.Month())
	assert.Equal(t, time.March, ds.Max.Month())
	assert.Equal(t, column.GranularityMonth, ds.Granularity)
}

func TestDatetimeGranularity(t *testing.T) {
	p := newProfiler()

	tests := []struct {
		name     string
		values   []column.Value
		expected column.Granularity
	}{
		{"mid-month days", vals("2021-01-15", "2021-02-20"), column.GranularityDay},
		{"first-of-month dates", vals("2021-01-01", "2021-05-01"), column.GranularityMonth},
		{"new year dates", vals("2020-01-01", "2021-01-01"), column.GranularityYear},
		{"hourly timestamps", vals("2021-01-01 10:00:00", "2021-01-01 11:00:00"), column.GranularityHour},
		{"minute timestamps", vals("2021-01-01 10:30:00", "2021-01-01 10:45:00"), column.GranularityMinute},
		{"second timestamps", vals("2021-01-01 10:30:15", "2021-01-01 10:30:16"), column.GranularitySecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := p.Profile(tt.values, column.TypeDatetime)
			require.NotNil(t, prof.Datetime)
			assert.Equal(t, tt.expected, prof.Datetime.Granularity)
		})
	}
}

func TestTextProfile(t *testing.T) {
	p := newProfiler()

	prof := p.Profile(vals("abcd", "ab"), column.TypeText)

	require.NotNil(t, prof.Text)
	assert.Equal(t, 2, prof.Text.Count)
	assert.Equal(t, 2, prof.Text.Distinct)
	assert.InDelta(t, 3.0, prof.Text.AvgLength, 1e-9)
	assert.Equal(t, 4, prof.Text.MaxLength)
}

func TestAllMissingProfile(t *testing.T) {
	p := newProfiler()
	values := []column.Value{column.NewMissingValue(), column.NewMissingValue(), column.NewMissingValue()}

	prof := p.Profile(values, column.TypeOther)

	assert.Equal(t, 3, prof.MissingCount)
	require.NotNil(t, prof.Other)
	assert.Equal(t, 0, prof.Other.Distinct)
	assert.Nil(t, prof.Numeric)
	assert.Nil(t, prof.Categorical)
	assert.Nil(t, prof.Datetime)
	assert.Nil(t, prof.Boolean)
	assert.Nil(t, prof.Text)
}

func TestProfileIsPure(t *testing.T) {
	detector := detect.NewDetector(detect.DefaultConfig())
	p := newProfiler()
	values := append(vals("10", "20", "20", "30"), column.NewMissingValue())

	typeA := detector.Detect(values)
	typeB := detector.Detect(values)
	require.Equal(t, typeA, typeB)

	first := p.Profile(values, typeA)
	second := p.Profile(values, typeB)
	assert.Equal(t, first, second)
}
