package app

import (
	"context"
	"testing"
	"time"

	"chartscout/domain/chart"
	"chartscout/domain/column"
	"chartscout/internal/config"
	"chartscout/internal/errors"
	"chartscout/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *AnalysisService {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return NewAnalysisService(cfg, nil)
}

func sampleDataset() *column.Dataset {
	start, _ := time.Parse("2006-01-02", "2021-01-01")
	return testkit.Dataset("sample",
		testkit.NumericColumn("price", 30, 1),
		testkit.NumericColumn("qty", 30, 2),
		testkit.CategoricalColumn("region", 30, "north", "south", "east"),
		testkit.BooleanColumn("active", 30),
		testkit.DatetimeColumn("day", 30, start, "2006-01-02"),
		testkit.MissingColumn("void", 30),
	)
}

func TestAnalyzeDataset(t *testing.T) {
	service := newService(t)
	ds := sampleDataset()

	analysis, err := service.AnalyzeDataset(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, "sample", analysis.DatasetName)
	assert.Equal(t, 30, analysis.RowCount)
	assert.Equal(t, 6, analysis.ColumnCount)
	require.Len(t, analysis.Columns, 6)

	assert.Equal(t, 2, analysis.TypeCounts[column.TypeNumeric])
	assert.Equal(t, 1, analysis.TypeCounts[column.TypeCategorical])
	assert.Equal(t, 1, analysis.TypeCounts[column.TypeBoolean])
	assert.Equal(t, 1, analysis.TypeCounts[column.TypeDatetime])
	assert.Equal(t, 1, analysis.TypeCounts[column.TypeOther])

	// Column order is preserved and every profile carries its type.
	assert.Equal(t, "price", analysis.Columns[0].Name)
	for _, info := range analysis.Columns {
		assert.Equal(t, info.Type, info.Profile.Type)
	}

	// The all-missing column degrades, it does not fail the analysis.
	void := analysis.Columns[5]
	assert.Equal(t, column.TypeOther, void.Type)
	assert.Equal(t, 30, void.Profile.MissingCount)
}

func TestSelectionErrors(t *testing.T) {
	service := newService(t)
	ds := sampleDataset()

	_, err := service.Selection(ds, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidSelection))

	_, err = service.Selection(ds, []string{"price", "qty", "region"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidSelection))

	_, err = service.Selection(ds, []string{"price", "nope"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidSelection))
}

func TestSuggestForSelection(t *testing.T) {
	service := newService(t)
	ds := sampleDataset()

	suggestions, err := service.SuggestForSelection(ds, []string{"price", "qty"})
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	types := make([]chart.Type, len(suggestions))
	for i, s := range suggestions {
		types[i] = s.Spec.Type
	}
	assert.Contains(t, types, chart.ScatterPlot)
}

func TestSuggestForDataset(t *testing.T) {
	service := newService(t)
	ds := sampleDataset()

	suggestions, err := service.SuggestForDataset(context.Background(), ds)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	seen := make(map[chart.Type]int)
	for i, s := range suggestions {
		seen[s.Spec.Type]++
		if i > 0 {
			assert.LessOrEqual(t, s.Score, suggestions[i-1].Score)
		}
	}
	// Each chart type appears once, at its best score.
	for typ, count := range seen {
		assert.Equal(t, 1, count, typ)
	}
	assert.Contains(t, seen, chart.ScatterPlot)
	assert.Contains(t, seen, chart.Histogram)
	assert.Contains(t, seen, chart.BarChart)
	assert.Contains(t, seen, chart.TimeSeriesPlot)
}

func TestValidateChoice(t *testing.T) {
	service := newService(t)
	ds := sampleDataset()

	assert.NoError(t, service.ValidateChoice(ds, "Scatter Plot", []string{"price", "qty"}))
	assert.NoError(t, service.ValidateChoice(ds, "Bar Chart", []string{"region"}))

	err := service.ValidateChoice(ds, "Scatter Plot", []string{"region", "qty"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeIncompatibleChart))

	err = service.ValidateChoice(ds, "No Such Chart", []string{"price"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeUnknownChart))

	err = service.ValidateChoice(ds, "Scatter Plot", []string{"price", "nope"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidSelection))
}
