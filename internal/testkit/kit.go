// Package testkit provides synthetic columns and datasets for tests.
// Generators are seeded so fixtures are reproducible.
package testkit

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"chartscout/domain/column"
)

// NumericColumn generates n numeric cells from a seeded normal
// distribution.
func NumericColumn(name string, n int, seed int64) column.Column {
	rng := rand.New(rand.NewSource(seed))
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewValue(strconv.FormatFloat(50+rng.NormFloat64()*10, 'f', 2, 64))
	}
	return column.Column{Name: name, Values: values}
}

// IntColumn generates n integer-string cells in [0, max).
func IntColumn(name string, n, max int, seed int64) column.Column {
	rng := rand.New(rand.NewSource(seed))
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewValue(strconv.Itoa(rng.Intn(max)))
	}
	return column.Column{Name: name, Values: values}
}

// CategoricalColumn generates n cells cycling through the given
// categories.
func CategoricalColumn(name string, n int, categories ...string) column.Column {
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewValue(categories[i%len(categories)])
	}
	return column.Column{Name: name, Values: values}
}

// BooleanColumn generates n alternating true/false cells.
func BooleanColumn(name string, n int) column.Column {
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewValue(strconv.FormatBool(i%2 == 0))
	}
	return column.Column{Name: name, Values: values}
}

// DatetimeColumn generates n daily dates starting from start, formatted
// with the given layout.
func DatetimeColumn(name string, n int, start time.Time, layout string) column.Column {
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewValue(start.AddDate(0, 0, i).Format(layout))
	}
	return column.Column{Name: name, Values: values}
}

// TextColumn generates n long free-text cells with no repeats.
func TextColumn(name string, n int) column.Column {
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewValue(fmt.Sprintf(
			"entry %d: a reasonably long free-form note about nothing in particular", i))
	}
	return column.Column{Name: name, Values: values}
}

// MissingColumn generates n all-missing cells.
func MissingColumn(name string, n int) column.Column {
	values := make([]column.Value, n)
	for i := range values {
		values[i] = column.NewMissingValue()
	}
	return column.Column{Name: name, Values: values}
}

// Dataset assembles columns into a dataset.
func Dataset(name string, cols ...column.Column) *column.Dataset {
	return column.NewDataset(name, cols)
}
