package column

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SemanticType is the inferred domain meaning of a column's values,
// distinct from the raw storage representation.
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeCategorical SemanticType = "categorical"
	TypeDatetime    SemanticType = "datetime"
	TypeBoolean     SemanticType = "boolean"
	TypeText        SemanticType = "text"
	TypeOther       SemanticType = "other"
)

// AllTypes lists every semantic type in declaration order.
func AllTypes() []SemanticType {
	return []SemanticType{TypeNumeric, TypeCategorical, TypeDatetime, TypeBoolean, TypeText, TypeOther}
}

// Value is a single raw cell as delivered by a data-loading source.
type Value struct {
	Raw       string `json:"raw,omitempty"`
	IsMissing bool   `json:"is_missing,omitempty"`
}

// missingTokens are source strings treated as absent values.
var missingTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "null": {}, "nan": {}, "none": {},
}

// NewValue creates a value from a raw cell, mapping missing markers.
func NewValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if _, ok := missingTokens[strings.ToLower(trimmed)]; ok {
		return Value{IsMissing: true}
	}
	return Value{Raw: trimmed}
}

// NewMissingValue creates an explicitly missing value.
func NewMissingValue() Value {
	return Value{IsMissing: true}
}

// Column is a named, ordered sequence of raw values. It is owned by the
// dataset and read-only to the analysis core.
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// Dataset is a loaded tabular dataset: named columns with a consistent
// row count across columns.
type Dataset struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Columns []Column  `json:"columns"`
}

// NewDataset creates a dataset with a fresh identity.
func NewDataset(name string, cols []Column) *Dataset {
	return &Dataset{ID: uuid.New(), Name: name, Columns: cols}
}

// RowCount returns the number of rows, taken from the first column.
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnByName returns the named column, or false when absent.
func (d *Dataset) ColumnByName(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Info pairs a column's identity with its detected type and profile.
// It is the unit the suggestion engine consumes.
type Info struct {
	Name    string       `json:"name"`
	Type    SemanticType `json:"type"`
	Profile Profile      `json:"profile"`
}

// Granularity is the inferred resolution of a datetime column.
type Granularity string

const (
	GranularityYear   Granularity = "year"
	GranularityMonth  Granularity = "month"
	GranularityDay    Granularity = "day"
	GranularityHour   Granularity = "hour"
	GranularityMinute Granularity = "minute"
	GranularitySecond Granularity = "second"
)

// Profile is a type-dependent descriptive summary of a column. Exactly
// one of the per-type stat blocks is populated, matching Type;
// MissingCount is always present.
type Profile struct {
	Type         SemanticType `json:"type"`
	MissingCount int          `json:"missing_count"`

	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
	Datetime    *DatetimeStats    `json:"datetime,omitempty"`
	Boolean     *BooleanStats     `json:"boolean,omitempty"`
	Text        *TextStats        `json:"text,omitempty"`
	Other       *OtherStats       `json:"other,omitempty"`
}

// DistinctCount returns the distinct-value count recorded for whichever
// stat block is populated. Boolean profiles report the number of
// observed truth values.
func (p Profile) DistinctCount() int {
	switch {
	case p.Numeric != nil:
		return p.Numeric.Distinct
	case p.Categorical != nil:
		return p.Categorical.Distinct
	case p.Datetime != nil:
		return p.Datetime.Distinct
	case p.Boolean != nil:
		n := 0
		if p.Boolean.TrueCount > 0 {
			n++
		}
		if p.Boolean.FalseCount > 0 {
			n++
		}
		return n
	case p.Text != nil:
		return p.Text.Distinct
	case p.Other != nil:
		return p.Other.Distinct
	}
	return 0
}

// NumericStats summarizes a numeric column. Moments is nil when no
// value parsed, Quartiles and Shape are nil below their minimum sample
// sizes, so absent statistics are never mistaken for real zeros.
type NumericStats struct {
	Count     int             `json:"count"`
	Distinct  int             `json:"distinct"`
	Moments   *NumericMoments `json:"moments,omitempty"`
	Quartiles *QuartileStats  `json:"quartiles,omitempty"`
	Shape     *ShapeStats     `json:"shape,omitempty"`
}

// NumericMoments holds population summary statistics.
type NumericMoments struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// QuartileStats holds the lower and upper quartiles.
type QuartileStats struct {
	Q25 float64 `json:"q25"`
	Q75 float64 `json:"q75"`
}

// ShapeStats describes distribution shape, used by suggestion rules.
type ShapeStats struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	NormalP  float64 `json:"normal_p"`
}

// CategoryCount is one category with its frequency.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalStats summarizes a categorical column. Top is ordered by
// descending frequency, ties broken by first appearance in the column.
type CategoricalStats struct {
	Count    int             `json:"count"`
	Distinct int             `json:"distinct"`
	Top      []CategoryCount `json:"top"`
}

// DatetimeStats summarizes a datetime column. Min/Max are nil when no
// value parsed.
type DatetimeStats struct {
	Count       int         `json:"count"`
	Distinct    int         `json:"distinct"`
	Min         *time.Time  `json:"min,omitempty"`
	Max         *time.Time  `json:"max,omitempty"`
	Granularity Granularity `json:"granularity,omitempty"`
}

// BooleanStats counts truth values in a boolean column.
type BooleanStats struct {
	TrueCount  int `json:"true_count"`
	FalseCount int `json:"false_count"`
}

// TextStats summarizes a free-text column.
type TextStats struct {
	Count     int     `json:"count"`
	Distinct  int     `json:"distinct"`
	AvgLength float64 `json:"avg_length"`
	MaxLength int     `json:"max_length"`
}

// OtherStats is the minimal profile for unclassifiable columns.
type OtherStats struct {
	Distinct int `json:"distinct"`
}
