// Package detect infers a semantic type for a column from its raw
// values. Detection is all-or-nothing for the parse-based types
// (Boolean, Datetime, Numeric): a single value that fails the parse
// disqualifies the type. The Categorical and Text fallbacks are
// statistical over the whole column.
package detect

import (
	"strconv"
	"strings"
	"time"

	"chartscout/domain/column"
)

// Config holds the detection policy constants. The defaults follow the
// documented behavior; every threshold is tunable.
type Config struct {
	// CategoricalMaxRatio is the maximum distinct/non-missing ratio for
	// a column to qualify as categorical.
	CategoricalMaxRatio float64
	// CategoricalMaxDistinct caps the absolute distinct count for
	// categorical columns.
	CategoricalMaxDistinct int
	// TextMinAvgLength is the average string length above which an
	// unclassified column is treated as free text.
	TextMinAvgLength float64
	// DatetimeFormats is the fixed ordered list of layouts tried for
	// datetime detection. A column is datetime only when a single
	// layout parses every non-missing value.
	DatetimeFormats []string
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		CategoricalMaxRatio:    0.5,
		CategoricalMaxDistinct: 50,
		TextMinAvgLength:       30,
		DatetimeFormats: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"01/02/2006",
			"2006/01/02",
			"02-Jan-2006",
		},
	}
}

// Detector classifies columns into semantic types.
type Detector struct {
	config Config
}

// NewDetector creates a detector with the given policy.
func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}

// Detect infers the semantic type of a column. Precedence is Boolean,
// Datetime, Numeric, Categorical, Text, Other; the first match wins.
// A column with zero non-missing values yields Other.
func (d *Detector) Detect(values []column.Value) column.SemanticType {
	present := nonMissing(values)
	if len(present) == 0 {
		return column.TypeOther
	}

	if isBoolean(present) {
		return column.TypeBoolean
	}
	if _, ok := MatchingDatetimeFormat(present, d.config.DatetimeFormats); ok {
		return column.TypeDatetime
	}
	if isNumeric(present) {
		return column.TypeNumeric
	}

	distinct := distinctCount(present)
	ratio := float64(distinct) / float64(len(present))
	if ratio <= d.config.CategoricalMaxRatio && distinct <= d.config.CategoricalMaxDistinct {
		return column.TypeCategorical
	}

	if avgLength(present) > d.config.TextMinAvgLength {
		return column.TypeText
	}

	return column.TypeOther
}

// nonMissing returns the raw strings of the present values.
func nonMissing(values []column.Value) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !v.IsMissing {
			out = append(out, v.Raw)
		}
	}
	return out
}

// wordTokens maps textual boolean tokens to their truth value.
var wordTokens = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
}

// isBoolean reports whether every value is a boolean token. The 0/1
// digit pair qualifies only when the column has exactly two distinct
// values, so constant or genuinely numeric columns fall through.
func isBoolean(present []string) bool {
	allWords := true
	allDigits := true
	for _, s := range present {
		lower := strings.ToLower(s)
		if _, ok := wordTokens[lower]; !ok {
			allWords = false
		}
		if lower != "0" && lower != "1" {
			allDigits = false
		}
		if !allWords && !allDigits {
			return false
		}
	}
	if allWords {
		return true
	}
	return allDigits && distinctCount(present) == 2
}

// ParseBoolToken parses one boolean token as classified by isBoolean.
func ParseBoolToken(s string) (bool, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if v, ok := wordTokens[lower]; ok {
		return v, true
	}
	switch lower {
	case "1":
		return true, true
	case "0":
		return false, true
	}
	return false, false
}

// MatchingDatetimeFormat returns the first layout from the ordered list
// that parses every value, if any.
func MatchingDatetimeFormat(present []string, formats []string) (string, bool) {
	for _, layout := range formats {
		ok := true
		for _, s := range present {
			if _, err := time.Parse(layout, s); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return layout, true
		}
	}
	return "", false
}

// ParseNumeric parses a numeric cell. Locale-dependent separators are
// deliberately not normalized: a value like "1,5" fails, so mixed-locale
// columns degrade to the categorical/text fallbacks instead of being
// silently misread.
func ParseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isNumeric(present []string) bool {
	for _, s := range present {
		if _, ok := ParseNumeric(s); !ok {
			return false
		}
	}
	return true
}

func distinctCount(present []string) int {
	seen := make(map[string]struct{}, len(present))
	for _, s := range present {
		seen[s] = struct{}{}
	}
	return len(seen)
}

func avgLength(present []string) float64 {
	if len(present) == 0 {
		return 0
	}
	total := 0
	for _, s := range present {
		total += len(s)
	}
	return float64(total) / float64(len(present))
}
