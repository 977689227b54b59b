// Package encoder holds the categorical label encoders produced by the
// training pipeline. Encoders are built once at startup and are read-only
// afterwards, so they are safe for concurrent use.
package encoder

import (
	"errors"
	"fmt"
)

// Columns of the training table, output column last.
const (
	ColDayOfWeek         = "Day_of_Week"
	ColPublicHoliday     = "Public_Holiday"
	ColRoadName          = "Road_Name"
	ColPopulationDensity = "Population_Density"
	ColRainfall          = "Rainfall"
	ColOutput            = "Congestion_Level"
)

// CategoricalColumns lists the input columns that carry string categories,
// in the order the training table declares them.
var CategoricalColumns = []string{
	ColDayOfWeek,
	ColPublicHoliday,
	ColRoadName,
	ColPopulationDensity,
	ColRainfall,
}

var ErrUnknownValue = errors.New("value not in encoder vocabulary")

// LabelEncoder is a bijection between an ordered class vocabulary and the
// integer codes the classifier was trained on.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func New(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("encoder requires at least one class")
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if c == "" {
			return nil, fmt.Errorf("empty class at position %d", i)
		}
		if _, ok := index[c]; ok {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}, nil
}

// Transform maps a known class to its integer code. Unknown values are an
// error, never a default code.
func (e *LabelEncoder) Transform(value string) (int, error) {
	code, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownValue, value)
	}
	return code, nil
}

// Inverse maps an integer code back to its class.
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Classes returns a copy of the vocabulary in training order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// Set bundles the per-column encoders with the output label encoder.
type Set struct {
	columns map[string]*LabelEncoder
	output  *LabelEncoder
}

// NewSet builds a Set from the raw column→classes mapping of the encoders
// artifact. Every categorical input column and the output column must be
// present.
func NewSet(classes map[string][]string) (*Set, error) {
	columns := make(map[string]*LabelEncoder, len(classes))
	for col, cls := range classes {
		enc, err := New(cls)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		columns[col] = enc
	}

	for _, col := range CategoricalColumns {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("missing encoder for column %s", col)
		}
	}
	output, ok := columns[ColOutput]
	if !ok {
		return nil, fmt.Errorf("missing encoder for output column %s", ColOutput)
	}

	return &Set{columns: columns, output: output}, nil
}

// Column returns the encoder for the given column, or nil when absent.
func (s *Set) Column(name string) *LabelEncoder {
	return s.columns[name]
}

// Output returns the encoder of the predicted label column.
func (s *Set) Output() *LabelEncoder {
	return s.output
}

// Columns returns the raw column→classes mapping, output column included.
func (s *Set) Columns() map[string][]string {
	out := make(map[string][]string, len(s.columns))
	for col, enc := range s.columns {
		out[col] = enc.Classes()
	}
	return out
}
