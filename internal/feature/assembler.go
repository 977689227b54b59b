// Package feature turns a validated request into the encoded numeric row
// the classifier expects, aligning columns by name.
package feature

import (
	"errors"
	"fmt"
	"strings"

	"congest/internal/classifier"
	"congest/internal/encoder"
)

const ColHour = "Hour"

// DefaultOrder is the column order used when the classifier does not declare
// the order it was trained on.
var DefaultOrder = []string{
	ColHour,
	encoder.ColDayOfWeek,
	encoder.ColPublicHoliday,
	encoder.ColRoadName,
	encoder.ColPopulationDensity,
	encoder.ColRainfall,
}

// Input is a validated prediction request.
type Input struct {
	Hour              int
	DayOfWeek         string
	PublicHoliday     string
	RoadName          string
	PopulationDensity string
	Rainfall          string
}

// UnknownValueError reports a categorical value absent from the trained
// vocabulary. Allowed carries the full accepted value list for the column;
// it is user-facing.
type UnknownValueError struct {
	Column  string
	Value   string
	Allowed []string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf(
		"invalid value %q in %s, must be one of [%s]",
		e.Value, e.Column, strings.Join(e.Allowed, ", "),
	)
}

// Assembler maps inputs to rows in the column order resolved once at
// construction. It is read-only after New and safe for concurrent use.
type Assembler struct {
	encoders *encoder.Set
	order    []string
}

// New resolves the column order for the classifier: its declared feature
// names when it exposes that capability, DefaultOrder otherwise. A declared
// order that does not match the known columns is an error, not a silent
// fallback.
func New(clf classifier.Classifier, encoders *encoder.Set) (*Assembler, error) {
	order := classifier.FeatureNames(clf)
	if order == nil {
		order = DefaultOrder
	} else if err := checkOrder(order); err != nil {
		return nil, fmt.Errorf("classifier feature order: %w", err)
	}
	if clf.NumFeatures() != len(order) {
		return nil, fmt.Errorf(
			"classifier expects %d features, have %d columns", clf.NumFeatures(), len(order),
		)
	}
	return &Assembler{encoders: encoders, order: order}, nil
}

func checkOrder(order []string) error {
	if len(order) != len(DefaultOrder) {
		return fmt.Errorf("declares %d columns, want %d", len(order), len(DefaultOrder))
	}
	known := make(map[string]bool, len(DefaultOrder))
	for _, col := range DefaultOrder {
		known[col] = true
	}
	seen := make(map[string]bool, len(order))
	for _, col := range order {
		if !known[col] {
			return fmt.Errorf("declares unknown column %q", col)
		}
		if seen[col] {
			return fmt.Errorf("declares column %q twice", col)
		}
		seen[col] = true
	}
	return nil
}

// Order returns the resolved column order.
func (a *Assembler) Order() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Row encodes the input into a numeric row in the resolved column order.
// Categorical values are replaced by their trained codes; Hour passes
// through unmodified.
func (a *Assembler) Row(in Input) ([]float64, error) {
	row := make([]float64, len(a.order))
	for i, col := range a.order {
		if col == ColHour {
			row[i] = float64(in.Hour)
			continue
		}
		value, err := in.value(col)
		if err != nil {
			return nil, err
		}
		enc := a.encoders.Column(col)
		if enc == nil {
			return nil, fmt.Errorf("no encoder for column %s", col)
		}
		code, err := enc.Transform(value)
		if err != nil {
			if errors.Is(err, encoder.ErrUnknownValue) {
				return nil, &UnknownValueError{Column: col, Value: value, Allowed: enc.Classes()}
			}
			return nil, fmt.Errorf("encode %s: %w", col, err)
		}
		row[i] = float64(code)
	}
	return row, nil
}

func (in Input) value(col string) (string, error) {
	switch col {
	case encoder.ColDayOfWeek:
		return in.DayOfWeek, nil
	case encoder.ColPublicHoliday:
		return in.PublicHoliday, nil
	case encoder.ColRoadName:
		return in.RoadName, nil
	case encoder.ColPopulationDensity:
		return in.PopulationDensity, nil
	case encoder.ColRainfall:
		return in.Rainfall, nil
	default:
		return "", fmt.Errorf("unknown column %s", col)
	}
}
