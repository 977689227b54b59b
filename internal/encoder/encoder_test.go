package encoder

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
		wantErr bool
	}{
		{name: "positive", classes: []string{"High", "Low", "Medium"}},
		{name: "single_class", classes: []string{"No"}},
		{name: "empty", classes: nil, wantErr: true},
		{name: "duplicate", classes: []string{"Yes", "No", "Yes"}, wantErr: true},
		{name: "empty_class", classes: []string{"Yes", ""}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.classes)
			if (err != nil) != test.wantErr {
				t.Errorf("New(%v) error = %v, wantErr %v", test.classes, err, test.wantErr)
			}
		})
	}
}

func TestLabelEncoder_Transform(t *testing.T) {
	enc, err := New([]string{"Friday", "Monday", "Saturday"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		value    string
		expected int
		wantErr  bool
	}{
		{name: "first", value: "Friday", expected: 0},
		{name: "last", value: "Saturday", expected: 2},
		{name: "unknown", value: "Funday", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := enc.Transform(test.value)
			if test.wantErr {
				if !errors.Is(err, ErrUnknownValue) {
					t.Errorf("Transform(%q) error = %v, want ErrUnknownValue", test.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transform(%q): %v", test.value, err)
			}
			if got != test.expected {
				t.Errorf("Transform(%q) = %d, want %d", test.value, got, test.expected)
			}
		})
	}
}

func TestLabelEncoder_Inverse(t *testing.T) {
	enc, err := New([]string{"High", "Low", "Medium"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		code     int
		expected string
		wantErr  bool
	}{
		{name: "first", code: 0, expected: "High"},
		{name: "last", code: 2, expected: "Medium"},
		{name: "negative", code: -1, wantErr: true},
		{name: "out_of_range", code: 3, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := enc.Inverse(test.code)
			if (err != nil) != test.wantErr {
				t.Fatalf("Inverse(%d) error = %v, wantErr %v", test.code, err, test.wantErr)
			}
			if !test.wantErr && got != test.expected {
				t.Errorf("Inverse(%d) = %q, want %q", test.code, got, test.expected)
			}
		})
	}
}

func TestLabelEncoder_ClassesCopy(t *testing.T) {
	enc, err := New([]string{"No", "Yes"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	classes := enc.Classes()
	classes[0] = "Maybe"
	if got, err := enc.Transform("No"); err != nil || got != 0 {
		t.Errorf("mutating Classes() result leaked into the encoder: got %d, %v", got, err)
	}
}

func validClasses() map[string][]string {
	return map[string][]string{
		ColDayOfWeek:         {"Friday", "Monday", "Saturday", "Sunday", "Thursday", "Tuesday", "Wednesday"},
		ColPublicHoliday:     {"No", "Yes"},
		ColRoadName:          {"KK 15 Rd", "KN 1 Rd", "RN1"},
		ColPopulationDensity: {"High", "Low", "Medium"},
		ColRainfall:          {"No", "Yes"},
		ColOutput:            {"High", "Low", "Medium"},
	}
}

func TestNewSet(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string][]string)
		wantErr bool
	}{
		{name: "positive", mutate: func(m map[string][]string) {}},
		{name: "missing_column", mutate: func(m map[string][]string) { delete(m, ColRainfall) }, wantErr: true},
		{name: "missing_output", mutate: func(m map[string][]string) { delete(m, ColOutput) }, wantErr: true},
		{name: "bad_column", mutate: func(m map[string][]string) { m[ColRainfall] = nil }, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			classes := validClasses()
			test.mutate(classes)
			_, err := NewSet(classes)
			if (err != nil) != test.wantErr {
				t.Errorf("NewSet error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}
}

func TestSet_Columns(t *testing.T) {
	set, err := NewSet(validClasses())
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	columns := set.Columns()
	if len(columns) != 6 {
		t.Fatalf("Columns() has %d entries, want 6", len(columns))
	}
	if got := columns[ColOutput]; len(got) != 3 || got[0] != "High" {
		t.Errorf("output classes = %v, want [High Low Medium]", got)
	}
	if set.Column("Nope") != nil {
		t.Errorf("Column for unknown name should be nil")
	}
}
