/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import (
	"slices"
	"strings"
	"testing"
)

func assertChoices(t *testing.T, options []string, correct string) {
	t.Helper()

	if len(options) != ChoiceCount {
		t.Fatalf("expected %d options, got %d: %v", ChoiceCount, len(options), options)
	}
	if !slices.Contains(options, correct) {
		t.Fatalf("options %v missing correct value %q", options, correct)
	}

	seen := make(map[string]bool, len(options))
	for _, o := range options {
		if o == "" {
			t.Fatalf("empty option in %v", options)
		}
		if seen[o] {
			t.Fatalf("duplicate option %q in %v", o, options)
		}
		seen[o] = true
	}
}

func TestChoices(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name    string
		correct string
		field   Field
	}{
		{name: "term", correct: "1800-1804", field: FieldYearsInOffice},
		{name: "vice president", correct: "X", field: FieldVicePresidents},
		{name: "joined vice presidents", correct: "Z, W", field: FieldVicePresidents},
		{name: "none", correct: NoneValue, field: FieldVicePresidents},
	}

	rng := newRNG(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertChoices(t, Choices(tt.correct, tt.field, records, rng), tt.correct)
		})
	}
}

func TestChoicesDrawFromRecords(t *testing.T) {
	records := sampleRecords()
	terms := make(map[string]bool)
	for _, r := range records {
		terms[r.YearsInOffice] = true
	}

	options := Choices("1800-1804", FieldYearsInOffice, records, newRNG(7))
	for _, o := range options {
		if !terms[o] {
			t.Fatalf("option %q is not a term from the records", o)
		}
	}
}

func TestChoicesPadsWhenValuesRunOut(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		correct string
	}{
		{name: "no records", records: nil, correct: "1800-1804"},
		{name: "single record", records: alphaOnly(), correct: "1800-1804"},
		{
			name: "two distinct values",
			records: []Record{
				{Name: "A", YearsInOffice: "1800-1804"},
				{Name: "B", YearsInOffice: "1804-1808"},
				{Name: "C", YearsInOffice: "1804-1808"},
			},
			correct: "1800-1804",
		},
		{
			name:    "placeholder collides with correct value",
			records: []Record{{Name: "A", YearsInOffice: "Unknown"}},
			correct: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertChoices(t, Choices(tt.correct, FieldYearsInOffice, tt.records, newRNG(3)), tt.correct)
		})
	}
}

func TestChoicesOrderVaries(t *testing.T) {
	records := sampleRecords()[:4]
	rng := newRNG(42)

	orders := make(map[string]bool)
	for range 30 {
		options := Choices("1800-1804", FieldYearsInOffice, records, rng)
		assertChoices(t, options, "1800-1804")
		orders[strings.Join(options, "|")] = true
	}

	if len(orders) < 2 {
		t.Fatalf("expected option order to vary across calls, saw %d distinct orders", len(orders))
	}
}
