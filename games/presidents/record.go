/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import (
	"fmt"
	"strings"
)

// NoneValue stands in for a record field that has no value, so a bonus
// question always has a non-empty correct answer.
const NoneValue = "None"

// Record is a single office-holder as returned by the data source.
type Record struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Photo          string   `json:"photo"`
	YearsInOffice  string   `json:"yearsInOffice"`
	VicePresidents []string `json:"vicePresidents"`
}

// Field selects the record value a bonus question asks about.
type Field int

const (
	FieldYearsInOffice Field = iota
	FieldVicePresidents
)

func (f Field) String() string {
	switch f {
	case FieldYearsInOffice:
		return "yearsInOffice"
	case FieldVicePresidents:
		return "vicePresidents"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Value returns the text of the given field, joining sequences with ", ".
func (r Record) Value(f Field) string {
	switch f {
	case FieldYearsInOffice:
		return strings.TrimSpace(r.YearsInOffice)
	case FieldVicePresidents:
		names := make([]string, 0, len(r.VicePresidents))
		for _, name := range r.VicePresidents {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		return strings.Join(names, ", ")
	default:
		return ""
	}
}

// Answer is the correct choice shown for f.
func (r Record) Answer(f Field) string {
	if v := r.Value(f); v != "" {
		return v
	}
	return NoneValue
}

// Hint is the ordinal-rank clue shown under the portrait.
func (r Record) Hint() string {
	return "Hint: the " + Ordinal(r.ID) + " president."
}
