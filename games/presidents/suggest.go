/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import (
	"strings"

	"golang.org/x/text/cases"
)

// SuggestionLimit caps how many names are offered for a query.
const SuggestionLimit = 5

// fold normalizes s for case-insensitive comparison.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matches reports whether guess names r, ignoring case and surrounding space.
func (r Record) Matches(guess string) bool {
	return fold(guess) == fold(r.Name)
}

// Suggest returns up to limit record names containing query, in record
// order. A blank query returns nil, meaning the list should be hidden.
func Suggest(query string, records []Record, limit int) []string {
	q := fold(query)
	if q == "" || limit <= 0 {
		return nil
	}

	var matches []string
	for _, r := range records {
		if !strings.Contains(fold(r.Name), q) {
			continue
		}

		matches = append(matches, r.Name)
		if len(matches) == limit {
			break
		}
	}

	return matches
}

// Suggestions is the list currently on display, plus the highlighted entry.
type Suggestions struct {
	Items    []string
	Selected int
}

func NewSuggestions() Suggestions {
	return Suggestions{Selected: -1}
}

// Set replaces the list and clears the highlight.
func (s *Suggestions) Set(items []string) {
	s.Items = items
	s.Selected = -1
}

func (s *Suggestions) Clear() {
	s.Set(nil)
}

func (s *Suggestions) Visible() bool {
	return len(s.Items) > 0
}

// Next moves the highlight down, wrapping to the top.
func (s *Suggestions) Next() {
	if n := len(s.Items); n > 0 {
		s.Selected = (s.Selected + 1) % n
	}
}

// Prev moves the highlight up, wrapping to the bottom.
func (s *Suggestions) Prev() {
	if n := len(s.Items); n > 0 {
		s.Selected = (s.Selected - 1 + n) % n
	}
}

// Highlighted returns the highlighted entry, if any.
func (s *Suggestions) Highlighted() (string, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return "", false
	}

	return s.Items[s.Selected], true
}
