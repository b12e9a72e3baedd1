/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import (
	"math/rand/v2"
	"slices"
	"strconv"
)

// ChoiceCount is the number of options offered for a bonus question.
const ChoiceCount = 4

var placeholders = []string{"None of the above", "Unknown", "Not recorded"}

// Choices returns ChoiceCount distinct options for field, one of which is
// correct, in random order. Distractors are sampled from records; when the
// records cannot supply enough distinct values within the draw budget, the
// remainder is padded with placeholders.
func Choices(correct string, field Field, records []Record, rng *rand.Rand) []string {
	options := make([]string, 0, ChoiceCount)
	options = append(options, correct)

	add := func(v string) {
		if v != "" && len(options) < ChoiceCount && !slices.Contains(options, v) {
			options = append(options, v)
		}
	}

	if len(records) > 0 {
		draws := max(8*len(records), 64)
		for i := 0; i < draws && len(options) < ChoiceCount; i++ {
			add(records[rng.IntN(len(records))].Value(field))
		}
	}

	for _, p := range placeholders {
		add(p)
	}
	for n := 1; len(options) < ChoiceCount; n++ {
		add("Option " + strconv.Itoa(n))
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
