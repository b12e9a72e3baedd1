/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

import "fmt"

// View is everything the presentation layer needs to render the session.
type View struct {
	Round       int      `json:"round"`
	Stage       string   `json:"stage"`
	Outcome     string   `json:"outcome,omitempty"`
	Photo       string   `json:"photo"`
	Alt         string   `json:"alt"`
	Hint        string   `json:"hint,omitempty"`
	Attempts    int      `json:"attempts"`
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions"`
	Selected    int      `json:"selected"`
	Seq         int      `json:"seq"`
	Message     Message  `json:"message"`
	ShowInput   bool     `json:"show_input"`
	ShowChoices bool     `json:"show_choices"`
	Question    string   `json:"question,omitempty"`
	Choices     []string `json:"choices,omitempty"`
}

func (g *Game) View() View {
	v := View{
		Round:       g.round,
		Stage:       g.stage.String(),
		Photo:       g.current.Photo,
		Alt:         "US President Portrait",
		Attempts:    g.attempts,
		Input:       g.input,
		Suggestions: append([]string{}, g.suggestions.Items...),
		Selected:    g.suggestions.Selected,
		Seq:         g.seq,
		Message:     g.message,
	}

	if g.outcome != OutcomeNone {
		v.Outcome = g.outcome.String()
	}

	if g.opts.Variant == VariantBonus {
		v.Hint = g.current.Hint()
	}

	switch g.stage {
	case StageNameGuess:
		v.ShowInput = true
	case StageTermYears:
		v.ShowChoices = true
		v.Question = fmt.Sprintf("Bonus: which years was %s in office?", g.current.Name)
		v.Choices = append([]string{}, g.choices...)
	case StageVicePresidents:
		v.ShowChoices = true
		v.Question = fmt.Sprintf("Bonus: who served as %s's vice president?", g.current.Name)
		v.Choices = append([]string{}, g.choices...)
	}

	return v
}
