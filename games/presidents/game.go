/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package presidents implements the portrait trivia game: the player names
// the president in the picture, then answers bonus questions about their
// term and running mates.
package presidents

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	DefaultAttempts     = 5
	DefaultSuccessDelay = 2 * time.Second
	DefaultFailureDelay = 3 * time.Second
)

// ErrNoRecords is returned when a game is created without any records.
var ErrNoRecords = errors.New("no records to play with")

// Stage is the question phase a round is in.
type Stage int

const (
	StageNameGuess Stage = iota
	StageTermYears
	StageVicePresidents
	StageFinished
)

func (s Stage) String() string {
	switch s {
	case StageNameGuess:
		return "name_guess"
	case StageTermYears:
		return "term_years"
	case StageVicePresidents:
		return "vice_presidents"
	case StageFinished:
		return "finished"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Outcome is how a finished round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// Variant selects between the name-only game and the three-stage game.
type Variant int

const (
	VariantBonus Variant = iota
	VariantClassic
)

type Color string

const (
	ColorNeutral Color = "#333"
	ColorGood    Color = "green"
	ColorBad     Color = "red"
)

type Message struct {
	Text  string `json:"text"`
	Color Color  `json:"color"`
}

type Options struct {
	Attempts     int
	SuccessDelay time.Duration
	FailureDelay time.Duration
	Variant      Variant
}

func (o Options) withDefaults() Options {
	if o.Attempts < 1 {
		o.Attempts = DefaultAttempts
	}
	if o.SuccessDelay <= 0 {
		o.SuccessDelay = DefaultSuccessDelay
	}
	if o.FailureDelay <= 0 {
		o.FailureDelay = DefaultFailureDelay
	}
	return o
}

// Result reports what a dispatched event did. When Ended is set, the owner
// must dispatch a Reset for Round once Delay has passed.
type Result struct {
	Changed bool
	Ended   bool
	Outcome Outcome
	Delay   time.Duration
	Round   int
}

// Game is a single play session. It is not safe for concurrent use; the
// owner serializes every call.
type Game struct {
	records []Record
	rng     *rand.Rand
	opts    Options

	round       int
	current     Record
	stage       Stage
	outcome     Outcome
	attempts    int
	input       string
	suggestions Suggestions
	choices     []string
	message     Message

	// seq is the client counter of the last applied event that carried one.
	seq int
}

// NewGame creates a session over records and starts its first round.
func NewGame(records []Record, rng *rand.Rand, opts Options) (*Game, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := &Game{
		records: records,
		rng:     rng,
		opts:    opts.withDefaults(),
	}
	g.StartRound()

	return g, nil
}

// StartRound picks a new record and returns every per-round field to its
// initial value.
func (g *Game) StartRound() {
	g.round++
	g.current = g.records[g.rng.IntN(len(g.records))]
	g.stage = StageNameGuess
	g.outcome = OutcomeNone
	g.attempts = g.opts.Attempts
	g.input = ""
	g.suggestions = NewSuggestions()
	g.choices = nil
	g.message = Message{Color: ColorNeutral}
}

func (g *Game) Round() int          { return g.round }
func (g *Game) Stage() Stage        { return g.stage }
func (g *Game) Outcome() Outcome    { return g.outcome }
func (g *Game) Attempts() int       { return g.attempts }
func (g *Game) Current() Record     { return g.current }
func (g *Game) Message() Message    { return g.message }
func (g *Game) Choices() []string   { return g.choices }
func (g *Game) Input() string       { return g.input }
func (g *Game) Suggested() []string { return g.suggestions.Items }
func (g *Game) Selected() int       { return g.suggestions.Selected }
func (g *Game) Seq() int            { return g.seq }

// Dispatch applies ev to the current stage. Events that the stage does not
// handle are ignored.
func (g *Game) Dispatch(ev Event) Result {
	handler, ok := transitions[g.stage][ev.Kind]
	if !ok {
		return Result{Round: g.round}
	}

	if ev.Seq > 0 {
		g.seq = ev.Seq
	}

	return handler(g, ev)
}

func (g *Game) changed() Result {
	return Result{Changed: true, Round: g.round}
}

func (g *Game) onInput(ev Event) Result {
	g.input = ev.Text
	g.suggestions.Set(Suggest(ev.Text, g.records, SuggestionLimit))

	return g.changed()
}

func (g *Game) onArrowDown(Event) Result {
	if !g.suggestions.Visible() {
		return Result{Round: g.round}
	}
	g.suggestions.Next()

	return g.changed()
}

func (g *Game) onArrowUp(Event) Result {
	if !g.suggestions.Visible() {
		return Result{Round: g.round}
	}
	g.suggestions.Prev()

	return g.changed()
}

func (g *Game) onEnter(ev Event) Result {
	if name, ok := g.suggestions.Highlighted(); ok {
		return g.guess(name)
	}

	return g.guess(ev.Text)
}

func (g *Game) onSubmit(ev Event) Result {
	return g.guess(ev.Text)
}

func (g *Game) onPick(ev Event) Result {
	if ev.Index < 0 || ev.Index >= len(g.suggestions.Items) {
		return Result{Round: g.round}
	}

	return g.guess(g.suggestions.Items[ev.Index])
}

func (g *Game) onDismiss(Event) Result {
	if !g.suggestions.Visible() {
		return Result{Round: g.round}
	}
	g.suggestions.Clear()

	return g.changed()
}

func (g *Game) guess(text string) Result {
	g.input = text

	if fold(text) == "" {
		g.message = Message{Text: "Please enter a name!", Color: ColorNeutral}
		return g.changed()
	}

	g.suggestions.Clear()
	name := g.current.Name

	if g.current.Matches(text) {
		if g.opts.Variant == VariantClassic {
			return g.finish(OutcomeSuccess, fmt.Sprintf("Correct! It is %s.", name))
		}

		g.stage = StageTermYears
		g.input = ""
		g.choices = Choices(g.current.Answer(FieldYearsInOffice), FieldYearsInOffice, g.records, g.rng)
		g.message = Message{
			Text:  fmt.Sprintf("Correct! It is %s. Now for a bonus question.", name),
			Color: ColorGood,
		}

		return g.changed()
	}

	if g.attempts > 0 {
		g.attempts--
	}

	if g.attempts == 0 {
		return g.finish(OutcomeFailure, fmt.Sprintf("Game over! The correct answer was %s.", name))
	}

	g.input = ""
	noun := "attempts"
	if g.attempts == 1 {
		noun = "attempt"
	}
	g.message = Message{
		Text:  fmt.Sprintf("Wrong! You have %d %s left.", g.attempts, noun),
		Color: ColorBad,
	}

	return g.changed()
}

func (g *Game) onTermChoice(ev Event) Result {
	name := g.current.Name
	want := g.current.Answer(FieldYearsInOffice)

	if ev.Text != want {
		return g.finish(OutcomeFailure, fmt.Sprintf("Wrong! %s served %s.", name, want))
	}

	g.stage = StageVicePresidents
	g.choices = Choices(g.current.Answer(FieldVicePresidents), FieldVicePresidents, g.records, g.rng)
	g.message = Message{
		Text:  fmt.Sprintf("Correct! %s served %s. One more bonus question.", name, want),
		Color: ColorGood,
	}

	return g.changed()
}

func (g *Game) onVicePresidentChoice(ev Event) Result {
	name := g.current.Name
	want := g.current.Answer(FieldVicePresidents)

	if ev.Text != want {
		return g.finish(OutcomeFailure, fmt.Sprintf("Wrong! %s's vice president was %s.", name, want))
	}

	return g.finish(OutcomeSuccess, fmt.Sprintf("Perfect! You got everything right about %s.", name))
}

func (g *Game) onReset(ev Event) Result {
	if ev.Round != g.round {
		return Result{Round: g.round}
	}
	g.StartRound()

	return g.changed()
}

func (g *Game) finish(outcome Outcome, text string) Result {
	g.stage = StageFinished
	g.outcome = outcome
	g.input = ""
	g.choices = nil
	g.suggestions.Clear()

	delay := g.opts.SuccessDelay
	color := ColorGood
	if outcome == OutcomeFailure {
		delay = g.opts.FailureDelay
		color = ColorBad
	}
	g.message = Message{Text: text, Color: color}

	return Result{
		Changed: true,
		Ended:   true,
		Outcome: outcome,
		Delay:   delay,
		Round:   g.round,
	}
}
