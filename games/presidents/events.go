/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presidents

// EventKind identifies a user or timer action.
type EventKind string

const (
	EventInput     EventKind = "input"
	EventArrowDown EventKind = "arrow_down"
	EventArrowUp   EventKind = "arrow_up"
	EventEnter     EventKind = "enter"
	EventSubmit    EventKind = "submit"
	EventPick      EventKind = "pick"
	EventDismiss   EventKind = "dismiss"
	EventChoose    EventKind = "choose"
	EventReset     EventKind = "reset"
)

// Event is a single input to the state machine. Text carries the input box
// contents or the chosen option, Index the clicked suggestion, and Round the
// round a Reset was scheduled for. Seq is the client's counter for events
// that carry the input box contents; the latest applied one is echoed in
// the View.
type Event struct {
	Kind  EventKind
	Text  string
	Index int
	Round int
	Seq   int
}

type transition func(*Game, Event) Result

// transitions maps (stage, event kind) to the handler for that pair.
var transitions = map[Stage]map[EventKind]transition{
	StageNameGuess: {
		EventInput:     (*Game).onInput,
		EventArrowDown: (*Game).onArrowDown,
		EventArrowUp:   (*Game).onArrowUp,
		EventEnter:     (*Game).onEnter,
		EventSubmit:    (*Game).onSubmit,
		EventPick:      (*Game).onPick,
		EventDismiss:   (*Game).onDismiss,
	},
	StageTermYears: {
		EventChoose: (*Game).onTermChoice,
	},
	StageVicePresidents: {
		EventChoose: (*Game).onVicePresidentChoice,
	},
	StageFinished: {
		EventReset: (*Game).onReset,
	},
}

// Accepts reports whether kind may be sent by a client. Resets are only
// ever scheduled by the session owner.
func (k EventKind) Accepts() bool {
	switch k {
	case EventInput, EventArrowDown, EventArrowUp, EventEnter,
		EventSubmit, EventPick, EventDismiss, EventChoose:
		return true
	default:
		return false
	}
}
