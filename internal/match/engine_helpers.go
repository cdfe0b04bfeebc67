package match

import (
	"go-pairs/internal/card"

	"github.com/looplab/fsm"
)

const (
	stateIdle          = "idle"
	stateOneSelected   = "oneSelected"
	stateResolving     = "resolving"
	stateRoundComplete = "roundComplete"
)

// Phase is the engine's position in a turn.
type Phase int

const (
	Idle Phase = iota
	OneSelected
	Resolving
	RoundComplete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case OneSelected:
		return "one-selected"
	case Resolving:
		return "resolving"
	case RoundComplete:
		return "round-complete"
	default:
		return "unknown"
	}
}

// Outcome is the result of resolving a pair.
type Outcome int

const (
	OutcomeMatch Outcome = iota
	OutcomeMismatch
)

func (o Outcome) String() string {
	if o == OutcomeMatch {
		return "match"
	}
	return "mismatch"
}

func (e *Engine) Phase() Phase {
	switch e.FSM.Current() {
	case stateOneSelected:
		return OneSelected
	case stateResolving:
		return Resolving
	case stateRoundComplete:
		return RoundComplete
	default:
		return Idle
	}
}

// Accepting reports whether the gate is open for new selections.
func (e *Engine) Accepting() bool {
	return e.gate
}

// Selection returns the currently selected cards; either may be nil.
func (e *Engine) Selection() (first, second *card.Card) {
	return e.first, e.second
}

func (e *Engine) IsComplete() bool {
	return e.FSM.Is(stateRoundComplete)
}

func (e *Engine) rejectReason(c *card.Card) string {
	switch {
	case c == nil:
		return "no card"
	case !e.gate:
		return "gate closed"
	case c == e.first:
		return "already selected"
	case c.State() != card.Hidden:
		return "card not hidden"
	}
	return ""
}

func (e *Engine) selectionAnimating() bool {
	return (e.first != nil && e.first.Animating()) || (e.second != nil && e.second.Animating())
}

func selectedCard(ev *fsm.Event) *card.Card {
	if len(ev.Args) == 0 {
		return nil
	}
	c, _ := ev.Args[0].(*card.Card)
	return c
}
