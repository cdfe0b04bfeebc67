package card

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyAnimating is returned when a flip is requested while one is in flight.
	ErrAlreadyAnimating = errors.New("card is already animating")
	// ErrInvalidState is returned when the requested face cannot be reached.
	ErrInvalidState = errors.New("invalid card state")
)

// State is the visible face state of a card.
type State int

const (
	Hidden State = iota
	Revealing
	FaceUp
	Concealing
	Removed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealing:
		return "revealing"
	case FaceUp:
		return "face-up"
	case Concealing:
		return "concealing"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Face is the target side of a flip.
type Face int

const (
	Down Face = iota
	Up
)

func (f Face) String() string {
	if f == Up {
		return "up"
	}
	return "down"
}

// Transition tells the animator which flip to play.
type Transition int

const (
	Reveal Transition = iota
	Conceal
)

func (t Transition) String() string {
	if t == Reveal {
		return "reveal"
	}
	return "conceal"
}

// Animator drives the visual flip of a card and calls done exactly once when
// the flip has finished.
type Animator interface {
	BeginTransition(c *Card, t Transition, done func())
}

// Value identifies which pair a card belongs to.
type Value int

// Card is one grid cell.
type Card struct {
	id       uuid.UUID
	value    Value
	state    State
	front    bool // front content currently shown
	inFlight bool
	target   Face
	animator Animator
}

func New(value Value, animator Animator) *Card {
	return &Card{
		id:       uuid.New(),
		value:    value,
		state:    Hidden,
		animator: animator,
	}
}

func (c *Card) ID() uuid.UUID   { return c.id }
func (c *Card) Value() Value    { return c.value }
func (c *Card) State() State    { return c.state }
func (c *Card) Animating() bool { return c.inFlight }

// FrontVisible reports whether the value side is showing. It flips at the
// midpoint of a transition, before the state settles.
func (c *Card) FrontVisible() bool { return c.front }

func (c *Card) String() string {
	return fmt.Sprintf("card(%d %s)", c.value, c.state)
}

// RequestFlip starts a timed flip toward target and returns immediately.
// done, if not nil, runs after the card has settled.
func (c *Card) RequestFlip(target Face, done func()) error {
	if c.inFlight {
		return ErrAlreadyAnimating
	}

	var transition Transition
	switch {
	case target == Up && c.state == Hidden:
		c.state = Revealing
		transition = Reveal
	case target == Down && c.state == FaceUp:
		c.state = Concealing
		transition = Conceal
	default:
		return fmt.Errorf("%w: cannot flip %s from %s", ErrInvalidState, target, c.state)
	}

	c.inFlight = true
	c.target = target
	c.animator.BeginTransition(c, transition, func() {
		c.CompleteFlip()
		if done != nil {
			done()
		}
	})
	return nil
}

// SwapContent shows the side the current flip is heading to.
func (c *Card) SwapContent() {
	if !c.inFlight {
		return
	}
	c.front = c.target == Up
}

// CompleteFlip settles an in-flight flip. Without one it does nothing.
func (c *Card) CompleteFlip() {
	if !c.inFlight {
		return
	}
	c.inFlight = false
	if c.state == Removed {
		return
	}
	c.front = c.target == Up
	if c.target == Up {
		c.state = FaceUp
	} else {
		c.state = Hidden
	}
}

// Remove takes the card out of play for good.
func (c *Card) Remove() {
	c.state = Removed
}
