package anim

import (
	"time"

	"go-pairs/internal/card"
	"go-pairs/internal/timing"
)

// DefaultFlipDuration is the length of one full card flip.
const DefaultFlipDuration = 500 * time.Millisecond

// Timed plays a flip as two half-length phases: the card's content swaps at
// the midpoint and the completion signal fires at the end.
type Timed struct {
	Scheduler timing.Scheduler
	Duration  time.Duration
	// OnSwap, if set, runs right after the midpoint swap so a view can redraw.
	OnSwap func(c *card.Card, t card.Transition)
}

func NewTimed(s timing.Scheduler, d time.Duration) *Timed {
	if d <= 0 {
		d = DefaultFlipDuration
	}
	return &Timed{Scheduler: s, Duration: d}
}

func (a *Timed) BeginTransition(c *card.Card, t card.Transition, done func()) {
	half := a.Duration / 2
	a.Scheduler.After(half, func() {
		c.SwapContent()
		if a.OnSwap != nil {
			a.OnSwap(c, t)
		}
		a.Scheduler.After(a.Duration-half, done)
	})
}
