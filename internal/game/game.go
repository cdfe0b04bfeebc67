package game

import (
	"slices"

	"go-pairs/internal/card"
	"go-pairs/internal/layout"
	"go-pairs/internal/match"
	"go-pairs/internal/scoring"
)

// Round holds everything that lives for exactly one round: the cards, their
// placements, the tally and the engine. A new Round replaces the old one on
// restart.
type Round struct {
	Rows       int
	Columns    int
	Cards      []*card.Card
	Placements []layout.Placement
	Score      *scoring.Scoring
	Engine     *match.Engine
}

// Card returns the card at a row-major grid index.
func (r *Round) Card(index int) (*card.Card, bool) {
	if index < 0 || index >= len(r.Cards) {
		return nil, false
	}
	return r.Cards[index], true
}

// Owns reports whether c was dealt in this round.
func (r *Round) Owns(c *card.Card) bool {
	return c != nil && slices.Contains(r.Cards, c)
}

// IsComplete reports whether every pair has been found.
func (r *Round) IsComplete() bool {
	return r.Engine.IsComplete()
}

// Remaining returns how many cards are still on the board.
func (r *Round) Remaining() int {
	n := 0
	for _, c := range r.Cards {
		if c.State() != card.Removed {
			n++
		}
	}
	return n
}
