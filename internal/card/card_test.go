package card

import (
	"errors"
	"testing"
)

// MockAnimator records transitions and lets the test decide when they finish.
type MockAnimator struct {
	Transitions []Transition
	pending     []func()
}

func (m *MockAnimator) BeginTransition(c *Card, t Transition, done func()) {
	m.Transitions = append(m.Transitions, t)
	m.pending = append(m.pending, func() {
		c.SwapContent()
		done()
	})
}

// Finish completes the oldest pending transition.
func (m *MockAnimator) Finish() {
	next := m.pending[0]
	m.pending = m.pending[1:]
	next()
}

func TestCard_New(t *testing.T) {
	c := New(3, &MockAnimator{})
	if c.State() != Hidden {
		t.Errorf("New card should be hidden, got %s", c.State())
	}
	if c.Value() != 3 {
		t.Errorf("Expected value 3, got %d", c.Value())
	}
	if c.FrontVisible() || c.Animating() {
		t.Error("New card should show its back and not animate")
	}
	if New(3, nil).ID() == c.ID() {
		t.Error("Card IDs should be unique")
	}
}

func TestCard_FlipUpAndDown(t *testing.T) {
	anim := &MockAnimator{}
	c := New(1, anim)

	doneCalls := 0
	if err := c.RequestFlip(Up, func() { doneCalls++ }); err != nil {
		t.Fatalf("RequestFlip(Up) failed: %v", err)
	}
	if c.State() != Revealing {
		t.Errorf("Expected revealing, got %s", c.State())
	}
	if !c.Animating() {
		t.Error("Card should be animating")
	}

	anim.Finish()
	if c.State() != FaceUp {
		t.Errorf("Expected face-up, got %s", c.State())
	}
	if !c.FrontVisible() {
		t.Error("Front should be visible after reveal")
	}
	if doneCalls != 1 {
		t.Errorf("done should run once, ran %d", doneCalls)
	}

	if err := c.RequestFlip(Down, nil); err != nil {
		t.Fatalf("RequestFlip(Down) failed: %v", err)
	}
	if c.State() != Concealing {
		t.Errorf("Expected concealing, got %s", c.State())
	}
	anim.Finish()
	if c.State() != Hidden || c.FrontVisible() {
		t.Errorf("Expected hidden with back showing, got %s front=%v", c.State(), c.FrontVisible())
	}

	if len(anim.Transitions) != 2 || anim.Transitions[0] != Reveal || anim.Transitions[1] != Conceal {
		t.Errorf("Unexpected transitions: %v", anim.Transitions)
	}
}

func TestCard_RequestFlipErrors(t *testing.T) {
	anim := &MockAnimator{}
	c := New(1, anim)

	if err := c.RequestFlip(Down, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Down from hidden: expected ErrInvalidState, got %v", err)
	}

	_ = c.RequestFlip(Up, nil)
	if err := c.RequestFlip(Up, nil); !errors.Is(err, ErrAlreadyAnimating) {
		t.Errorf("Second flip in flight: expected ErrAlreadyAnimating, got %v", err)
	}
	if err := c.RequestFlip(Down, nil); !errors.Is(err, ErrAlreadyAnimating) {
		t.Errorf("Down in flight: expected ErrAlreadyAnimating, got %v", err)
	}

	anim.Finish()
	if err := c.RequestFlip(Up, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Up from face-up: expected ErrInvalidState, got %v", err)
	}

	c.Remove()
	if err := c.RequestFlip(Up, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Up from removed: expected ErrInvalidState, got %v", err)
	}
	if err := c.RequestFlip(Down, nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Down from removed: expected ErrInvalidState, got %v", err)
	}
}

func TestCard_CompleteFlipWithoutTransitionIsNoOp(t *testing.T) {
	c := New(1, &MockAnimator{})

	c.CompleteFlip()
	if c.State() != Hidden || c.Animating() {
		t.Errorf("CompleteFlip on idle card changed state to %s", c.State())
	}

	c.Remove()
	c.CompleteFlip()
	if c.State() != Removed {
		t.Errorf("CompleteFlip should not revive a removed card, got %s", c.State())
	}
}

func TestCard_SwapContentAtMidpoint(t *testing.T) {
	c := New(1, &MockAnimator{})
	_ = c.RequestFlip(Up, nil)

	if c.FrontVisible() {
		t.Error("Front should not show before the midpoint")
	}
	c.SwapContent()
	if !c.FrontVisible() {
		t.Error("Front should show after the midpoint")
	}
	if c.State() != Revealing {
		t.Errorf("State should still be revealing at midpoint, got %s", c.State())
	}
}

func TestCard_Remove(t *testing.T) {
	c := New(1, &MockAnimator{})
	c.Remove()
	if c.State() != Removed {
		t.Errorf("Expected removed, got %s", c.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Hidden, "hidden"},
		{Revealing, "revealing"},
		{FaceUp, "face-up"},
		{Concealing, "concealing"},
		{Removed, "removed"},
		{State(99), "unknown"},
	}

	for _, test := range tests {
		if got := test.state.String(); got != test.expected {
			t.Errorf("State(%d).String() = %q, want %q", test.state, got, test.expected)
		}
	}
}
