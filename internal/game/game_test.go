package game

import (
	"testing"
	"time"

	"go-pairs/internal/anim"
	"go-pairs/internal/audio"
	"go-pairs/internal/card"
	"go-pairs/internal/deck"
	"go-pairs/internal/layout"
	"go-pairs/internal/match"
	"go-pairs/internal/timing"
)

// MockScenes records every scene load.
type MockScenes struct {
	Loaded []Scene
}

func (m *MockScenes) Load(scene Scene) {
	m.Loaded = append(m.Loaded, scene)
}

func (m *MockScenes) Last() Scene {
	if len(m.Loaded) == 0 {
		return ""
	}
	return m.Loaded[len(m.Loaded)-1]
}

// MockObserver records presentation signals forwarded by the session.
type MockObserver struct {
	Outcomes  []match.Outcome
	Scores    []int
	GameOvers []int
}

func (m *MockObserver) Outcome(o match.Outcome, first, second *card.Card) {
	m.Outcomes = append(m.Outcomes, o)
}
func (m *MockObserver) ScoreChanged(score int) { m.Scores = append(m.Scores, score) }
func (m *MockObserver) GameOver(score int)     { m.GameOvers = append(m.GameOvers, score) }

// MockAudio records every sound played through it.
type MockAudio struct {
	*audio.Cues
	Played []audio.Sound
}

func (m *MockAudio) Play(s audio.Sound) {
	m.Played = append(m.Played, s)
	m.Cues.Play(s)
}

type harness struct {
	clock    *timing.Manual
	scenes   *MockScenes
	observer *MockObserver
	collab   Collaborators
}

func newHarness(values ...int) *harness {
	clock := timing.NewManual(time.Unix(0, 0))
	h := &harness{
		clock:    clock,
		scenes:   &MockScenes{},
		observer: &MockObserver{},
	}
	h.collab = Collaborators{
		Animator:  anim.NewTimed(clock, 500*time.Millisecond),
		Audio:     audio.NewCues(clock, nil, nil),
		Layout:    layout.DefaultGrid(),
		Scenes:    h.scenes,
		Scheduler: clock,
		Observer:  h.observer,
	}
	if len(values) > 0 {
		h.collab.Dealer = deck.FixedDealer(values...)
	}
	return h
}

func (h *harness) session() *Session {
	return NewSession(h.collab, Options{
		Spacing: 10,
		Bounds:  layout.Rect{Width: 800, Height: 600},
	}, nil)
}

func TestRound_Card(t *testing.T) {
	h := newHarness(1, 1, 2, 2)
	s := h.session()
	if err := s.Start(2, 2); err != nil {
		t.Fatal(err)
	}

	c, ok := s.Round.Card(2)
	if !ok || c.Value() != 2 {
		t.Errorf("Expected card 2 with value 2, got %v %v", c, ok)
	}
	if _, ok := s.Round.Card(4); ok {
		t.Error("Index 4 is out of range on a 2x2 grid")
	}
	if _, ok := s.Round.Card(-1); ok {
		t.Error("Negative index should be out of range")
	}
	if s.Round.Remaining() != 4 {
		t.Errorf("Expected 4 cards remaining, got %d", s.Round.Remaining())
	}
}

func TestGame_MatchScenario(t *testing.T) {
	h := newHarness(1, 1, 2, 2)
	s := h.session()
	if err := s.Start(2, 2); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	r := s.Round

	if !s.OnCellActivated(0) {
		t.Fatal("card 0 should be accepted")
	}
	if r.Engine.Phase() != match.OneSelected {
		t.Errorf("Expected one-selected, got %s", r.Engine.Phase())
	}
	if r.Cards[0].State() != card.Revealing {
		t.Errorf("Expected card 0 revealing, got %s", r.Cards[0].State())
	}
	h.clock.Advance(500 * time.Millisecond)
	if r.Cards[0].State() != card.FaceUp {
		t.Errorf("Expected card 0 face-up, got %s", r.Cards[0].State())
	}

	s.OnCardActivated(r.Cards[1])
	h.clock.RunUntilIdle()

	if s.CurrentScore() != 10 {
		t.Errorf("Expected score 10, got %d", s.CurrentScore())
	}
	if r.Score.MatchesFound != 1 {
		t.Errorf("Expected 1 match, got %d", r.Score.MatchesFound)
	}
	if r.Cards[0].State() != card.Removed || r.Cards[1].State() != card.Removed {
		t.Error("Matched cards should be removed")
	}
	if r.Engine.Phase() != match.Idle {
		t.Errorf("Expected idle, got %s", r.Engine.Phase())
	}
	if s.IsComplete() {
		t.Error("Round should not be complete after one of two pairs")
	}
}

func TestGame_MismatchScenario(t *testing.T) {
	h := newHarness(1, 1, 2, 2)
	s := h.session()
	_ = s.Start(2, 2)
	r := s.Round

	s.OnCellActivated(0)
	s.OnCellActivated(2)
	h.clock.RunUntilIdle()

	if s.CurrentScore() != -5 {
		t.Errorf("Expected score -5, got %d", s.CurrentScore())
	}
	if r.Cards[0].State() != card.Hidden || r.Cards[2].State() != card.Hidden {
		t.Errorf("Cards should flip back, got %s and %s", r.Cards[0].State(), r.Cards[2].State())
	}
	if r.Engine.Phase() != match.Idle {
		t.Errorf("Expected idle, got %s", r.Engine.Phase())
	}
	if r.Remaining() != 4 {
		t.Errorf("No card should be removed, %d remain", r.Remaining())
	}
	if len(h.observer.Outcomes) != 1 || h.observer.Outcomes[0] != match.OutcomeMismatch {
		t.Errorf("Observer should see one mismatch, got %v", h.observer.Outcomes)
	}
}

func TestGame_FullPlaythrough(t *testing.T) {
	h := newHarness(1, 1, 2, 2)
	s := h.session()
	_ = s.Start(2, 2)

	s.OnCellActivated(0)
	s.OnCellActivated(1)
	h.clock.RunUntilIdle()
	s.OnCellActivated(2)
	s.OnCellActivated(3)
	h.clock.RunUntilIdle()

	found, total := s.Round.Score.Progress()
	if found != 2 || total != 2 {
		t.Errorf("Expected 2/2, got %d/%d", found, total)
	}
	if s.Round.Engine.Phase() != match.RoundComplete || !s.IsComplete() {
		t.Errorf("Expected round complete, got %s", s.Round.Engine.Phase())
	}
	if h.scenes.Last() != SceneGameOver {
		t.Errorf("Expected game-over scene, got %q", h.scenes.Last())
	}
	if len(h.observer.GameOvers) != 1 || h.observer.GameOvers[0] != 20 {
		t.Errorf("Expected game over with 20, got %v", h.observer.GameOvers)
	}
	if s.History.Rounds() != 1 || s.History.GetHighScoreEntry().Score != 20 {
		t.Errorf("Finished round should be recorded, got %+v", s.History.Entries)
	}
}
