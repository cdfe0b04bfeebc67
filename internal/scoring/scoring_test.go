package scoring

import (
	"testing"
	"time"
)

// TestInitScoring verifies a new round starts at zero with the right target.
func TestInitScoring(t *testing.T) {
	s := InitScoring(8)

	if s.CurrentScore != 0 {
		t.Errorf("expected initial score 0, got %d", s.CurrentScore)
	}
	found, total := s.Progress()
	if found != 0 || total != 8 {
		t.Errorf("expected progress 0/8, got %d/%d", found, total)
	}
	if s.Complete() {
		t.Error("a fresh round should not be complete")
	}
}

// TestScoreEvent checks that match and mismatch adjust score and counters.
func TestScoreEvent(t *testing.T) {
	s := InitScoring(2)

	s.ScoreEvent(Match)
	if s.CurrentScore != 10 {
		t.Errorf("match: expected score 10, got %d", s.CurrentScore)
	}
	if s.MatchesFound != 1 {
		t.Errorf("match: expected 1 match found, got %d", s.MatchesFound)
	}

	s.ScoreEvent(Mismatch)
	if s.CurrentScore != 5 {
		t.Errorf("mismatch: expected score 5, got %d", s.CurrentScore)
	}
	if s.MismatchCount != 1 {
		t.Errorf("mismatch: expected mismatch count 1, got %d", s.MismatchCount)
	}
	if s.MatchesFound != 1 {
		t.Errorf("mismatch must not change matches found, got %d", s.MatchesFound)
	}

	s.ScoreEvent(Match)
	if !s.Complete() {
		t.Error("round should be complete after 2 of 2 matches")
	}
	if s.Fraction() != 1 {
		t.Errorf("expected fraction 1, got %v", s.Fraction())
	}
}

// TestScoreEvent_NoFloor verifies the score can go negative.
func TestScoreEvent_NoFloor(t *testing.T) {
	s := InitScoring(4)
	s.ScoreEvent(Mismatch)
	s.ScoreEvent(Mismatch)
	if s.Score() != -10 {
		t.Errorf("expected -10, got %d", s.Score())
	}
}

func TestScoreHistory_Record(t *testing.T) {
	var h ScoreHistory

	if h.GotHighScore() {
		t.Error("empty history has no high score")
	}

	if !h.Record(ScoreHistoryEntry{Score: 20, Finished: time.Unix(1, 0)}) {
		t.Error("first round should be a new high score")
	}
	if h.Record(ScoreHistoryEntry{Score: 5, Finished: time.Unix(2, 0)}) {
		t.Error("lower round should not be a new high score")
	}
	if h.GotHighScore() {
		t.Error("last round (5) is below best (20)")
	}
	if !h.Record(ScoreHistoryEntry{Score: 30, Finished: time.Unix(3, 0)}) {
		t.Error("30 should beat 20")
	}
	if !h.GotHighScore() {
		t.Error("last round is the best round")
	}

	if h.Rounds() != 3 {
		t.Errorf("expected 3 rounds, got %d", h.Rounds())
	}
	if h.GetHighScoreEntry().Score != 30 {
		t.Errorf("expected high score 30, got %d", h.GetHighScoreEntry().Score)
	}
}

func TestScoreHistory_GetNScoreEntries(t *testing.T) {
	var h ScoreHistory
	for _, score := range []int{10, 40, -5, 25} {
		h.Record(ScoreHistoryEntry{Score: score})
	}

	top := h.GetNScoreEntries(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	want := []int{40, 25, 10}
	for i, w := range want {
		if top[i].Score != w {
			t.Errorf("entry %d: expected %d, got %d", i, w, top[i].Score)
		}
	}

	if len(h.GetNScoreEntries(10)) != 4 {
		t.Error("asking for more than recorded should return all")
	}
	// Sorting a copy must leave insertion order alone.
	if h.Entries[0].Score != 10 {
		t.Errorf("history order changed: %+v", h.Entries)
	}
}

func TestScoreHistory_GetNScoreEntriesEdges(t *testing.T) {
	var h ScoreHistory
	if got := h.GetNScoreEntries(3); len(got) != 0 {
		t.Errorf("empty history should return nothing, got %+v", got)
	}

	h.Record(ScoreHistoryEntry{Score: 10})
	h.Record(ScoreHistoryEntry{Score: 10, Rows: 2})
	for _, n := range []int{0, -1} {
		if got := h.GetNScoreEntries(n); got != nil {
			t.Errorf("GetNScoreEntries(%d) = %+v, want nil", n, got)
		}
	}

	top := h.GetNScoreEntries(2)
	if top[0].Rows != 0 || top[1].Rows != 2 {
		t.Errorf("equal scores should keep finish order, got %+v", top)
	}
}
