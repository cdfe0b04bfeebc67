package scoring

// Event is a scoring event raised by the match engine.
type Event string

const (
	Match    Event = "match"
	Mismatch Event = "mismatch"
)

// Scoring tracks the score and progress of a single round.
type Scoring struct {
	// public
	CurrentScore  int
	MatchesFound  int
	TotalMatches  int
	MismatchCount int
	// private
	scoreTable map[Event]int
}

// InitScoring creates the tally for a round with totalMatches pairs.
func InitScoring(totalMatches int) *Scoring {
	return &Scoring{
		scoreTable:   getScoreTable(),
		TotalMatches: totalMatches,
	}
}

// ScoreEvent updates score and progress for a resolved pair.
// The score has no floor; repeated mismatches take it below zero.
func (s *Scoring) ScoreEvent(event Event) {
	switch event {
	case Match:
		s.MatchesFound++
	case Mismatch:
		s.MismatchCount++
	}
	s.CurrentScore += s.scoreTable[event]
}

// Score returns the current score.
func (s *Scoring) Score() int {
	return s.CurrentScore
}

// Complete reports whether every pair in the round has been found.
func (s *Scoring) Complete() bool {
	return s.MatchesFound >= s.TotalMatches
}

// Progress returns matches found so far and matches needed.
func (s *Scoring) Progress() (found, total int) {
	return s.MatchesFound, s.TotalMatches
}

// Fraction returns progress in [0, 1] for progress bars.
func (s *Scoring) Fraction() float64 {
	if s.TotalMatches == 0 {
		return 0
	}
	return float64(s.MatchesFound) / float64(s.TotalMatches)
}

// getScoreTable returns the predefined values for different scoring events.
func getScoreTable() map[Event]int {
	return map[Event]int{
		Match:    10,
		Mismatch: -5,
	}
}
