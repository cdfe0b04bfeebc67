package scoring

import (
	"cmp"
	"slices"
	"time"
)

// ScoreHistory holds the results of rounds finished during this process.
// It lives in memory only.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
	LastEntry      *ScoreHistoryEntry
}

// ScoreHistoryEntry represents one finished round.
type ScoreHistoryEntry struct {
	Score      int
	Rows       int
	Columns    int
	Mismatches int
	Finished   time.Time
}

// Record adds a finished round and reports whether it set a new high score.
func (sh *ScoreHistory) Record(entry ScoreHistoryEntry) bool {
	previousHigh := sh.HighScoreEntry
	sh.Entries = append(sh.Entries, entry)
	sh.LastEntry = &sh.Entries[len(sh.Entries)-1]

	best := 0
	for i := range sh.Entries {
		if sh.Entries[i].Score > sh.Entries[best].Score {
			best = i
		}
	}
	sh.HighScoreEntry = &sh.Entries[best]

	return previousHigh == nil || entry.Score > previousHigh.Score
}

// GetHighScoreEntry returns the highest scoring round so far.
func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// GetNScoreEntries returns up to n entries, best first. Rounds with equal
// scores keep the order they finished in.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	if n <= 0 {
		return nil
	}
	top := slices.Clone(sh.Entries)
	slices.SortStableFunc(top, func(a, b ScoreHistoryEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return top[:min(n, len(top))]
}

// GotHighScore checks if the last round scored at least the best score.
func (sh ScoreHistory) GotHighScore() bool {
	if sh.HighScoreEntry == nil || sh.LastEntry == nil {
		return false
	}
	return sh.LastEntry.Score >= sh.HighScoreEntry.Score
}

// Rounds returns how many rounds have been recorded.
func (sh ScoreHistory) Rounds() int {
	return len(sh.Entries)
}
