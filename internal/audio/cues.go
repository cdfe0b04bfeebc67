package audio

import (
	"io"
	"time"

	"go-pairs/internal/timing"

	"go.uber.org/zap"
)

// Sound is a game sound effect.
type Sound int

const (
	Flip Sound = iota
	Match
	Mismatch
	GameOver
)

func (s Sound) String() string {
	switch s {
	case Flip:
		return "flip"
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Cues stands in for an audio device. Each sound "plays" for its cue length,
// and an optional writer receives a terminal bell for the louder cues.
type Cues struct {
	clock   timing.Clock
	lengths map[Sound]time.Duration
	until   map[Sound]time.Time
	last    Sound
	played  bool
	bell    io.Writer
	logger  *zap.Logger
}

func NewCues(clock timing.Clock, bell io.Writer, logger *zap.Logger) *Cues {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cues{
		clock:   clock,
		lengths: getCueLengths(),
		until:   make(map[Sound]time.Time),
		bell:    bell,
		logger:  logger,
	}
}

func (c *Cues) Play(s Sound) {
	c.until[s] = c.clock.Now().Add(c.lengths[s])
	c.last = s
	c.played = true
	c.logger.Debug("sound", zap.Stringer("sound", s))

	if c.bell != nil && s != Flip {
		if _, err := io.WriteString(c.bell, "\a"); err != nil {
			c.logger.Warn("bell write failed", zap.Error(err))
		}
	}
}

func (c *Cues) IsPlaying(s Sound) bool {
	until, ok := c.until[s]
	return ok && c.clock.Now().Before(until)
}

// Current returns the most recent sound that is still playing.
func (c *Cues) Current() (Sound, bool) {
	if !c.played || !c.IsPlaying(c.last) {
		return 0, false
	}
	return c.last, true
}

// getCueLengths returns how long each sound plays.
func getCueLengths() map[Sound]time.Duration {
	return map[Sound]time.Duration{
		Flip:     150 * time.Millisecond,
		Match:    700 * time.Millisecond,
		Mismatch: 400 * time.Millisecond,
		GameOver: 1500 * time.Millisecond,
	}
}
