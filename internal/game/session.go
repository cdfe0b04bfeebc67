package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go-pairs/internal/audio"
	"go-pairs/internal/card"
	"go-pairs/internal/deck"
	"go-pairs/internal/layout"
	"go-pairs/internal/match"
	"go-pairs/internal/scoring"
	"go-pairs/internal/timing"

	"go.uber.org/zap"
)

// ErrMissingCollaborator is returned by Start when a required hook is not wired.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Scene identifies a screen the front end can show.
type Scene string

const (
	SceneBoard    Scene = "board"
	SceneGameOver Scene = "game-over"
)

// Layout computes per-cell placement inside a container.
type Layout interface {
	Place(rows, cols int, spacing float64, bounds layout.Rect) ([]layout.Placement, error)
}

// SceneLoader switches screens. Load must not block.
type SceneLoader interface {
	Load(scene Scene)
}

// Collaborators are the outside hooks a session drives.
type Collaborators struct {
	Animator  card.Animator
	Audio     match.Audio
	Layout    Layout
	Scenes    SceneLoader
	Scheduler timing.Scheduler

	// Optional.
	Observer match.Observer
	Dealer   deck.Dealer
}

// Options configure every round a session starts.
type Options struct {
	Spacing float64
	Bounds  layout.Rect
	Seed    int64 // 0 seeds from the clock
	Engine  match.Options
}

type Session struct {
	Round   *Round
	History scoring.ScoreHistory

	// Aggregate State
	RoundsStarted int

	collab Collaborators
	opts   Options
	dealer deck.Dealer
	logger *zap.Logger
}

func NewSession(collab Collaborators, opts Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	dealer := collab.Dealer
	if dealer == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		dealer = deck.NewDealer(rand.New(rand.NewSource(seed)))
	}
	return &Session{
		collab: collab,
		opts:   opts,
		dealer: dealer,
		logger: logger,
	}
}

// Start deals a new rows x columns round, discarding any current one. On
// error nothing changes.
func (s *Session) Start(rows, columns int) error {
	if err := s.collab.validate(); err != nil {
		return err
	}

	pairs, err := deck.PairCount(rows, columns)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	placements, err := s.collab.Layout.Place(rows, columns, s.opts.Spacing, s.opts.Bounds)
	if err != nil {
		return fmt.Errorf("lay out %dx%d grid: %w", rows, columns, err)
	}

	values, err := s.dealer(pairs)
	if err != nil {
		return fmt.Errorf("deal cards: %w", err)
	}

	cards := make([]*card.Card, len(values))
	for i, v := range values {
		cards[i] = card.New(card.Value(v), s.collab.Animator)
	}

	r := &Round{
		Rows:       rows,
		Columns:    columns,
		Cards:      cards,
		Placements: placements,
		Score:      scoring.InitScoring(pairs),
	}
	r.Engine = match.New(match.Deps{
		Score:     r.Score,
		Scheduler: s.collab.Scheduler,
		Audio:     &roundAudio{session: s, round: r},
		Observer:  &roundObserver{session: s, round: r},
		Logger:    s.logger,
	}, s.opts.Engine)

	s.Round = r
	s.RoundsStarted++
	s.logger.Info("round started", zap.Int("rows", rows), zap.Int("columns", columns), zap.Int("pairs", pairs))
	s.collab.Scenes.Load(SceneBoard)
	return nil
}

// Restart deals a fresh round with the current grid size.
func (s *Session) Restart() error {
	if s.Round == nil {
		return errors.New("no round to restart")
	}
	return s.Start(s.Round.Rows, s.Round.Columns)
}

// OnCardActivated forwards user input to the engine. Cards from another
// round are ignored.
func (s *Session) OnCardActivated(c *card.Card) bool {
	if s.Round == nil || !s.Round.Owns(c) {
		return false
	}
	return s.Round.Engine.Select(c)
}

// OnCellActivated activates the card at a row-major grid index.
func (s *Session) OnCellActivated(index int) bool {
	if s.Round == nil {
		return false
	}
	c, ok := s.Round.Card(index)
	if !ok {
		return false
	}
	return s.OnCardActivated(c)
}

func (s *Session) CurrentScore() int {
	if s.Round == nil {
		return 0
	}
	return s.Round.Score.Score()
}

func (s *Session) IsComplete() bool {
	return s.Round != nil && s.Round.IsComplete()
}

// Relayout recomputes placements after the container changed size.
func (s *Session) Relayout(bounds layout.Rect) error {
	s.opts.Bounds = bounds
	if s.Round == nil {
		return nil
	}
	placements, err := s.collab.Layout.Place(s.Round.Rows, s.Round.Columns, s.opts.Spacing, bounds)
	if err != nil {
		return fmt.Errorf("relayout: %w", err)
	}
	s.Round.Placements = placements
	return nil
}

func (s *Session) now() time.Time {
	if clock, ok := s.collab.Scheduler.(timing.Clock); ok {
		return clock.Now()
	}
	return time.Now()
}

func (c Collaborators) validate() error {
	var missing []string
	if c.Animator == nil {
		missing = append(missing, "animator")
	}
	if c.Audio == nil {
		missing = append(missing, "audio")
	}
	if c.Layout == nil {
		missing = append(missing, "layout")
	}
	if c.Scenes == nil {
		missing = append(missing, "scenes")
	}
	if c.Scheduler == nil {
		missing = append(missing, "scheduler")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCollaborator, strings.Join(missing, ", "))
	}
	return nil
}

// roundObserver relays engine signals for one round. Signals from a round
// that has since been replaced are dropped.
type roundObserver struct {
	session *Session
	round   *Round
}

func (o *roundObserver) current() bool {
	return o.session.Round == o.round
}

func (o *roundObserver) Outcome(out match.Outcome, first, second *card.Card) {
	if !o.current() {
		return
	}
	if obs := o.session.collab.Observer; obs != nil {
		obs.Outcome(out, first, second)
	}
}

func (o *roundObserver) ScoreChanged(score int) {
	if !o.current() {
		return
	}
	if obs := o.session.collab.Observer; obs != nil {
		obs.ScoreChanged(score)
	}
}

func (o *roundObserver) GameOver(score int) {
	if !o.current() {
		return
	}
	s := o.session
	newHigh := s.History.Record(scoring.ScoreHistoryEntry{
		Score:      score,
		Rows:       o.round.Rows,
		Columns:    o.round.Columns,
		Mismatches: o.round.Score.MismatchCount,
		Finished:   s.now(),
	})
	s.logger.Info("game over", zap.Int("score", score), zap.Bool("high_score", newHigh))

	s.collab.Scenes.Load(SceneGameOver)
	if obs := s.collab.Observer; obs != nil {
		obs.GameOver(score)
	}
}

// roundAudio plays sounds for one round. Sounds from a replaced round are
// dropped so a stale game over cannot play over the new board.
type roundAudio struct {
	session *Session
	round   *Round
}

func (a *roundAudio) Play(sound audio.Sound) {
	if a.session.Round != a.round {
		return
	}
	a.session.collab.Audio.Play(sound)
}

func (a *roundAudio) IsPlaying(sound audio.Sound) bool {
	return a.session.collab.Audio.IsPlaying(sound)
}
