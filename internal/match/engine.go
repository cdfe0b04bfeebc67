package match

import (
	"context"
	"errors"
	"time"

	"go-pairs/internal/audio"
	"go-pairs/internal/card"
	"go-pairs/internal/scoring"
	"go-pairs/internal/timing"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	// DefaultRevealDelay is how long a resolved pair stays visible.
	DefaultRevealDelay = 500 * time.Millisecond
	// DefaultSoundPoll is how often game over re-checks the match cue.
	DefaultSoundPoll = 50 * time.Millisecond
)

// Audio plays sound effects. Play never blocks.
type Audio interface {
	Play(s audio.Sound)
	IsPlaying(s audio.Sound) bool
}

// Observer receives presentation signals from the engine.
type Observer interface {
	Outcome(o Outcome, first, second *card.Card)
	ScoreChanged(score int)
	GameOver(score int)
}

// Options tunes engine timing.
type Options struct {
	RevealDelay     time.Duration
	SoundPoll       time.Duration
	AwaitMatchSound bool
}

// Deps are the collaborators an Engine needs.
type Deps struct {
	Score     *scoring.Scoring
	Scheduler timing.Scheduler
	Audio     Audio
	Observer  Observer
	Logger    *zap.Logger
}

// Engine coordinates card selection and pair resolution for one round.
type Engine struct {
	FSM *fsm.FSM

	score     *scoring.Scoring
	scheduler timing.Scheduler
	audio     Audio
	observer  Observer
	logger    *zap.Logger
	opts      Options

	gate    bool // accepting selections
	first   *card.Card
	second  *card.Card
	pending func()
}

func New(deps Deps, opts Options) *Engine {
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	if opts.SoundPoll <= 0 {
		opts.SoundPoll = DefaultSoundPoll
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	observer := deps.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	e := &Engine{
		score:     deps.Score,
		scheduler: deps.Scheduler,
		audio:     deps.Audio,
		observer:  observer,
		logger:    logger,
		opts:      opts,
		gate:      true,
	}
	e.FSM = fsm.NewFSM(
		stateIdle,
		getStateTransitions(),
		getStateCallbacks(e),
	)
	return e
}

// Select asks to flip c as part of the current pair. Requests that arrive
// while a pair resolves, or that target a card which is not hidden or is
// already selected, are ignored. It reports whether the request was taken.
func (e *Engine) Select(c *card.Card) bool {
	err := e.FSM.Event(context.Background(), "select", c)
	if err != nil {
		var canceled fsm.CanceledError
		if !errors.As(err, &canceled) {
			e.logger.Debug("selection ignored", zap.String("phase", e.FSM.Current()), zap.Error(err))
		}
		return false
	}
	return true
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "select", Src: []string{stateIdle}, Dst: stateOneSelected},
		{Name: "select", Src: []string{stateOneSelected}, Dst: stateResolving},

		// Resolution
		{Name: "clear", Src: []string{stateResolving}, Dst: stateIdle},
		{Name: "finish", Src: []string{stateResolving}, Dst: stateRoundComplete},
	}
}

func getStateCallbacks(e *Engine) map[string]fsm.Callback {
	return fsm.Callbacks{
		"before_select": func(ctx context.Context, ev *fsm.Event) {
			c := selectedCard(ev)
			if reason := e.rejectReason(c); reason != "" {
				e.logger.Debug("selection rejected", zap.String("reason", reason), zap.String("phase", ev.Src))
				ev.Cancel()
			}
		},
		"enter_" + stateOneSelected: func(ctx context.Context, ev *fsm.Event) {
			e.first = selectedCard(ev)
			e.flip(e.first, card.Up)
		},
		"enter_" + stateResolving: func(ctx context.Context, ev *fsm.Event) {
			e.second = selectedCard(ev)
			e.gate = false
			e.flip(e.second, card.Up)
			e.awaitSettled(e.evaluate)
		},
		"enter_" + stateIdle: func(ctx context.Context, ev *fsm.Event) {
			e.first, e.second = nil, nil
			e.gate = true
		},
		"enter_" + stateRoundComplete: func(ctx context.Context, ev *fsm.Event) {
			e.first, e.second = nil, nil
			found, total := e.score.Progress()
			e.logger.Info("round complete",
				zap.Int("score", e.score.Score()),
				zap.Int("matches", found),
				zap.Int("total", total),
				zap.Int("mismatches", e.score.MismatchCount),
			)
			e.awaitMatchSound(e.gameOver)
		},
	}
}

// evaluate compares the pair once both cards have finished revealing.
func (e *Engine) evaluate() {
	first, second := e.first, e.second
	if first.Value() == second.Value() {
		e.score.ScoreEvent(scoring.Match)
		e.logger.Debug("pair matched", zap.Int("value", int(first.Value())), zap.Int("score", e.score.Score()))
		e.observer.Outcome(OutcomeMatch, first, second)
		e.audio.Play(audio.Match)

		e.scheduler.After(e.opts.RevealDelay, func() {
			first.Remove()
			second.Remove()
			e.observer.ScoreChanged(e.score.Score())
			if e.score.Complete() {
				e.fire("finish")
				return
			}
			e.fire("clear")
		})
		return
	}

	e.score.ScoreEvent(scoring.Mismatch)
	e.logger.Debug("pair mismatched",
		zap.Int("first", int(first.Value())),
		zap.Int("second", int(second.Value())),
		zap.Int("score", e.score.Score()),
	)
	e.observer.Outcome(OutcomeMismatch, first, second)
	e.audio.Play(audio.Mismatch)

	e.scheduler.After(e.opts.RevealDelay, func() {
		e.flip(first, card.Down)
		e.flip(second, card.Down)
		e.observer.ScoreChanged(e.score.Score())
		e.awaitSettled(func() { e.fire("clear") })
	})
}

func (e *Engine) gameOver() {
	e.audio.Play(audio.GameOver)
	e.observer.GameOver(e.score.Score())
}

// flip requests a card flip and plays the flip sound. The gate makes a
// failure here unreachable, so it is only logged.
func (e *Engine) flip(c *card.Card, face card.Face) {
	if err := c.RequestFlip(face, e.settled); err != nil {
		e.logger.Error("flip refused", zap.Stringer("card", c), zap.Stringer("face", face), zap.Error(err))
		return
	}
	e.audio.Play(audio.Flip)
}

// awaitSettled runs fn once neither selected card is animating.
func (e *Engine) awaitSettled(fn func()) {
	if !e.selectionAnimating() {
		fn()
		return
	}
	e.pending = fn
}

// settled is the completion signal for every flip the engine requests.
func (e *Engine) settled() {
	if e.pending == nil || e.selectionAnimating() {
		return
	}
	fn := e.pending
	e.pending = nil
	fn()
}

func (e *Engine) awaitMatchSound(fn func()) {
	if !e.opts.AwaitMatchSound || !e.audio.IsPlaying(audio.Match) {
		fn()
		return
	}
	e.scheduler.After(e.opts.SoundPoll, func() { e.awaitMatchSound(fn) })
}

func (e *Engine) fire(event string) {
	if err := e.FSM.Event(context.Background(), event); err != nil {
		e.logger.Error("engine transition failed", zap.String("event", event), zap.Error(err))
	}
}

type nopObserver struct{}

func (nopObserver) Outcome(Outcome, *card.Card, *card.Card) {}
func (nopObserver) ScoreChanged(int)                        {}
func (nopObserver) GameOver(int)                            {}
