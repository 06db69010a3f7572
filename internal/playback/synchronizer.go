// Package playback keeps the active subtitle cue in step with the player
// clock and turns transport commands into player seeks and rate changes.
package playback

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/tessro/parrot/internal/core"
	"go.uber.org/zap"
)

// Mode is the synchronizer state.
type Mode int

const (
	// ModeIdle means no cues are loaded.
	ModeIdle Mode = iota
	// ModeTracking follows the player clock.
	ModeTracking
	// ModeRepeating pins the active cue and loops over it.
	ModeRepeating
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeTracking:
		return "Tracking"
	case ModeRepeating:
		return "Repeating"
	default:
		return "Unknown"
	}
}

// commandTimeout bounds a single player command.
const commandTimeout = 2 * time.Second

// Synchronizer maps the player clock onto the cue store. It is not safe for
// concurrent use: every method must be called from one event loop.
type Synchronizer struct {
	player core.Commander
	logger *zap.SugaredLogger

	store *core.Store
	mode  Mode
	state core.PlaybackState

	// seeks counts issued seeks. It is read by pollers on other goroutines.
	seeks atomic.Uint64
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger used to report failed player commands.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSynchronizer creates an idle synchronizer that sends commands to player.
func NewSynchronizer(player core.Commander, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		player: player,
		logger: zap.NewNop().Sugar(),
		mode:   ModeIdle,
		state:  core.InitialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the current mode.
func (s *Synchronizer) Mode() Mode {
	return s.mode
}

// State returns a snapshot of the playback state.
func (s *Synchronizer) State() core.PlaybackState {
	return s.state
}

// Generation identifies the player position epoch: it changes with every
// seek. Position readers stamp a TimeUpdate with the generation taken before
// they query the player so replies that predate a seek can be dropped. Safe
// for concurrent use.
func (s *Synchronizer) Generation() uint64 {
	return s.seeks.Load() + 1
}

// Stale reports whether a position stamped with gen predates the latest
// seek. Zero means unstamped and is never stale.
func (s *Synchronizer) Stale(gen uint64) bool {
	return gen != 0 && gen != s.Generation()
}

// Store returns the loaded cue store, or nil when idle.
func (s *Synchronizer) Store() *core.Store {
	return s.store
}

// ActiveCue returns the active cue.
func (s *Synchronizer) ActiveCue() (core.Cue, bool) {
	return s.store.ByID(s.state.ActiveCueID)
}

// Load replaces the cue store and resets the playback state. A non-empty
// store starts tracking from its first cue.
func (s *Synchronizer) Load(store *core.Store) bool {
	prev := s.state
	s.reset()
	if store.IsEmpty() {
		return prev != s.state
	}
	s.store = store
	s.mode = ModeTracking
	s.state.ActiveCueID = 1
	return true
}

// SourceReset returns to idle, dropping the store and restoring the default
// rate.
func (s *Synchronizer) SourceReset() bool {
	prev, prevMode := s.state, s.mode
	s.reset()
	return prev != s.state || prevMode != s.mode
}

func (s *Synchronizer) reset() {
	if s.state.Rate != core.DefaultRate {
		s.setRate(core.DefaultRate)
	}
	s.store = nil
	s.mode = ModeIdle
	s.state = core.InitialState()
}

// TimeUpdate records the player's elapsed time. While tracking it moves the
// active cue to the one containing t; a miss keeps the previous cue. While
// repeating it seeks back to the pinned cue's start once t reaches its end.
func (s *Synchronizer) TimeUpdate(t time.Duration) bool {
	s.state.Elapsed = t

	switch s.mode {
	case ModeTracking:
		c, ok := s.store.At(t)
		if !ok || c.ID == s.state.ActiveCueID {
			return false
		}
		s.state.ActiveCueID = c.ID
		return true

	case ModeRepeating:
		pinned, ok := s.store.ByID(s.state.ActiveCueID)
		if ok && t >= pinned.End {
			s.seek(pinned.Start)
		}
	}
	return false
}

// Previous moves to the previous cue and seeks to its start. At the first
// cue it seeks to that cue's start again.
func (s *Synchronizer) Previous() bool {
	return s.step(-1)
}

// Next moves to the next cue and seeks to its start. At the last cue it
// seeks to that cue's start again.
func (s *Synchronizer) Next() bool {
	return s.step(1)
}

func (s *Synchronizer) step(delta int) bool {
	if s.store.IsEmpty() {
		return false
	}
	c, ok := s.store.Neighbor(s.state.ActiveCueID, delta)
	if !ok {
		return false
	}
	s.seek(c.Start)
	if c.ID == s.state.ActiveCueID {
		return false
	}
	s.state.ActiveCueID = c.ID
	return true
}

// Replay seeks to the start of the active cue.
func (s *Synchronizer) Replay() bool {
	if c, ok := s.ActiveCue(); ok {
		s.seek(c.Start)
	}
	return false
}

// ToggleRepeat switches between tracking and repeating without seeking.
func (s *Synchronizer) ToggleRepeat() bool {
	switch s.mode {
	case ModeTracking:
		s.mode = ModeRepeating
	case ModeRepeating:
		s.mode = ModeTracking
	default:
		return false
	}
	s.state.Repeat = s.mode == ModeRepeating
	return true
}

// SpeedUp raises the playback rate by one step.
func (s *Synchronizer) SpeedUp() bool {
	return s.adjustRate(core.RateStep)
}

// SpeedDown lowers the playback rate by one step.
func (s *Synchronizer) SpeedDown() bool {
	return s.adjustRate(-core.RateStep)
}

func (s *Synchronizer) adjustRate(delta float64) bool {
	if s.store.IsEmpty() {
		return false
	}
	rate := ClampRate(s.state.Rate + delta)
	if rate == s.state.Rate {
		return false
	}
	s.state.Rate = rate
	s.setRate(rate)
	return true
}

// ClampRate bounds r to the supported range and rounds it to one decimal.
func ClampRate(r float64) float64 {
	r = math.Round(r*10) / 10
	return math.Max(core.MinRate, math.Min(core.MaxRate, r))
}

// Player commands are fire-and-forget: failures are logged and never undo
// the state transition that issued them.

func (s *Synchronizer) seek(pos time.Duration) {
	s.seeks.Add(1)
	if s.player == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := s.player.Seek(ctx, pos); err != nil {
		s.logger.Warnw("Seek failed", "position", pos, "error", err)
	}
}

func (s *Synchronizer) setRate(rate float64) {
	if s.player == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := s.player.SetRate(ctx, rate); err != nil {
		s.logger.Warnw("Set rate failed", "rate", rate, "error", err)
	}
}
