package playback

import (
	"time"

	"github.com/tessro/parrot/internal/core"
)

// Event is one input to the synchronizer. The set of events is closed.
type Event interface {
	isEvent()
}

// TimeUpdate reports the player's elapsed time. Generation is the
// synchronizer generation read before the position was queried; zero skips
// the staleness check.
type TimeUpdate struct {
	Elapsed    time.Duration
	Generation uint64
}

// LoadCues replaces the cue store.
type LoadCues struct {
	Store *core.Store
}

type (
	// Previous moves to the previous cue.
	Previous struct{}
	// Next moves to the next cue.
	Next struct{}
	// Replay restarts the active cue.
	Replay struct{}
	// ToggleRepeat switches repeat mode.
	ToggleRepeat struct{}
	// SpeedUp raises the playback rate.
	SpeedUp struct{}
	// SpeedDown lowers the playback rate.
	SpeedDown struct{}
	// SourceReset drops all cues and state after the media source changes.
	SourceReset struct{}
)

func (TimeUpdate) isEvent()   {}
func (LoadCues) isEvent()     {}
func (Previous) isEvent()     {}
func (Next) isEvent()         {}
func (Replay) isEvent()       {}
func (ToggleRepeat) isEvent() {}
func (SpeedUp) isEvent()      {}
func (SpeedDown) isEvent()    {}
func (SourceReset) isEvent()  {}

// EventName returns a short name for logging.
func EventName(e Event) string {
	switch e.(type) {
	case TimeUpdate:
		return "time_update"
	case LoadCues:
		return "load_cues"
	case Previous:
		return "previous"
	case Next:
		return "next"
	case Replay:
		return "replay"
	case ToggleRepeat:
		return "toggle_repeat"
	case SpeedUp:
		return "speed_up"
	case SpeedDown:
		return "speed_down"
	case SourceReset:
		return "source_reset"
	default:
		return "unknown"
	}
}

// Handle applies one event and reports whether the observable state changed.
func (s *Synchronizer) Handle(e Event) bool {
	switch e := e.(type) {
	case TimeUpdate:
		if s.Stale(e.Generation) {
			s.logger.Debugw("Dropped stale position", "elapsed", e.Elapsed, "generation", e.Generation)
			return false
		}
		return s.TimeUpdate(e.Elapsed)
	case LoadCues:
		return s.Load(e.Store)
	case Previous:
		return s.Previous()
	case Next:
		return s.Next()
	case Replay:
		return s.Replay()
	case ToggleRepeat:
		return s.ToggleRepeat()
	case SpeedUp:
		return s.SpeedUp()
	case SpeedDown:
		return s.SpeedDown()
	case SourceReset:
		return s.SourceReset()
	}
	return false
}
