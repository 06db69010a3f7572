package core

import "time"

// NoCue is the ActiveCueID sentinel used when no cue is active.
const NoCue = 0

// Playback rate bounds.
const (
	DefaultRate = 1.0
	MinRate     = 0.5
	MaxRate     = 2.0
	RateStep    = 0.1
)

// PlaybackState is a snapshot of the synchronizer state.
type PlaybackState struct {
	Elapsed     time.Duration `json:"elapsed"`
	ActiveCueID int           `json:"active_cue_id"`
	Rate        float64       `json:"rate"`
	Repeat      bool          `json:"repeat"`
}

// InitialState returns the state used after every reset.
func InitialState() PlaybackState {
	return PlaybackState{
		ActiveCueID: NoCue,
		Rate:        DefaultRate,
	}
}

// HasActiveCue returns true if a cue is active.
func (s PlaybackState) HasActiveCue() bool {
	return s.ActiveCueID != NoCue
}
