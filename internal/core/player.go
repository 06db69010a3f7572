package core

import (
	"context"
	"time"
)

// Commander receives the seek and rate commands issued by the synchronizer.
// Implementations should not block waiting for the player to apply them.
type Commander interface {
	Seek(ctx context.Context, position time.Duration) error
	SetRate(ctx context.Context, rate float64) error
}

// PositionReporter reports the player's elapsed time.
type PositionReporter interface {
	Position(ctx context.Context) (time.Duration, error)
}

// Player defines the media player capability.
type Player interface {
	Commander
	PositionReporter

	// Load replaces the current media.
	Load(ctx context.Context, src MediaSource, playing bool) error

	// Pause control
	SetPaused(ctx context.Context, paused bool) error
	Paused(ctx context.Context) (bool, error)

	// ShowText displays text on the player's on-screen display.
	ShowText(ctx context.Context, text string, d time.Duration) error

	Close() error
}
