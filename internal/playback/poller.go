package playback

import (
	"context"
	"time"

	"github.com/tessro/parrot/internal/core"
)

// DefaultPollInterval matches a typical player progress callback.
const DefaultPollInterval = 100 * time.Millisecond

// Poller reads the player position at a fixed interval and reports it as
// TimeUpdate events.
type Poller struct {
	player     core.PositionReporter
	interval   time.Duration
	generation func() uint64
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithGeneration stamps every TimeUpdate with fn's value read before the
// position query, usually Synchronizer.Generation.
func WithGeneration(fn func() uint64) PollerOption {
	return func(p *Poller) {
		p.generation = fn
	}
}

// NewPoller creates a poller. A zero interval uses DefaultPollInterval.
func NewPoller(player core.PositionReporter, interval time.Duration, opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	p := &Poller{
		player:   player,
		interval: interval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the polling interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run polls until ctx ends or sink returns an error. Failed polls are
// skipped.
func (p *Poller) Run(ctx context.Context, sink func(context.Context, Event) error) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var gen uint64
			if p.generation != nil {
				gen = p.generation()
			}
			pos, err := p.player.Position(ctx)
			if err != nil {
				continue
			}
			if err := sink(ctx, TimeUpdate{Elapsed: pos, Generation: gen}); err != nil {
				return err
			}
		}
	}
}
