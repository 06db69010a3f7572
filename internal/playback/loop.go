package playback

import (
	"context"
	"time"

	"github.com/tessro/parrot/internal/core"
)

// Change describes a state transition produced by one event.
type Change struct {
	Event     Event
	Timestamp time.Time
	Mode      Mode
	Previous  core.PlaybackState
	Current   core.PlaybackState
	Cue       *core.Cue
}

// Loop serializes events from every source onto one goroutine.
type Loop struct {
	sync    *Synchronizer
	events  chan Event
	changes chan Change
}

// NewLoop creates a loop driving s. buffer sizes the inbound event queue.
func NewLoop(s *Synchronizer, buffer int) *Loop {
	if buffer < 1 {
		buffer = 64
	}
	return &Loop{
		sync:    s,
		events:  make(chan Event, buffer),
		changes: make(chan Change, 16),
	}
}

// Send queues an event, blocking until there is room or ctx ends. Events are
// never dropped so that arrival order is preserved.
func (l *Loop) Send(ctx context.Context, e Event) error {
	select {
	case l.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Changes returns the channel of state changes. It is closed when Run returns.
func (l *Loop) Changes() <-chan Change {
	return l.changes
}

// Run processes events in arrival order until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.changes)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-l.events:
			prev := l.sync.State()
			if !l.sync.Handle(e) {
				continue
			}

			c := Change{
				Event:     e,
				Timestamp: time.Now(),
				Mode:      l.sync.Mode(),
				Previous:  prev,
				Current:   l.sync.State(),
			}
			if cue, ok := l.sync.ActiveCue(); ok {
				c.Cue = &cue
			}

			select {
			case l.changes <- c:
			default:
				// Drop change if nobody is keeping up
			}
		}
	}
}
