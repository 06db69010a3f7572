package core

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	apperrors "github.com/tessro/parrot/internal/errors"
)

// Cue is a single subtitle entry.
type Cue struct {
	ID    int           `json:"id"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// Contains reports whether t falls inside the cue's closed time range.
func (c Cue) Contains(t time.Duration) bool {
	return t >= c.Start && t <= c.End
}

// Duration returns the length of the cue.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// Store is an ordered, read-only collection of cues.
// A nil or empty Store is valid and holds no cues.
type Store struct {
	cues []Cue
}

// Load validates records and builds a Store from them.
// IDs must be the dense run 1..n in position order, starts must not
// decrease, and every cue must satisfy 0 <= Start <= End.
func Load(records []Cue) (*Store, error) {
	cues := make([]Cue, len(records))
	for i, c := range records {
		if c.ID != i+1 {
			return nil, fmt.Errorf("%w: cue at position %d has id %d, want %d",
				apperrors.ErrMalformedInput, i+1, c.ID, i+1)
		}
		if c.Start < 0 {
			return nil, fmt.Errorf("%w: cue %d starts before zero (%v)",
				apperrors.ErrMalformedInput, c.ID, c.Start)
		}
		if c.End < c.Start {
			return nil, fmt.Errorf("%w: cue %d ends (%v) before it starts (%v)",
				apperrors.ErrMalformedInput, c.ID, c.End, c.Start)
		}
		if i > 0 && c.Start < cues[i-1].Start {
			return nil, fmt.Errorf("%w: cue %d starts (%v) before cue %d (%v)",
				apperrors.ErrMalformedInput, c.ID, c.Start, c.ID-1, cues[i-1].Start)
		}
		cues[i] = c
	}
	return &Store{cues: cues}, nil
}

// Count returns the number of cues.
func (s *Store) Count() int {
	if s == nil {
		return 0
	}
	return len(s.cues)
}

// IsEmpty returns true if the store has no cues.
func (s *Store) IsEmpty() bool {
	return s.Count() == 0
}

// ByID returns the cue with the given id.
func (s *Store) ByID(id int) (Cue, bool) {
	if id < 1 || id > s.Count() {
		return Cue{}, false
	}
	// IDs are validated dense on Load, so this is the only place position
	// and id are related.
	return s.cues[id-1], true
}

// At returns the first cue whose range contains t. When ranges touch, the
// lowest id wins.
func (s *Store) At(t time.Duration) (Cue, bool) {
	for _, c := range s.cuesOrNil() {
		if c.Start > t {
			break
		}
		if c.Contains(t) {
			return c, true
		}
	}
	return Cue{}, false
}

// IndexOfTimestamp is an alias for At.
func (s *Store) IndexOfTimestamp(t time.Duration) (Cue, bool) {
	return s.At(t)
}

// First returns the first cue.
func (s *Store) First() (Cue, bool) {
	return s.ByID(1)
}

// Last returns the last cue.
func (s *Store) Last() (Cue, bool) {
	return s.ByID(s.Count())
}

// Neighbor returns the cue delta positions away from id, clamped to the
// store bounds.
func (s *Store) Neighbor(id, delta int) (Cue, bool) {
	if s.IsEmpty() {
		return Cue{}, false
	}
	return s.ByID(clamp(id+delta, 1, s.Count()))
}

// Cues returns a copy of all cues in order.
func (s *Store) Cues() []Cue {
	out := make([]Cue, s.Count())
	copy(out, s.cuesOrNil())
	return out
}

// Fingerprint returns a structural hash of the cues. Two stores loaded from
// identical records share a fingerprint.
func (s *Store) Fingerprint() uint64 {
	if s.IsEmpty() {
		return 0
	}
	h, err := hashstructure.Hash(s.cues, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}

func (s *Store) cuesOrNil() []Cue {
	if s == nil {
		return nil
	}
	return s.cues
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatOffset formats an offset as m:ss or h:mm:ss.
func FormatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
