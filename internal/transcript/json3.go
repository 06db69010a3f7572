package transcript

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tessro/parrot/internal/core"
	apperrors "github.com/tessro/parrot/internal/errors"
)

// document is the json3 timed-text payload.
type document struct {
	Events []event `json:"events"`
}

type event struct {
	StartMs    *float64  `json:"tStartMs"`
	DurationMs *float64  `json:"dDurationMs"`
	Segs       []segment `json:"segs"`
}

type segment struct {
	Text     string  `json:"utf8"`
	OffsetMs float64 `json:"tOffsetMs"`
}

// piece is one segment placed on the timeline.
type piece struct {
	start, end time.Duration
	text       string
}

// Decode converts a json3 payload to a cue store.
//
// When no segment carries a newline, each timed event becomes one cue.
// Otherwise segments are joined into lines that end at a newline segment.
// A line runs from its first segment to the start of the next line.
func Decode(data []byte) (*core.Store, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid transcript json: %v", apperrors.ErrMalformedInput, err)
	}

	var pieces []piece
	hasNewline := false
	var events []piece

	for _, ev := range doc.Events {
		if ev.StartMs == nil || ev.DurationMs == nil || len(ev.Segs) == 0 {
			continue
		}
		start := millis(*ev.StartMs)
		end := start + millis(*ev.DurationMs)

		var sb strings.Builder
		for _, s := range ev.Segs {
			if strings.Contains(s.Text, "\n") {
				hasNewline = true
			}
			pieces = append(pieces, piece{start: start + millis(s.OffsetMs), end: end, text: s.Text})
			sb.WriteString(s.Text)
		}
		events = append(events, piece{start: start, end: end, text: sb.String()})
	}

	var cues []core.Cue
	if hasNewline {
		cues = mergeLines(pieces)
	} else {
		for _, e := range events {
			if text := strings.TrimSpace(e.text); text != "" {
				cues = append(cues, core.Cue{Start: e.start, End: e.end, Text: text})
			}
		}
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
	for i := range cues {
		cues[i].ID = i + 1
		if cues[i].End < cues[i].Start {
			cues[i].End = cues[i].Start
		}
	}
	return core.Load(cues)
}

func mergeLines(pieces []piece) []core.Cue {
	var lines []piece
	var current *piece

	flush := func() {
		if current == nil {
			return
		}
		current.text = strings.Join(strings.Fields(current.text), " ")
		lines = append(lines, *current)
		current = nil
	}

	for _, p := range pieces {
		if current == nil {
			current = &piece{start: p.start}
		}
		current.text += p.text
		current.end = p.end
		if strings.Contains(p.text, "\n") {
			flush()
		}
	}
	flush()

	var cues []core.Cue
	for i, l := range lines {
		if i+1 < len(lines) {
			l.end = lines[i+1].start
		}
		if l.text == "" {
			continue
		}
		cues = append(cues, core.Cue{Start: l.start, End: l.end, Text: l.text})
	}
	return cues
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
