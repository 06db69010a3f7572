package tail

import (
	"strings"
	"testing"
	"time"

	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/playback"
)

func TestFormatLine(t *testing.T) {
	cue := &core.Cue{ID: 3, Start: 75 * time.Second, End: 78 * time.Second, Text: "Where is\nthe station?"}
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		change playback.Change
		opts   []FormatterOption
		want   string
	}{
		{
			name:   "cue change",
			change: playback.Change{Event: playback.Next{}, Cue: cue},
			opts:   []FormatterOption{WithEmoji(false)},
			want:   "[1:15] #3 Where is the station?",
		},
		{
			name:   "with emoji",
			change: playback.Change{Event: playback.TimeUpdate{}, Cue: cue},
			want:   "💬 [1:15] #3 Where is the station?",
		},
		{
			name:   "with timestamp",
			change: playback.Change{Event: playback.ToggleRepeat{}, Timestamp: ts, Current: core.PlaybackState{Repeat: true}},
			opts:   []FormatterOption{WithEmoji(false), WithTimestamp(true)},
			want:   "15:04:05 Repeat on",
		},
		{
			name:   "speed",
			change: playback.Change{Event: playback.SpeedDown{}, Current: core.PlaybackState{Rate: 0.7}},
			opts:   []FormatterOption{WithEmoji(false)},
			want:   "Speed 0.7x",
		},
		{
			name:   "no cue",
			change: playback.Change{Event: playback.Previous{}},
			opts:   []FormatterOption{WithEmoji(false)},
			want:   "No active line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(tt.opts...).Format(tt.change)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}} {{.CueID}} {{.Start}}-{{.End}} {{.Text}} {{.Mode}}"))
	got := f.Format(playback.Change{
		Event: playback.Next{},
		Mode:  playback.ModeRepeating,
		Cue:   &core.Cue{ID: 2, Start: time.Second, End: 3 * time.Second, Text: "hi"},
	})
	want := "next 2 0:01-0:03 hi Repeating"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestInvalidTemplateFallsBack(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Broken"), WithEmoji(false))
	got := f.Format(playback.Change{Event: playback.SourceReset{}})
	if !strings.Contains(got, "Reset") {
		t.Errorf("Format() = %q, want line format fallback", got)
	}
}
