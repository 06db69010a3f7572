package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/playback"
)

// Formatter formats synchronizer changes for line output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats a change as a string.
func (f *Formatter) Format(c playback.Change) string {
	if f.template != nil {
		return f.formatTemplate(c)
	}
	return f.formatLine(c)
}

func (f *Formatter) formatLine(c playback.Change) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, c.Timestamp.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(c.Event))
	}

	parts = append(parts, f.describe(c))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(c playback.Change) string {
	data := templateData{
		Type:      playback.EventName(c.Event),
		Emoji:     eventEmoji(c.Event),
		Timestamp: c.Timestamp,
		Time:      c.Timestamp.Format("15:04:05"),
		Elapsed:   core.FormatOffset(c.Current.Elapsed),
		Rate:      c.Current.Rate,
		Repeat:    c.Current.Repeat,
		Mode:      c.Mode.String(),
	}

	if c.Cue != nil {
		data.CueID = c.Cue.ID
		data.Start = core.FormatOffset(c.Cue.Start)
		data.End = core.FormatOffset(c.Cue.End)
		data.Text = c.Cue.Text
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(c)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Elapsed   string
	Rate      float64
	Repeat    bool
	Mode      string
	CueID     int
	Start     string
	End       string
	Text      string
}

// describe returns a human-readable description of the change.
func (f *Formatter) describe(c playback.Change) string {
	switch c.Event.(type) {
	case playback.TimeUpdate, playback.Previous, playback.Next:
		if c.Cue != nil {
			return fmt.Sprintf("[%s] #%d %s", core.FormatOffset(c.Cue.Start), c.Cue.ID, flatten(c.Cue.Text))
		}
		return "No active line"

	case playback.ToggleRepeat:
		if c.Current.Repeat {
			return "Repeat on"
		}
		return "Repeat off"

	case playback.SpeedUp, playback.SpeedDown:
		return fmt.Sprintf("Speed %.1fx", c.Current.Rate)

	case playback.Replay:
		return "Replay"

	case playback.LoadCues:
		return "Subtitles loaded"

	case playback.SourceReset:
		return "Reset"

	default:
		return "Unknown event"
	}
}

func eventEmoji(e playback.Event) string {
	switch e.(type) {
	case playback.TimeUpdate:
		return "💬"
	case playback.Previous:
		return "⏮️"
	case playback.Next:
		return "⏭️"
	case playback.Replay:
		return "⏪"
	case playback.ToggleRepeat:
		return "🔁"
	case playback.SpeedUp:
		return "⏩"
	case playback.SpeedDown:
		return "🐢"
	case playback.LoadCues:
		return "📄"
	case playback.SourceReset:
		return "⏹️"
	default:
		return "❓"
	}
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
