package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/tui/styles"
)

// OverlayState is everything the overlay shows.
type OverlayState struct {
	Playback core.PlaybackState
	Cue      *core.Cue
	Total    int
	Paused   bool
	Source   string
}

// Overlay displays the active line and the transport state.
type Overlay struct{}

// NewOverlay creates a new Overlay component
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Render renders the overlay panel
func (o *Overlay) Render(s OverlayState, width, height int, focused bool) string {
	title := styles.PanelTitle("Now", focused)

	var content string
	if s.Cue == nil {
		content = styles.Muted.Render("No active line")
	} else {
		content = o.renderCue(s, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
		"",
		o.renderStatus(s),
	))
}

func (o *Overlay) renderCue(s OverlayState, width int) string {
	c := s.Cue

	text := styles.CueText.Width(width).Render(c.Text)
	position := styles.Dim.Render(fmt.Sprintf("line %d of %d", c.ID, s.Total))

	// Progress through the active line
	barWidth := width - 16
	if barWidth < 10 {
		barWidth = 10
	}
	percent := 0.0
	if d := c.Duration(); d > 0 {
		percent = float64(s.Playback.Elapsed-c.Start) / float64(d) * 100
	}
	progress := fmt.Sprintf("%s %s %s",
		core.FormatOffset(c.Start),
		styles.ProgressBar(percent, barWidth),
		core.FormatOffset(c.End))

	return lipgloss.JoinVertical(lipgloss.Left,
		text,
		"",
		progress,
		position,
	)
}

func (o *Overlay) renderStatus(s OverlayState) string {
	parts := []string{
		styles.StatusIcon(!s.Paused),
		styles.Subtitle.Render(core.FormatOffset(s.Playback.Elapsed)),
		styles.Highlight.Render(fmt.Sprintf("%.1fx", s.Playback.Rate)),
		styles.RepeatIcon(s.Playback.Repeat),
	}
	if s.Source != "" {
		parts = append(parts, styles.Dim.Render(s.Source))
	}

	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "  "
		}
		out += p
	}
	return out
}
