package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/tui/styles"
)

// CueList displays the subtitle lines with the active one highlighted.
type CueList struct {
	offset int
}

// NewCueList creates a new CueList component
func NewCueList() *CueList {
	return &CueList{}
}

// Offset returns the index of the first visible cue.
func (l *CueList) Offset() int {
	return l.offset
}

// Follow scrolls so the cue at index idx is visible among visible rows,
// keeping a line of context above it when possible.
func (l *CueList) Follow(idx, visible, total int) {
	if visible < 1 || idx < 0 {
		return
	}
	if idx < l.offset+1 {
		l.offset = idx - 1
	}
	if idx >= l.offset+visible-1 {
		l.offset = idx - visible + 2
	}
	if max := total - visible; l.offset > max {
		l.offset = max
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Render renders the cue list panel
func (l *CueList) Render(store *core.Store, activeID, width, height int, focused bool) string {
	title := styles.PanelTitle("Lines", focused)

	var content string
	if store.IsEmpty() {
		content = styles.Muted.Render("No subtitles loaded")
	} else {
		content = l.renderCues(store, activeID, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (l *CueList) renderCues(store *core.Store, activeID, width, maxLines int) string {
	cues := store.Cues()

	visible := maxLines - 1 // Leave room for "more" indicator
	if visible < 1 {
		visible = 1
	}
	l.Follow(activeID-1, visible, len(cues))

	start := l.offset
	end := start + visible
	if end > len(cues) {
		end = len(cues)
	}

	lines := make([]string, 0, end-start+1)
	clip := lipgloss.NewStyle().MaxWidth(width)

	// "[mm:ss] " prefix plus marker
	const overhead = 10

	for i := start; i < end; i++ {
		c := cues[i]
		stamp := fmt.Sprintf("[%s]", core.FormatOffset(c.Start))
		text := truncate(oneLine(c.Text), width-overhead)

		var line string
		if c.ID == activeID {
			line = styles.ActiveCue.Render(fmt.Sprintf("▶ %s %s", stamp, text))
		} else {
			line = fmt.Sprintf("  %s %s", styles.Dim.Render(stamp), text)
		}
		lines = append(lines, clip.Render(line))
	}

	if end < len(cues) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(cues)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
