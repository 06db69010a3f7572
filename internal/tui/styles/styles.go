package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Palette colors, set by Apply.
var (
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Surface   lipgloss.TerminalColor
	Text      lipgloss.TerminalColor
	TextMuted lipgloss.TerminalColor
	TextDim   lipgloss.TerminalColor
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	ErrorText lipgloss.Style

	// ActiveCue marks the active line in the cue list.
	ActiveCue lipgloss.Style
	// CueText is the large text in the overlay.
	CueText lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	Apply("auto")
}

// pick returns the color for a theme: light uses Latte, dark uses Mocha and
// auto adapts to the terminal background.
func pick(theme string, color func(catppuccin.Flavor) catppuccin.Color) lipgloss.TerminalColor {
	light := lipgloss.Color(color(catppuccin.Latte).Hex)
	dark := lipgloss.Color(color(catppuccin.Mocha).Hex)
	switch theme {
	case "light":
		return light
	case "dark":
		return dark
	default:
		return lipgloss.AdaptiveColor{Light: string(light), Dark: string(dark)}
	}
}

// Apply rebuilds every style for a theme name (auto, dark or light).
func Apply(theme string) {
	Primary = pick(theme, catppuccin.Flavor.Mauve)
	Secondary = pick(theme, catppuccin.Flavor.Green)
	Warning = pick(theme, catppuccin.Flavor.Peach)
	Error = pick(theme, catppuccin.Flavor.Red)
	Border = pick(theme, catppuccin.Flavor.Surface2)
	Surface = pick(theme, catppuccin.Flavor.Surface0)
	Text = pick(theme, catppuccin.Flavor.Text)
	TextMuted = pick(theme, catppuccin.Flavor.Subtext0)
	TextDim = pick(theme, catppuccin.Flavor.Overlay0)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Secondary)
	Paused = lipgloss.NewStyle().Foreground(Warning)
	ErrorText = lipgloss.NewStyle().Foreground(Error)

	ActiveCue = lipgloss.NewStyle().Bold(true).Foreground(Primary).Background(Surface)
	CueText = lipgloss.NewStyle().Bold(true).Foreground(Text)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	if width < 0 {
		width = 0
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// RepeatIcon returns the repeat indicator.
func RepeatIcon(on bool) string {
	if on {
		return Highlight.Render("🔁 repeat")
	}
	return Dim.Render("↻ repeat off")
}
