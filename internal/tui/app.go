// Package tui is the interactive player view: the cue list, the active line
// and the transport keys.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/parrot/internal/core"
	"github.com/tessro/parrot/internal/playback"
	"github.com/tessro/parrot/internal/tui/components"
	"github.com/tessro/parrot/internal/tui/styles"
	"go.uber.org/zap"
)

// queryTimeout bounds a single player query.
const queryTimeout = 2 * time.Second

// CueLoader produces cues in the background, for example a transcript fetch.
type CueLoader func(ctx context.Context) (*core.Store, error)

// Options configures the TUI.
type Options struct {
	Player      core.Player
	Source      core.MediaSource
	Cues        *core.Store
	Loader      CueLoader
	Interval    time.Duration
	ShowOSD     bool
	StartPaused bool
	Theme       string
	Logger      *zap.SugaredLogger

	// Copy writes text to the clipboard. Defaults to the system clipboard.
	Copy func(string) error
}

// Model is the main TUI model
type Model struct {
	opts   Options
	player core.Player
	sync   *playback.Synchronizer
	logger *zap.SugaredLogger
	width  int
	height int

	// Components
	cueList *components.CueList
	overlay *components.Overlay
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	paused  bool
	loading bool

	// Overlays
	showHelp bool

	// Transient status line
	status       string
	statusExpiry time.Time

	// Error handling
	lastError   error
	errorExpiry time.Time

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Interval <= 0 {
		opts.Interval = playback.DefaultPollInterval
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	styles.Apply(opts.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Highlight

	m := Model{
		opts:    opts,
		player:  opts.Player,
		sync:    playback.NewSynchronizer(opts.Player, playback.WithLogger(opts.Logger)),
		logger:  opts.Logger,
		cueList: components.NewCueList(),
		overlay: components.NewOverlay(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		paused:  opts.StartPaused,
		loading: opts.Loader != nil,
	}
	if opts.Cues != nil {
		m.sync.Load(opts.Cues)
	}
	return m
}

// Synchronizer returns the model's synchronizer.
func (m Model) Synchronizer() *playback.Synchronizer {
	return m.sync
}

// Messages
type tickMsg time.Time
type positionMsg struct {
	pos time.Duration
	gen uint64
}
type pausedMsg bool
type errMsg error
type statusMsg string
type cuesMsg struct {
	store *core.Store
	err   error
}

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchPosition() tea.Cmd {
	player := m.player
	// Taken now, before any later seek, so a late reply can be recognized
	gen := m.sync.Generation()
	return func() tea.Msg {
		if player == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		pos, err := player.Position(ctx)
		if err != nil {
			// Nothing loaded yet, or the player is busy; try again next tick
			return nil
		}
		return positionMsg{pos: pos, gen: gen}
	}
}

func (m Model) loadCues() tea.Cmd {
	loader := m.opts.Loader
	return func() tea.Msg {
		store, err := loader(context.Background())
		return cuesMsg{store: store, err: err}
	}
}

func (m Model) togglePause() tea.Cmd {
	player := m.player
	paused := !m.paused
	return func() tea.Msg {
		if player == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		if err := player.SetPaused(ctx, paused); err != nil {
			return errMsg(err)
		}
		return pausedMsg(paused)
	}
}

func (m Model) showText(text string) tea.Cmd {
	player := m.player
	return func() tea.Msg {
		if player == nil || text == "" {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		if err := player.ShowText(ctx, text, 4*time.Second); err != nil {
			return errMsg(err)
		}
		return nil
	}
}

func (m Model) copyActive() tea.Cmd {
	c, ok := m.sync.ActiveCue()
	if !ok {
		return nil
	}
	write := m.opts.Copy
	return func() tea.Msg {
		if err := write(c.Text); err != nil {
			return errMsg(err)
		}
		return statusMsg("Copied line to clipboard")
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick(), m.fetchPosition()}
	if m.loading {
		cmds = append(cmds, m.spinner.Tick, m.loadCues())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.expire()
		return m, tea.Batch(m.tick(), m.fetchPosition())

	case positionMsg:
		if m.sync.Handle(playback.TimeUpdate{Elapsed: msg.pos, Generation: msg.gen}) {
			return m, m.cueChanged()
		}
		return m, nil

	case pausedMsg:
		m.paused = bool(msg)
		return m, nil

	case cuesMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Warnw("Failed to load subtitles", "error", msg.err)
			m.setError(msg.err)
			return m, nil
		}
		if current := m.sync.Store(); !current.IsEmpty() && current.Fingerprint() == msg.store.Fingerprint() {
			// Same cues; keep position, repeat and rate
			return m, nil
		}
		m.sync.Load(msg.store)
		return m, m.cueChanged()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		m.status = string(msg)
		m.statusExpiry = time.Now().Add(3 * time.Second)
		return m, nil

	case errMsg:
		m.setError(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), msg.String() == "esc":
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		return m, m.apply(playback.Previous{})

	case key.Matches(msg, m.keys.Next):
		return m, m.apply(playback.Next{})

	case key.Matches(msg, m.keys.Replay):
		return m, m.apply(playback.Replay{})

	case key.Matches(msg, m.keys.Repeat):
		return m, m.apply(playback.ToggleRepeat{})

	case key.Matches(msg, m.keys.SpeedDown):
		return m, m.apply(playback.SpeedDown{})

	case key.Matches(msg, m.keys.SpeedUp):
		return m, m.apply(playback.SpeedUp{})

	case key.Matches(msg, m.keys.PlayPause):
		return m, m.togglePause()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyActive()
	}

	return m, nil
}

// apply feeds a transport event to the synchronizer.
func (m *Model) apply(e playback.Event) tea.Cmd {
	before := m.sync.State().ActiveCueID
	if !m.sync.Handle(e) {
		return nil
	}
	m.logger.Debugw("Transport", "event", playback.EventName(e), "state", m.sync.State())
	if m.sync.State().ActiveCueID != before {
		return m.cueChanged()
	}
	return nil
}

func (m Model) cueChanged() tea.Cmd {
	if !m.opts.ShowOSD {
		return nil
	}
	c, ok := m.sync.ActiveCue()
	if !ok {
		return nil
	}
	return m.showText(c.Text)
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(5 * time.Second) // Show error for 5 seconds
}

func (m *Model) expire() {
	now := time.Now()
	if now.After(m.errorExpiry) {
		m.lastError = nil
	}
	if now.After(m.statusExpiry) {
		m.status = ""
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	// Layout: cue list (left), active line (right), status bar (bottom)
	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth
	bodyHeight := m.height - 2
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	state := m.sync.State()
	store := m.sync.Store()

	cueList := m.cueList.Render(store, state.ActiveCueID, leftWidth-2, bodyHeight-2, true)

	ov := components.OverlayState{
		Playback: state,
		Total:    store.Count(),
		Paused:   m.paused,
		Source:   m.opts.Source.Location(),
	}
	if c, ok := m.sync.ActiveCue(); ok {
		ov.Cue = &c
	}
	overlay := m.overlay.Render(ov, rightWidth-2, bodyHeight-2, false)

	main := lipgloss.JoinHorizontal(lipgloss.Top, cueList, overlay)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)

	switch {
	case m.lastError != nil:
		status = styles.ErrorText.Render("Error: " + m.lastError.Error())
	case m.loading:
		status = m.spinner.View() + " " + styles.Muted.Render("Fetching transcript...")
	case m.status != "":
		status = styles.Playing.Render(m.status)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := styles.Highlight.Render("Parrot - Keyboard Shortcuts")

	full := help.New()
	full.ShowAll = true

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		full.View(m.keys),
		"",
		styles.Dim.Render("Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(body))
}

// Run starts the TUI application
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
