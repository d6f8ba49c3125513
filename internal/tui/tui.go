package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/dummy-library/internal/audio"
	"github.com/handiism/dummy-library/internal/config"
	"github.com/handiism/dummy-library/internal/library"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateGenerating
	StateMaterializing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   library.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	files     []string
	err       error

	ctx    context.Context
	cancel context.CancelFunc
	run    int

	materializer *library.Materializer
	events       chan library.ProgressEvent
	snapshot     library.Progress
	stoppedAt    string

	// Options
	playlist      bool
	skipExisting  bool
	skipMalformed bool
	verbose       bool

	width  int
	height int
}

// NewModel creates a new TUI model. The input starts with the configured
// missing tracks directory.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = settings.MissingTracksPath
	ti.SetValue(settings.MissingTracksPath)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:         StateInput,
		textInput:     ti,
		spinner:       sp,
		progress:      prog,
		settings:      settings,
		logs:          make([]LogEntry, 0),
		ctx:           ctx,
		cancel:        cancel,
		playlist:      settings.CreatePlaylist,
		skipExisting:  settings.Overwrite == config.OverwriteSkip,
		skipMalformed: settings.SkipMalformed,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one materializer event.
	ProgressMsg struct {
		Run   int
		Event library.ProgressEvent
	}

	// GenerateDoneMsg is sent once the dummy asset exists.
	GenerateDoneMsg struct {
		Run     int
		Created bool
		Err     error
	}

	// MaterializeDoneMsg is sent when the queue has been drained.
	MaterializeDoneMsg struct {
		Run       int
		Progress  library.Progress
		StoppedAt string
		Err       error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateGenerating || m.state == StateMaterializing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateGenerating
				m.run++
				return m, tea.Batch(m.generate(), m.spinner.Tick)
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}
			return m, nil

		case "ctrl+o":
			if m.state == StateInput {
				m.skipExisting = !m.skipExisting
			}
			return m, nil

		case "ctrl+s":
			if m.state == StateInput {
				m.skipMalformed = !m.skipMalformed
			}
			return m, nil

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.files = nil
				m.err = nil
				m.snapshot = library.Progress{}
				m.stoppedAt = ""
				m.materializer = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Messages from a cancelled run must not touch the current one.
		if msg.Run != m.run {
			break
		}
		if msg.Event.Level != library.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		if m.events != nil {
			cmds = append(cmds, waitForEvent(m.run, m.events))
		}

	case GenerateDoneMsg:
		if msg.Run != m.run || m.state != StateGenerating {
			break
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		if msg.Created {
			m.logs = append(m.logs, LogEntry{Message: "Created dummy audio", Level: library.LevelSuccess})
		}
		if err := m.prepare(); err != nil {
			m.state = StateError
			m.err = err
			break
		}
		m.state = StateMaterializing
		cmds = append(cmds, m.materialize(), waitForEvent(m.run, m.events), m.tickProgress())

	case MaterializeDoneMsg:
		if msg.Run != m.run || m.state != StateMaterializing {
			break
		}
		m.snapshot = msg.Progress
		m.stoppedAt = msg.StoppedAt
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.materializer != nil && m.state == StateMaterializing {
			m.snapshot = m.materializer.Progress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// effectiveSettings applies the on-screen options to a copy of the settings.
func (m Model) effectiveSettings() *config.Settings {
	s := *m.settings
	s.MissingTracksPath = strings.TrimSpace(m.textInput.Value())
	s.CreatePlaylist = m.playlist
	s.SkipMalformed = m.skipMalformed
	s.Overwrite = config.OverwriteAlways
	if m.skipExisting {
		s.Overwrite = config.OverwriteSkip
	}
	return &s
}

// prepare loads the queue and creates the materializer.
func (m *Model) prepare() error {
	settings := m.effectiveSettings()

	queue, err := library.LoadQueue(settings.MissingTracksPath)
	if err != nil {
		return err
	}

	events := make(chan library.ProgressEvent, 64)
	ctx := m.ctx
	m.events = events
	m.files = make([]string, 0, queue.Len())
	for _, p := range queue.Paths() {
		m.files = append(m.files, filepath.Base(p))
	}
	m.materializer = library.NewMaterializer(settings, queue, func(e library.ProgressEvent) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	})
	m.snapshot = m.materializer.Progress()
	return nil
}

func (m Model) percent() float64 {
	if m.snapshot.FilesTotal == 0 {
		return 1
	}
	return float64(m.snapshot.FilesConsumed) / float64(m.snapshot.FilesTotal)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next materializer event as a ProgressMsg.
func waitForEvent(run int, events <-chan library.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Run: run, Event: e}
	}
}

// generate ensures the dummy asset exists.
func (m Model) generate() tea.Cmd {
	ctx := m.ctx
	run := m.run
	settings := m.effectiveSettings()
	return func() tea.Msg {
		tone := settings.ToToneConfig()
		enc := audio.NewFFmpeg(settings.EncoderPath, tone.Bitrate)
		created, err := audio.EnsureDummyAudio(ctx, enc, settings.DummyAudioPath, tone)
		return GenerateDoneMsg{Run: run, Created: created, Err: err}
	}
}

// materialize drains the queue in the background.
func (m Model) materialize() tea.Cmd {
	ctx := m.ctx
	run := m.run
	mat := m.materializer
	events := m.events
	root := m.settings.LibraryPath
	files := m.files
	return func() tea.Msg {
		_, err := mat.Drain(ctx, root)
		close(events)

		p := mat.Progress()
		done := MaterializeDoneMsg{Run: run, Progress: p, Err: err}
		if p.FilesConsumed < p.FilesTotal && p.FilesConsumed < len(files) {
			done.StoppedAt = files[p.FilesConsumed]
		}
		return done
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ Dummy Library"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Placeholder tracks for missing playlist entries"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateGenerating:
		b.WriteString(m.viewGenerating())
	case StateMaterializing:
		b.WriteString(m.viewMaterializing())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Missing track lists directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlists (ctrl+p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Keep existing tracks (ctrl+o)\n", checkbox(m.skipExisting)))
	b.WriteString(fmt.Sprintf("  %s Skip malformed lists (ctrl+s)\n", checkbox(m.skipMalformed)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Library path: %s", m.settings.LibraryPath)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Dummy audio:  %s", m.settings.DummyAudioPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewGenerating() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Preparing dummy audio..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewMaterializing() string {
	var b strings.Builder

	if len(m.files) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d list(s):", len(m.files))))
		b.WriteString("\n")
		for i, name := range m.files {
			marker := " "
			if i < m.snapshot.FilesConsumed {
				marker = "✓"
			}
			b.WriteString(fileStyle.Render(fmt.Sprintf("  %s %s", marker, name)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Lists: %d/%d | Tracks placed: %d | Skipped: %d",
		m.snapshot.FilesConsumed,
		m.snapshot.FilesTotal,
		m.snapshot.TracksPlaced,
		m.snapshot.TracksSkipped,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Library ready!\n\n"+
			"Lists: %d/%d\n"+
			"Tracks placed: %d\n"+
			"Skipped: %d\n"+
			"Library: %s",
		m.snapshot.FilesConsumed,
		m.snapshot.FilesTotal,
		m.snapshot.TracksPlaced,
		m.snapshot.TracksSkipped,
		m.settings.LibraryPath,
	))
	b.WriteString(box)
	b.WriteString("\n")

	if m.stoppedAt != "" {
		b.WriteString(warningStyle.Render(fmt.Sprintf("! Stopped at %s", m.stoppedAt)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case library.LevelError:
			style = errorStyle
			prefix = "✗"
		case library.LevelWarning:
			style = warningStyle
			prefix = "!"
		case library.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case library.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+p/o/s/v: options • esc: quit"
	case StateGenerating, StateMaterializing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: run again • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
