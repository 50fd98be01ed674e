// Package tui provides a Bubble Tea browser for the Last.fm tag graph.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/lastfm-graph/internal/config"
	"github.com/handiism/lastfm-graph/internal/explore"
	"github.com/handiism/lastfm-graph/internal/lastfm"
	"github.com/handiism/lastfm-graph/internal/model"
)

// Relationships fetched per tag; drives the progress bar.
const relationsPerTag = 4

// Entries shown per top chart.
const chartSize = 5

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D51007")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

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
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLoading
	StateBrowse
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   explore.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	fetcher   lastfm.Fetcher
	settings  *config.Settings
	logs      []LogEntry
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	// Tag being loaded; seq discards results of cancelled loads.
	manager *explore.Manager
	loading string
	seq     int

	current *explore.Summary
	cursor  int
	history []string
	cache   map[string]*explore.Summary

	width  int
	height int
}

// NewModel creates a new TUI model browsing through f.
func NewModel(f lastfm.Fetcher, settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "rock"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#D51007"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		fetcher:   f,
		settings:  settings,
		ctx:       ctx,
		cancel:    cancel,
		cache:     make(map[string]*explore.Summary),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// LoadedMsg is sent when a tag's relationships have been fetched.
	LoadedMsg struct {
		Seq     int
		Name    string
		Summary *explore.Summary
		Err     error
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
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state != StateLoading {
				m.cancel()
				return m, tea.Quit
			}
			m.cancelLoad()
			return m, nil

		case "up":
			if m.state == StateBrowse && m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.state == StateBrowse && m.cursor < len(m.current.Similar)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if m.state == StateLoading {
				return m, nil
			}
			if name := strings.TrimSpace(m.textInput.Value()); name != "" {
				return m, m.open(name)
			}
			if m.state == StateBrowse && m.cursor < len(m.current.Similar) {
				if name, ok := m.current.Similar[m.cursor].Name(); ok {
					return m, m.open(name)
				}
			}
			return m, nil

		case "backspace":
			if m.textInput.Value() == "" && m.state != StateLoading && len(m.history) > 0 {
				m.back()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LoadedMsg:
		if msg.Seq != m.seq || m.state != StateLoading {
			return m, nil
		}
		m.manager = nil
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.cache[msg.Name] = msg.Summary
		m.show(msg.Summary)

	case TickMsg:
		if m.manager != nil && m.state == StateLoading {
			done, _ := m.manager.GetProgress()
			cmds = append(cmds, m.progress.SetPercent(float64(done)/relationsPerTag), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state != StateLoading {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// open shows a cached tag or starts loading it.
func (m *Model) open(name string) tea.Cmd {
	m.textInput.SetValue("")
	if s, ok := m.cache[name]; ok {
		m.show(s)
		return nil
	}

	settings := *m.settings
	settings.ExploreDepth = 0
	manager, err := explore.NewManager(m.fetcher, &settings, nil)
	if err != nil {
		m.state = StateError
		m.err = err
		return nil
	}

	m.seq++
	m.manager = manager
	m.loading = name
	m.state = StateLoading
	return tea.Batch(
		loadTag(m.ctx, manager, name, m.seq),
		m.progress.SetPercent(0),
		m.spinner.Tick,
		m.tickProgress(),
	)
}

// show makes s the current tag, remembering the previous one for back.
func (m *Model) show(s *explore.Summary) {
	if m.current != nil && m.current != s {
		m.history = append(m.history, m.current.Name())
	}
	m.current = s
	m.cursor = 0
	m.state = StateBrowse
	m.err = nil

	m.logs = m.logs[:0]
	for rel, err := range s.Errors {
		m.logs = append(m.logs, LogEntry{
			Message: fmt.Sprintf("%s: %v", rel, err),
			Level:   explore.LevelError,
		})
	}
}

func (m *Model) back() {
	last := len(m.history) - 1
	prev := m.history[last]
	m.history = m.history[:last]

	m.current = m.cache[prev]
	m.cursor = 0
	m.err = nil
	m.state = StateBrowse
}

func (m *Model) cancelLoad() {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.manager = nil
	m.seq++
	if m.current != nil {
		m.state = StateBrowse
	} else {
		m.state = StateInput
	}
	m.logs = append(m.logs, LogEntry{Message: fmt.Sprintf("cancelled loading %s", m.loading), Level: explore.LevelWarning})
}

// loadTag fetches the relationships of one tag in the background.
func loadTag(ctx context.Context, manager *explore.Manager, name string, seq int) tea.Cmd {
	return func() tea.Msg {
		if err := manager.Initialize(ctx, name); err != nil {
			return LoadedMsg{Seq: seq, Name: name, Err: err}
		}
		if err := manager.Expand(ctx); err != nil {
			return LoadedMsg{Seq: seq, Name: name, Err: err}
		}
		summaries := manager.Summaries()
		if len(summaries) == 0 {
			return LoadedMsg{Seq: seq, Name: name, Err: explore.ErrNoTags}
		}
		return LoadedMsg{Seq: seq, Name: name, Summary: summaries[0]}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ Last.fm Tag Graph"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Browse tags, their neighbours and charts"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Tag:"))
	b.WriteString(" ")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateBrowse:
		b.WriteString(m.viewBrowse())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Fetching %s...", m.loading)))
	b.WriteString("\n")
	b.WriteString(m.progress.View())
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) viewBrowse() string {
	var b strings.Builder
	s := m.current

	if len(m.history) > 0 {
		b.WriteString(dimStyle.Render(strings.Join(m.history, " › ") + " ›"))
		b.WriteString("\n")
	}
	b.WriteString(titleStyle.Render(s.Name()))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Similar tags (%d):", len(s.Similar))))
	b.WriteString("\n")
	if len(s.Similar) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for i, tag := range s.Similar {
		name, _ := tag.Name()
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var charts strings.Builder
	writeChart(&charts, "Top artists", artistNames(s.TopArtists))
	writeChart(&charts, "Top albums", albumNames(s.TopAlbums))
	writeChart(&charts, "Top tracks", trackNames(s.TopTracks))
	b.WriteString(boxStyle.Render(strings.TrimRight(charts.String(), "\n")))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case explore.LevelError:
			style = errorStyle
			prefix = "✗"
		case explore.LevelWarning:
			style = warningStyle
			prefix = "!"
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
	case StateInput, StateError:
		return "enter: open tag • backspace: back • esc: quit"
	case StateLoading:
		return "esc: cancel"
	case StateBrowse:
		return "↑/↓: select • enter: follow • type + enter: open tag • backspace: back • esc: quit"
	}
	return ""
}

func writeChart(b *strings.Builder, title string, names []string) {
	b.WriteString(infoStyle.Render(title + ":"))
	b.WriteString("\n")
	if len(names) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for i, name := range names {
		fmt.Fprintf(b, "  %d. %s\n", i+1, name)
	}
}

func artistNames(artists []*model.Artist) []string {
	var names []string
	for _, a := range artists[:min(len(artists), chartSize)] {
		name, _ := a.Name()
		names = append(names, name)
	}
	return names
}

func albumNames(albums []*model.Album) []string {
	var names []string
	for _, a := range albums[:min(len(albums), chartSize)] {
		name, _ := a.Name()
		names = append(names, withArtist(a.Artist(), name))
	}
	return names
}

func trackNames(tracks []*model.Track) []string {
	var names []string
	for _, t := range tracks[:min(len(tracks), chartSize)] {
		name, _ := t.Name()
		names = append(names, withArtist(t.Artist(), name))
	}
	return names
}

func withArtist(artist *model.Artist, title string) string {
	if artist == nil {
		return title
	}
	if name, ok := artist.Name(); ok {
		return name + " - " + title
	}
	return title
}

// Run starts the TUI application.
func Run(f lastfm.Fetcher, settings *config.Settings) error {
	p := tea.NewProgram(NewModel(f, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
