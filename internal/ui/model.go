package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/theme"
)

// DefaultRefreshInterval is how often the dashboard reads the snapshot
const DefaultRefreshInterval = time.Second

// actionTimeout bounds actions that touch the database
const actionTimeout = 30 * time.Second

type uiState int

const (
	stateList uiState = iota
	stateHelp
)

// Controller is what the dashboard reads and drives
type Controller interface {
	ResumeRecording(key string) error
	StatusSnapshot() map[string]domain.SourceStatus
	StopRecording(key string) error
	ToggleAutorecord(ctx context.Context, key string) (bool, error)
}

type Model struct {
	controller      Controller
	err             error     // Last action error, shown until errorClearAt
	errorClearAt    time.Time
	errorClearDelay time.Duration
	height          int
	helpScreen      *HelpScreen
	info            string // Last action result
	keys            KeyMap
	refresh         time.Duration
	snapshot        map[string]domain.SourceStatus
	state           uiState
	table           table.Model
	title           string
	width           int
}

// NewModel creates the dashboard. title is shown in the header (usually
// the version).
func NewModel(controller Controller, refresh time.Duration, title string) *Model {
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	return &Model{
		controller:      controller,
		errorClearDelay: 10 * time.Second,
		keys:            NewKeyMap(),
		refresh:         refresh,
		snapshot:        map[string]domain.SourceStatus{},
		state:           stateList,
		table:           newSourceTable(),
		title:           title,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(sourceColumns(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-8, 3))
		if m.helpScreen != nil {
			m.helpScreen.Update(msg)
		}
		return m, nil

	case tickMsg:
		m.refreshRows(time.Time(msg))
		return m, m.tick()

	case actionResultMsg:
		if msg.err != nil {
			logging.Logger.Warn("Dashboard action failed", "error", msg.err)
			m.setError(msg.err)
		} else {
			m.info = msg.info
		}
		m.refreshRows(time.Now())
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ShowHelpMsg:
		m.helpScreen = NewHelpScreen(&m.keys)
		m.helpScreen.Init()
		if m.width > 0 {
			m.helpScreen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		m.state = stateHelp
		return m, nil

	case StopRecordingMsg:
		return m, m.run(func() (string, error) {
			return "stopping " + msg.Key, m.controller.StopRecording(msg.Key)
		})

	case ResumeRecordingMsg:
		return m, m.run(func() (string, error) {
			return "resumed " + msg.Key, m.controller.ResumeRecording(msg.Key)
		})

	case ToggleAutorecordMsg:
		return m, m.run(func() (string, error) {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			enabled, err := m.controller.ToggleAutorecord(ctx, msg.Key)
			if enabled {
				return "watching " + msg.Key, err
			}
			return "unwatched " + msg.Key, err
		})

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.state == stateHelp {
			m.helpScreen.Update(msg)
			if m.helpScreen.Completed {
				m.helpScreen = nil
				m.state = stateList
			}
			return m, nil
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dispatcher := NewActionDispatcher(m.selectedKey())
	bindings := []struct {
		binding key.Binding
		name    string
	}{
		{m.keys.Help, "help"},
		{m.keys.Quit, "quit"},
		{m.keys.ResumeRecording, "resume_recording"},
		{m.keys.StopRecording, "stop_recording"},
		{m.keys.ToggleAutorecord, "toggle_autorecord"},
	}
	for _, b := range bindings {
		if !key.Matches(msg, b.binding) {
			continue
		}
		action := dispatcher.Dispatch(*GetKeyDefinition(b.name))
		if action == nil {
			return m, nil
		}
		return m, func() tea.Msg { return action }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// run executes fn off the UI loop and reports its result
func (m *Model) run(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		info, err := fn()
		return actionResultMsg{err: err, info: info}
	}
}

func (m *Model) refreshRows(now time.Time) {
	m.snapshot = m.controller.StatusSnapshot()
	m.table.SetRows(buildRows(m.snapshot, now))
	if m.err != nil && now.After(m.errorClearAt) {
		m.err = nil
	}
}

func (m *Model) setError(err error) {
	m.err = err
	m.errorClearAt = time.Now().Add(m.errorClearDelay)
	m.info = ""
}

func (m *Model) selectedKey() string {
	row := m.table.SelectedRow()
	if len(row) <= colKey {
		return ""
	}
	return row[colKey]
}

// View implements tea.Model
func (m *Model) View() string {
	if m.state == stateHelp && m.helpScreen != nil {
		return m.helpScreen.View()
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.title))
	b.WriteString("  " + renderSummary(m.snapshot) + "\n\n")
	b.WriteString(m.table.View() + "\n")

	switch {
	case m.err != nil:
		b.WriteString(theme.ErrorStyle.Render(formatErrorForDisplay(m.err, m.width)) + "\n")
	case m.info != "":
		b.WriteString(theme.SubtitleStyle.Render(m.info) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderFooter() string {
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, theme.HelpShortcutStyle.Render(help.Key)+" "+theme.HelpLabelStyle.Render(help.Desc))
	}
	footer := strings.Join(parts, theme.HelpLabelStyle.Render(" • "))
	if m.width > 0 {
		footer = lipgloss.NewStyle().MaxWidth(m.width).Render(footer)
	}
	return footer
}
