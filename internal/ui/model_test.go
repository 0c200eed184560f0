package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexlevi/webcorder/internal/domain"
)

type fakeController struct {
	mu       sync.Mutex
	err      error
	resumed  []string
	snapshot map[string]domain.SourceStatus
	stopped  []string
	toggled  []string
}

func (c *fakeController) ResumeRecording(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumed = append(c.resumed, key)
	return c.err
}

func (c *fakeController) StatusSnapshot() map[string]domain.SourceStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

func (c *fakeController) StopRecording(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = append(c.stopped, key)
	return c.err
}

func (c *fakeController) ToggleAutorecord(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggled = append(c.toggled, key)
	return false, c.err
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func sampleSnapshot(now time.Time) map[string]domain.SourceStatus {
	started := now.Add(-90 * time.Second)
	return map[string]domain.SourceStatus{
		"bob": {
			Key:          "bob",
			LastPolledAt: now,
			State:        domain.StateOffline,
		},
		"alice": {
			Key:              "alice",
			OutputPath:       "/rec/alice/alice_20260301_200000.mp4",
			SessionStartTime: &started,
			State:            domain.StateRecording,
		},
		"carol": {
			CrashCount: 2,
			Key:        "carol",
			LastError:  "capture failed to start: 403 Forbidden\nmore",
			State:      domain.StateIdle,
			Suppressed: true,
		},
	}
}

func newTestModel(ctrl *fakeController) *Model {
	m := NewModel(ctrl, time.Second, "v1.0.0")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m.Update(tickMsg(time.Now()))
	return m
}

func TestBuildRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 1, 30, 0, time.UTC)
	rows := buildRows(sampleSnapshot(now), now)

	require.Len(t, rows, 3)
	assert.Equal(t, "alice", rows[0][colKey])
	assert.Equal(t, "bob", rows[1][colKey])
	assert.Equal(t, "carol", rows[2][colKey])

	assert.Equal(t, domain.SymbolRecording, rows[0][0])
	assert.Equal(t, "0:01:30", rows[0][3])
	assert.Equal(t, "alice_20260301_200000.mp4", rows[0][4])

	assert.Equal(t, "-", rows[1][3])
	assert.Equal(t, "polled 20:01:30", rows[1][5])

	assert.Equal(t, "idle (stopped)", rows[2][2])
	assert.Equal(t, "capture failed to start: 403 Forbidden · crashes: 2", rows[2][5])
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00:00"},
		{-time.Second, "0:00:00"},
		{59 * time.Second, "0:00:59"},
		{61 * time.Minute, "1:01:00"},
		{25*time.Hour + 3*time.Second, "25:00:03"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.in))
		})
	}
}

func TestModel_TickRefreshesRows(t *testing.T) {
	ctrl := &fakeController{snapshot: sampleSnapshot(time.Now())}
	m := NewModel(ctrl, time.Second, "")

	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick schedules the next refresh")
	assert.Len(t, m.table.Rows(), 3)
	assert.Equal(t, "alice", m.selectedKey())

	view := m.View()
	assert.Contains(t, view, "webcorder")
	assert.Contains(t, view, "1 recording")
}

func TestModel_StopRecording(t *testing.T) {
	ctrl := &fakeController{snapshot: sampleSnapshot(time.Now())}
	m := newTestModel(ctrl)

	_, cmd := m.Update(keyPress("s"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, StopRecordingMsg{Key: "alice"}, msg)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	result := cmd()
	assert.Equal(t, []string{"alice"}, ctrl.stopped)

	m.Update(result)
	assert.Contains(t, m.View(), "stopping alice")
}

func TestModel_NavigateAndResume(t *testing.T) {
	ctrl := &fakeController{snapshot: sampleSnapshot(time.Now())}
	m := newTestModel(ctrl)

	m.Update(keyPress("j"))
	m.Update(keyPress("j"))
	assert.Equal(t, "carol", m.selectedKey())

	_, cmd := m.Update(keyPress("r"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())
	cmd()
	assert.Equal(t, []string{"carol"}, ctrl.resumed)
}

func TestModel_ToggleAutorecord(t *testing.T) {
	ctrl := &fakeController{snapshot: sampleSnapshot(time.Now())}
	m := newTestModel(ctrl)

	_, cmd := m.Update(keyPress("a"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())
	m.Update(cmd())

	assert.Equal(t, []string{"alice"}, ctrl.toggled)
	assert.Contains(t, m.View(), "unwatched alice")
}

func TestModel_ActionWithoutSelection(t *testing.T) {
	ctrl := &fakeController{snapshot: map[string]domain.SourceStatus{}}
	m := newTestModel(ctrl)

	_, cmd := m.Update(keyPress("s"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No watched sources")
}

func TestModel_ActionErrorIsShown(t *testing.T) {
	ctrl := &fakeController{
		err:      domain.ErrSourceNotFound,
		snapshot: sampleSnapshot(time.Now()),
	}
	m := newTestModel(ctrl)

	_, cmd := m.Update(StopRecordingMsg{Key: "alice"})
	m.Update(cmd())

	assert.Contains(t, m.View(), "Error: source not found")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&fakeController{})

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, QuitMsg{}, cmd())

	_, cmd = m.Update(QuitMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(keyPress("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_HelpScreen(t *testing.T) {
	m := newTestModel(&fakeController{snapshot: sampleSnapshot(time.Now())})

	_, cmd := m.Update(keyPress("?"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, stateHelp, m.state)
	assert.Contains(t, m.View(), "Recording")

	m.Update(keyPress("esc"))
	assert.Equal(t, stateList, m.state)
	assert.Contains(t, m.View(), "alice")
}

func TestFormatErrorForDisplay(t *testing.T) {
	assert.Empty(t, formatErrorForDisplay(nil, 80))
	assert.Equal(t, "Error: boom", formatErrorForDisplay(errors.New("boom"), 80))

	long := errors.New(strings.Repeat("word ", 60))
	out := formatErrorForDisplay(long, 40)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, maxErrorLines)
	assert.True(t, strings.HasPrefix(lines[0], errorPrefix))
	assert.True(t, strings.HasSuffix(lines[1], truncationMark))
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 40)
	}
}

func TestKeyDefinitionsCoverActions(t *testing.T) {
	names := GetValidKeyNames()
	for _, action := range domain.Actions {
		assert.Contains(t, names, action.Name)
		def := GetKeyDefinition(action.Name)
		require.NotNil(t, def)
		assert.NotEmpty(t, def.Help)
	}
}
