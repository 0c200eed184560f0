package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/theme"
)

// colKey is the table column holding the source key
const colKey = 1

func newSourceTable() table.Model {
	t := table.New(
		table.WithColumns(sourceColumns(100)),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = theme.TableHeaderStyle
	styles.Cell = theme.TableCellStyle
	styles.Selected = theme.TableSelectedStyle
	t.SetStyles(styles)
	return t
}

// sourceColumns sizes the columns for the terminal width. The output
// column takes what is left.
func sourceColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: " ", Width: 2},
		{Title: "Source", Width: 18},
		{Title: "State", Width: 16},
		{Title: "Duration", Width: 10},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	rest := width - used - 4
	output := max(rest*3/5, 12)
	info := max(rest-output, 12)

	return append(fixed,
		table.Column{Title: "Output", Width: output},
		table.Column{Title: "Info", Width: info},
	)
}

// buildRows turns a snapshot into table rows sorted by source key
func buildRows(snapshot map[string]domain.SourceStatus, now time.Time) []table.Row {
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]table.Row, 0, len(keys))
	for _, key := range keys {
		st := snapshot[key]
		rows = append(rows, table.Row{
			st.State.Symbol(),
			st.Key,
			stateLabel(st),
			sessionDuration(st, now),
			outputName(st),
			statusInfo(st),
		})
	}
	return rows
}

func stateLabel(st domain.SourceStatus) string {
	if st.Suppressed {
		return string(st.State) + " (stopped)"
	}
	return string(st.State)
}

func sessionDuration(st domain.SourceStatus, now time.Time) string {
	if st.SessionStartTime == nil {
		return "-"
	}
	return formatDuration(now.Sub(*st.SessionStartTime))
}

func outputName(st domain.SourceStatus) string {
	if st.OutputPath == "" {
		return ""
	}
	return filepath.Base(st.OutputPath)
}

func statusInfo(st domain.SourceStatus) string {
	var parts []string
	if st.LastError != "" {
		parts = append(parts, firstLine(st.LastError))
	}
	if st.CrashCount > 0 {
		parts = append(parts, fmt.Sprintf("crashes: %d", st.CrashCount))
	}
	if st.ResolveFailures > 0 {
		parts = append(parts, fmt.Sprintf("resolve failures: %d", st.ResolveFailures))
	}
	if len(parts) == 0 && !st.LastPolledAt.IsZero() {
		parts = append(parts, "polled "+st.LastPolledAt.Format("15:04:05"))
	}
	return strings.Join(parts, " · ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatDuration renders d as H:MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}

// renderSummary renders the per-state counts in display order
func renderSummary(snapshot map[string]domain.SourceStatus) string {
	if len(snapshot) == 0 {
		return theme.HelpLabelStyle.Render("No watched sources. Add one with: webcorder sources add <url> --autorecord")
	}

	counts := domain.CountStates(snapshot)
	var parts []string
	for _, state := range domain.AllStates() {
		n := counts[state]
		if n == 0 {
			continue
		}
		parts = append(parts, theme.StateStyle(state).Render(fmt.Sprintf("%s %d %s", state.Symbol(), n, state)))
	}
	return strings.Join(parts, "  ")
}
