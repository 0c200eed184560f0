package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/plexlevi/webcorder/internal/domain"
)

// SessionsCmd inspects the session archive
type SessionsCmd struct {
	List SessionsListCmd `cmd:"list" aliases:"ls" help:"List recorded sessions, newest first" default:"1"`
}

// SessionsListCmd lists sessions
type SessionsListCmd struct {
	Active bool   `help:"Only show sessions that have not ended"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of sessions (0 = all)" default:"20" short:"n"`
	Source string `help:"Only show sessions of this source" short:"s"`
}

type sessionOutput struct {
	BytesWritten int64      `json:"bytes_written"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Error        string     `json:"error,omitempty"`
	Escalated    bool       `json:"escalated"`
	ExitCode     *int       `json:"exit_code,omitempty"`
	ID           string     `json:"id"`
	OutputPath   string     `json:"output_path"`
	SourceKey    string     `json:"source_key"`
	StartedAt    time.Time  `json:"started_at"`
	Termination  string     `json:"termination"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	sessions, err := cli.Container.SourceService.ListSessions(context.Background(), domain.SessionFilter{
		ActiveOnly: s.Active,
		Limit:      s.Limit,
		SourceKey:  s.Source,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if s.Format == "json" {
		out := make([]sessionOutput, 0, len(sessions))
		for _, sess := range sessions {
			out = append(out, sessionOutput{
				BytesWritten: sess.BytesWritten,
				EndedAt:      sess.EndedAt,
				Error:        sess.Error,
				Escalated:    sess.Escalated,
				ExitCode:     sess.ExitCode,
				ID:           sess.ID,
				OutputPath:   sess.OutputPath,
				SourceKey:    sess.SourceKey,
				StartedAt:    sess.StartedAt,
				Termination:  string(sess.Termination),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Source\tStarted\tDuration\tSize\tResult\tFile")
	fmt.Fprintln(w, "──────\t───────\t────────\t────\t──────\t────")
	for _, sess := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			sess.SourceKey,
			sess.StartedAt.Local().Format("2006-01-02 15:04:05"),
			sess.Duration(now).Truncate(time.Second),
			formatBytes(sess.BytesWritten),
			sessionResult(sess),
			filepath.Base(sess.OutputPath))
	}
	return w.Flush()
}

func sessionResult(sess domain.Session) string {
	if sess.Active() {
		return "recording"
	}
	result := string(sess.Termination)
	if sess.ExitCode != nil {
		result = fmt.Sprintf("%s (exit %d)", result, *sess.ExitCode)
	}
	if sess.Escalated {
		result += " killed"
	}
	return result
}

// formatBytes formats sizes with binary units
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
