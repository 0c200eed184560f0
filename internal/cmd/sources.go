package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
)

// SourcesCmd manages the watch list
type SourcesCmd struct {
	Add        SourcesAddCmd        `cmd:"add" help:"Add a source page URL"`
	Autorecord SourcesAutorecordCmd `cmd:"autorecord" help:"Turn automatic recording on or off"`
	Del        SourcesDelCmd        `cmd:"del" aliases:"rm" help:"Delete a source"`
	List       SourcesListCmd       `cmd:"list" aliases:"ls" help:"List all sources" default:"1"`
}

// SourcesAddCmd adds a source
type SourcesAddCmd struct {
	Autorecord bool   `help:"Record automatically whenever the source is live" short:"a"`
	Key        string `help:"Source key (derived from the URL when empty)" short:"k"`
	URL        string `arg:"" help:"Page URL of the source"`
}

// Run executes the add command
func (s *SourcesAddCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing sources add command", "url", s.URL, "key", s.Key, "autorecord", s.Autorecord)

	source, err := cli.Container.SourceService.AddSource(context.Background(), s.URL, s.Key, s.Autorecord)
	if err != nil {
		return err
	}

	fmt.Printf("Source '%s' added\n", source.Key)
	if source.WatchEnabled {
		fmt.Println("Autorecord is on; a running webcorder picks it up on its next sync.")
	}
	return nil
}

// SourcesDelCmd deletes a source
type SourcesDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	Key   string `arg:"" help:"Key of the source to delete"`
}

// Run executes the del command
func (s *SourcesDelCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing sources del command", "key", s.Key, "force", s.Force)

	ctx := context.Background()
	if _, err := cli.Container.SourceService.GetSource(ctx, s.Key); err != nil {
		return fmt.Errorf("source not found: %w", err)
	}

	if !s.Force {
		confirmed, err := s.confirmDeletion()
		if err != nil {
			return err
		}
		if !confirmed {
			logging.Logger.Info("User cancelled source deletion", "key", s.Key)
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.SourceService.RemoveSource(ctx, s.Key); err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}

	fmt.Printf("Source '%s' deleted (recordings on disk are kept)\n", s.Key)
	return nil
}

func (s *SourcesDelCmd) confirmDeletion() (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete source '%s'?", s.Key)).
		Description("Its session history is removed too.").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return confirmed, err
}

// SourcesListCmd lists sources
type SourcesListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type sourceOutput struct {
	Autorecord   bool       `json:"autorecord"`
	CreatedAt    time.Time  `json:"created_at"`
	Key          string     `json:"key"`
	LastLive     bool       `json:"last_live"`
	LastPolledAt *time.Time `json:"last_polled_at,omitempty"`
	URL          string     `json:"url"`
}

// Run executes the list command
func (s *SourcesListCmd) Run(cli *CLI) error {
	sources, err := cli.Container.SourceService.ListSources(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if s.Format == "json" {
		out := make([]sourceOutput, 0, len(sources))
		for _, src := range sources {
			o := sourceOutput{
				Autorecord: src.WatchEnabled,
				CreatedAt:  src.CreatedAt,
				Key:        src.Key,
				LastLive:   src.LastLive,
				URL:        src.URL,
			}
			if !src.LastPolledAt.IsZero() {
				polled := src.LastPolledAt
				o.LastPolledAt = &polled
			}
			out = append(out, o)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(sources) == 0 {
		fmt.Println("No sources. Add one with 'webcorder sources add <url>'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Key\tAutorecord\tLast Seen\tURL")
	fmt.Fprintln(w, "───\t──────────\t─────────\t───")
	for _, src := range sources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", src.Key, onOff(src.WatchEnabled), lastSeen(src), src.URL)
	}
	return w.Flush()
}

// SourcesAutorecordCmd toggles automatic recording
type SourcesAutorecordCmd struct {
	Key   string `arg:"" help:"Source key"`
	State string `arg:"" help:"on or off" enum:"on,off"`
}

// Run executes the autorecord command
func (s *SourcesAutorecordCmd) Run(cli *CLI) error {
	enabled := s.State == "on"
	if err := cli.Container.SourceService.SetAutorecord(context.Background(), s.Key, enabled); err != nil {
		return fmt.Errorf("failed to set autorecord: %w", err)
	}
	fmt.Printf("Autorecord for '%s' is %s\n", s.Key, s.State)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func lastSeen(src domain.Source) string {
	if src.LastPolledAt.IsZero() {
		return "never"
	}
	state := "offline"
	if src.LastLive {
		state = "live"
	}
	return fmt.Sprintf("%s at %s", state, src.LastPolledAt.Local().Format("2006-01-02 15:04"))
}
