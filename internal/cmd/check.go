package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plexlevi/webcorder/internal/logging"
)

// CheckCmd resolves one source without recording it
type CheckCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Target string `arg:"" help:"Source key or page URL"`
}

// Run executes the check command
func (c *CheckCmd) Run(cli *CLI) error {
	timeout := cli.Container.Runtime.Load().ResolveTimeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	source, result, err := cli.Container.SourceService.Check(ctx, c.Target)
	if err != nil {
		logging.Logger.Warn("Check failed", "target", c.Target, "error", err)
		return err
	}

	if c.Format == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"key":       source.Key,
			"live":      result.Live,
			"media_url": result.MediaURL,
			"protocol":  result.Protocol,
			"url":       source.URL,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if !result.Live {
		fmt.Printf("%s: offline\n", source.Key)
		return nil
	}
	fmt.Printf("%s: live (%s)\n", source.Key, result.Protocol)
	fmt.Printf("  %s\n", result.MediaURL)
	return nil
}
