package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run      RunCmd      `cmd:"" help:"Watch enabled sources and record them while live (default)" default:"1"`
	Check    CheckCmd    `cmd:"check" help:"Resolve a source once and report whether it is live"`
	Sessions SessionsCmd `cmd:"sessions" help:"Inspect recorded sessions"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta)"`
	Sources  SourcesCmd  `cmd:"sources" help:"Manage watched sources (add, del, list, autorecord)"`
	Status   StatusCmd   `cmd:"status" help:"Show source and recording counts for status bars"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults.
	// Settings only apply when the flag is at its default and no env var is set.
	if c.settings != nil {
		if c.MaxLogFiles == config.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv("WEBCORDER_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("WEBCORDER_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Exported for readers that only see the environment, such as the
	// GORM log level in the storage adapter
	if c.Debug || c.DebugFile != "" {
		os.Setenv("WEBCORDER_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("WEBCORDER_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != config.DefaultMaxLogFiles {
		os.Setenv("WEBCORDER_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// GORM logs through logging.Logger, so the container comes last
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
