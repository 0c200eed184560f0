package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/server"
	"github.com/plexlevi/webcorder/internal/services"
	"github.com/plexlevi/webcorder/internal/ui"
)

// shutdownSlack is added to the unwatch timeout when waiting for all
// captures to finalize on exit
const shutdownSlack = 5 * time.Second

// RunCmd watches all enabled sources until interrupted
type RunCmd struct {
	Headless     bool          `help:"Log to stderr instead of showing the dashboard"`
	OutputDir    string        `help:"Directory for recordings (overrides settings.json)" type:"path"`
	PollInterval time.Duration `help:"Liveness poll interval, e.g. 30s (overrides settings.json)"`
	SSH          bool          `help:"Also serve the dashboard over SSH" name:"ssh"`
	SSHAddr      string        `help:"SSH listen address" name:"ssh-addr" env:"WEBCORDER_SSH_ADDR"`
}

// Run executes the engine
func (r *RunCmd) Run(cli *CLI) error {
	c := cli.Container
	if r.Headless {
		logging.AttachConsole(os.Stderr, slog.LevelInfo)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Launcher.CheckAvailable(ctx); err != nil {
		return err
	}

	if r.PollInterval > 0 {
		if err := r.reload(c.Runtime, c.Settings, nil); err != nil {
			return fmt.Errorf("invalid poll interval: %w", err)
		}
	}

	supervisor, sources := c.NewSupervisor(r.outputDir(c.Settings))
	controller := newDashboardController(supervisor, sources)

	// Created before any monitor starts so a bad address fails fast
	var srv *server.Server
	if r.SSH {
		var err error
		srv, err = server.NewServer(server.Options{
			Addr:               r.sshAddr(c.Settings),
			AuthorizedKeysPath: c.Settings.AuthorizedKeysPath,
			Controller:         controller,
			HostKeyDir:         filepath.Join(config.GetHome(), "ssh"),
			Refresh:            ui.DefaultRefreshInterval,
			Title:              "ssh",
		})
		if err != nil {
			return err
		}
	}

	logging.Logger.Info("Starting webcorder", "headless", r.Headless, "ssh", r.SSH)
	if err := sources.Sync(ctx); err != nil {
		logging.Logger.Warn("Initial sync incomplete", "error", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		syncLoop(gctx, sources, c.Settings.GetSyncInterval())
		return nil
	})

	g.Go(func() error {
		r.reloadOnHangup(gctx, c.Runtime, supervisor)
		return nil
	})

	watcher, err := config.NewWatcher(config.GetSettingsPath(), config.DefaultWatchDebounce, func() {
		r.reloadFromDisk(c.Runtime, supervisor)
	})
	if err != nil {
		logging.Logger.Warn("Settings hot reload disabled", "error", err)
	} else {
		g.Go(func() error {
			watcher.Start(gctx)
			return nil
		})
	}

	if srv != nil {
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	if r.Headless {
		<-gctx.Done()
	} else {
		runErr := runDashboard(gctx, controller)
		if runErr != nil {
			logging.Logger.Error("Dashboard error", "error", runErr)
		}
	}

	cancel()
	groupErr := g.Wait()

	logging.Logger.Info("Stopping all monitors", "count", supervisor.Len())
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), c.Runtime.Load().UnwatchTimeout+shutdownSlack)
	defer shutdownCancel()
	if err := supervisor.ShutdownAll(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown incomplete: %w", err)
	}

	logging.Logger.Info("webcorder stopped")
	if groupErr != nil && !errors.Is(groupErr, context.Canceled) {
		return groupErr
	}
	return nil
}

func runDashboard(ctx context.Context, controller ui.Controller) error {
	p := tea.NewProgram(
		ui.NewModel(controller, ui.DefaultRefreshInterval, ""),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logging.Logger.Info("Starting dashboard")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	logging.Logger.Info("Dashboard exited")
	return nil
}

// syncLoop picks up sources added or toggled by other commands
func syncLoop(ctx context.Context, sources *services.SourceService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sources.Sync(ctx); err != nil && ctx.Err() == nil {
				logging.Logger.Warn("Sync failed", "error", err)
			}
		}
	}
}

func (r *RunCmd) reloadOnHangup(ctx context.Context, rt *config.Runtime, supervisor *services.Supervisor) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logging.Logger.Info("SIGHUP received, reloading settings")
			r.reloadFromDisk(rt, supervisor)
		}
	}
}

func (r *RunCmd) reloadFromDisk(rt *config.Runtime, supervisor *services.Supervisor) {
	settings, err := config.LoadSettings()
	if err != nil {
		logging.Logger.Error("Settings reload failed, keeping current values", "error", err)
		return
	}
	if err := r.reload(rt, settings, supervisor); err != nil {
		logging.Logger.Error("Settings reload rejected", "error", err)
		return
	}
	logging.Logger.Info("Settings reloaded")
}

// reload recomputes tunables from settings, keeping flag overrides on top
func (r *RunCmd) reload(rt *config.Runtime, settings *config.Settings, supervisor *services.Supervisor) error {
	t := settings.ApplyTunables(config.DefaultTunables())
	if r.PollInterval > 0 {
		t.PollInterval = r.PollInterval
	}
	if supervisor != nil {
		return supervisor.Reload(t)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	rt.Store(t)
	return nil
}

func (r *RunCmd) outputDir(settings *config.Settings) string {
	if r.OutputDir != "" {
		return r.OutputDir
	}
	if settings.OutputDir != "" {
		return settings.OutputDir
	}
	return config.DefaultOutputDir()
}

func (r *RunCmd) sshAddr(settings *config.Settings) string {
	if r.SSHAddr != "" {
		return r.SSHAddr
	}
	if settings.SSHAddr != "" {
		return settings.SSHAddr
	}
	return config.DefaultSSHAddr
}
