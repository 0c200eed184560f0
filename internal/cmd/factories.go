package cmd

import (
	"context"

	adapterffmpeg "github.com/plexlevi/webcorder/internal/adapters/ffmpeg"
	adapterresolver "github.com/plexlevi/webcorder/internal/adapters/resolver"
	adapterstorage "github.com/plexlevi/webcorder/internal/adapters/storage"
	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
	"github.com/plexlevi/webcorder/internal/services"
	"github.com/plexlevi/webcorder/internal/ui"
)

// Container holds all dependencies for the application
type Container struct {
	Launcher      *adapterffmpeg.Launcher
	Resolver      ports.Resolver
	Runtime       *config.Runtime
	Settings      *config.Settings
	SourceService *services.SourceService

	// Internal - for cleanup only
	sourceRepo ports.SourceRepository
}

// NewContainer creates a new Container with all dependencies wired.
// The SourceService it holds edits the watch list only; the run command
// builds its own with a live Supervisor.
func NewContainer(settings *config.Settings) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}

	sourceRepo, err := adapterstorage.NewSQLiteRepository(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	runtime := config.NewRuntime(settings.ApplyTunables(config.DefaultTunables()))
	resolver := adapterresolver.NewCommandResolver(settings.GetResolverCommand(), settings.OfflineMarkers)
	launcher := adapterffmpeg.NewLauncher(settings.CaptureTool, runtime)

	return &Container{
		Launcher:      launcher,
		Resolver:      resolver,
		Runtime:       runtime,
		Settings:      settings,
		SourceService: services.NewSourceService(sourceRepo, sourceRepo, sourceRepo, resolver, nil),
		sourceRepo:    sourceRepo,
	}, nil
}

// NewSupervisor builds a Supervisor writing below outputDir and a
// SourceService that keeps it in line with the database
func (c *Container) NewSupervisor(outputDir string) (*services.Supervisor, *services.SourceService) {
	if outputDir == "" {
		outputDir = config.DefaultOutputDir()
	}
	logging.Logger.Info("Building supervisor",
		"output_dir", outputDir,
		"container", c.Settings.GetContainer())

	supervisor := services.NewSupervisor(services.MonitorDeps{
		Journal:  c.sourceRepo,
		Launcher: c.Launcher,
		Namer:    services.NewPathNamer(outputDir, c.Settings.GetContainer()),
		Resolver: c.Resolver,
		Runtime:  c.Runtime,
	})
	sources := services.NewSourceService(c.sourceRepo, c.sourceRepo, c.sourceRepo, c.Resolver, supervisor)
	return supervisor, sources
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.sourceRepo != nil {
		return c.sourceRepo.Close()
	}
	return nil
}

// dashboardController adapts the engine to the dashboard
type dashboardController struct {
	sources    *services.SourceService
	supervisor *services.Supervisor
}

// Verify interface compliance at compile time
var _ ui.Controller = (*dashboardController)(nil)

func newDashboardController(supervisor *services.Supervisor, sources *services.SourceService) *dashboardController {
	return &dashboardController{sources: sources, supervisor: supervisor}
}

func (d *dashboardController) ResumeRecording(key string) error {
	return d.supervisor.ResumeRecording(key)
}

func (d *dashboardController) StatusSnapshot() map[string]domain.SourceStatus {
	return d.supervisor.StatusSnapshot()
}

func (d *dashboardController) StopRecording(key string) error {
	return d.supervisor.StopRecording(key)
}

func (d *dashboardController) ToggleAutorecord(ctx context.Context, key string) (bool, error) {
	return d.sources.ToggleAutorecord(ctx, key)
}
