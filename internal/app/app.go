// Package app initializes and holds long-lived application services,
// acting as a dependency injection container for the CLI commands.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siteforge/siteforge/internal/analyzer"
	"github.com/siteforge/siteforge/internal/config"
	"github.com/siteforge/siteforge/internal/detector"
	"github.com/siteforge/siteforge/internal/discovery"
	"github.com/siteforge/siteforge/internal/fetcher"
	"github.com/siteforge/siteforge/internal/logging"
	"github.com/siteforge/siteforge/internal/pipeline"
	"github.com/siteforge/siteforge/internal/stages"
)

// App holds the shared services built once at startup.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	fetch    *fetcher.Client
	engine   *discovery.Engine
	analyzer *analyzer.Analyzer
	detector *detector.Detector
}

// New builds the service container from configuration. It fails fast if
// any service cannot be constructed.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	fetch := fetcher.New(fetcher.Config{
		UserAgent:    cfg.Crawler.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		ProbeTimeout: cfg.ProbeTimeout(),
	})
	engine := discovery.NewEngine(fetch, discovery.Config{
		MaxPerCategory:  cfg.Discovery.MaxPerCategory,
		MaxServiceLinks: cfg.Discovery.MaxServiceCap,
		MaxSections:     cfg.Discovery.MaxSections,
	}, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		fetch:    fetch,
		engine:   engine,
		analyzer: analyzer.New(fetch, logger),
		detector: detector.New(detector.DefaultProfiles(), logger),
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Engine returns the discovery engine.
func (a *App) Engine() *discovery.Engine { return a.engine }

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.logger.Sync()
}

// ProjectDir returns the state directory for a project.
func (a *App) ProjectDir(project string) string {
	return filepath.Join(a.cfg.Pipeline.OutputDir, project)
}

// NewProjectName generates a name for runs started without one.
func NewProjectName() string {
	return "project-" + uuid.NewString()[:8]
}

// Pipeline loads or creates the pipeline manager for a project, with
// the full stage registry wired in.
func (a *App) Pipeline(project string) (*pipeline.Manager, error) {
	dir := a.ProjectDir(project)
	stageList := []pipeline.Stage{
		stages.NewDiscovery(a.engine, a.analyzer, a.detector, dir, a.logger),
		stages.NewArchitecturePlanning(dir, a.logger),
		stages.NewContentStrategy(a.logger),
		stages.NewContentGeneration(a.logger),
		stages.NewSiteEmission(dir, a.logger),
	}
	return pipeline.New(project, dir, stageList, a.logger)
}
