package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/amterp/namemap/internal/config"
	"github.com/amterp/namemap/internal/discovery"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/prompt"
	"github.com/amterp/namemap/internal/service"
	"github.com/amterp/namemap/internal/store"
)

// Overrides are command-line values that take precedence over namemap.toml.
// Paths are relative to the working directory, not the project root.
type Overrides struct {
	Input     string
	OutputDir string
	MaxColors int
}

// Apply writes the non-zero overrides into cfg.
func (o Overrides) Apply(cfg *model.ProjectConfig) error {
	if o.Input != "" {
		abs, err := filepath.Abs(o.Input)
		if err != nil {
			return fmt.Errorf("failed to resolve input path: %w", err)
		}
		cfg.Input = abs
	}
	if o.OutputDir != "" {
		abs, err := filepath.Abs(o.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to resolve output path: %w", err)
		}
		cfg.OutputDir = abs
	}
	if o.MaxColors != 0 {
		cfg.MaxColors = o.MaxColors
	}
	return cfg.Validate()
}

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Paths           *config.Paths
	Config          *model.ProjectConfig
	HasConfig       bool
	ConfigStore     store.ConfigStore
	Artifacts       store.ArtifactStore
	Prompter        prompt.Prompter
	Log             *logrus.Logger
	InitService     *service.InitService
	GenerateService *service.GenerateService
	CheckService    *service.CheckService
	ProjectRoot     string
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(opts globalOptions, overrides Overrides) (*App, error) {
	result, err := discovery.DiscoverProject()
	if err != nil {
		return nil, err
	}

	paths := config.NewPaths(result.ProjectRoot)
	configStore := store.NewConfigStore(paths)

	cfg, err := configStore.Load()
	if err != nil {
		return nil, err
	}
	if err := overrides.Apply(cfg); err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if opts.Interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	log := newLogger(os.Stderr, opts.Verbose)
	artifacts := store.NewArtifactStore(paths, cfg)

	return &App{
		Paths:           paths,
		Config:          cfg,
		HasConfig:       result.HasConfig,
		ConfigStore:     configStore,
		Artifacts:       artifacts,
		Prompter:        prompter,
		Log:             log,
		InitService:     service.NewInitService(paths, configStore),
		GenerateService: service.NewGenerateService(paths, cfg, artifacts, log),
		CheckService:    service.NewCheckService(paths, cfg, artifacts),
		ProjectRoot:     result.ProjectRoot,
	}, nil
}

// newLogger builds the diagnostics logger. Diagnostics go to stderr so that
// stdout stays clean for --json output.
func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("Error: %v", err)
	os.Exit(1)
}
