package service

import (
	"fmt"
	"os"

	"github.com/amterp/namemap/internal/config"
	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/store"
)

// InitService handles project initialization.
type InitService struct {
	paths       *config.Paths
	configStore store.ConfigStore
}

// NewInitService creates a new init service.
func NewInitService(paths *config.Paths, configStore store.ConfigStore) *InitService {
	return &InitService{paths: paths, configStore: configStore}
}

// Initialize writes namemap.toml into the project root and creates the output
// directory. An existing config is only replaced when force is set.
func (s *InitService) Initialize(cfg *model.ProjectConfig, force bool) error {
	if s.configStore.Exists() && !force {
		return nmerr.ConfigAlreadyExists(s.paths.ConfigPath())
	}
	if cfg == nil {
		cfg = model.DefaultProjectConfig()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.paths.OutputDir(cfg), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return s.configStore.Save(cfg)
}
