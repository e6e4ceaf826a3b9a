package store

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/amterp/namemap/internal/config"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/version"
)

// FileConfigStore implements ConfigStore using the filesystem.
type FileConfigStore struct {
	paths *config.Paths
}

// NewConfigStore creates a new config store.
func NewConfigStore(paths *config.Paths) *FileConfigStore {
	return &FileConfigStore{paths: paths}
}

// Load reads the project config from disk.
// Returns the default config if the file doesn't exist. Missing fields are
// filled with defaults.
func (s *FileConfigStore) Load() (*model.ProjectConfig, error) {
	path := s.paths.ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultProjectConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg model.ProjectConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Strict version validation
	if cfg.Schema == "" {
		return nil, version.MissingConfigSchema(path)
	}
	if cfg.Schema != version.CurrentConfigSchema() {
		return nil, version.InvalidConfigSchema(path, cfg.Schema)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the project config to disk.
func (s *FileConfigStore) Save(cfg *model.ProjectConfig) error {
	// Stamp current schema version
	cfg.Schema = version.CurrentConfigSchema()

	f, err := os.Create(s.paths.ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if the config file exists.
func (s *FileConfigStore) Exists() bool {
	_, err := os.Stat(s.paths.ConfigPath())
	return err == nil
}
