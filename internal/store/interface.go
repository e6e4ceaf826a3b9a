package store

import "github.com/amterp/namemap/internal/model"

// ConfigStore handles project config persistence.
type ConfigStore interface {
	Load() (*model.ProjectConfig, error)
	Save(config *model.ProjectConfig) error
	Exists() bool
}

// ArtifactStore handles the generated color table and palette preview.
type ArtifactStore interface {
	// Write stores both artifacts, or neither if any step fails.
	Write(artifacts *Artifacts) error
	LoadTable() (model.ColorTable, error)
	TableExists() bool
}

// Artifacts are the rendered outputs of one generate run.
type Artifacts struct {
	Colors  []byte // name→color JSON
	Preview []byte // palette HTML
}
