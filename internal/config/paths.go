package config

import (
	"path/filepath"

	"github.com/amterp/namemap/internal/model"
)

const ConfigFileName = "namemap.toml"

// Paths provides path resolution for project files. Relative paths in the
// project config are resolved against the project root.
type Paths struct {
	projectRoot string
}

// NewPaths creates a new Paths resolver for the given project.
func NewPaths(projectRoot string) *Paths {
	return &Paths{projectRoot: projectRoot}
}

// ProjectRoot returns the directory holding namemap.toml.
func (p *Paths) ProjectRoot() string {
	return p.projectRoot
}

// ConfigPath returns the path to the project config file.
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.projectRoot, ConfigFileName)
}

// Resolve returns path unchanged if absolute, otherwise joined to the project root.
func (p *Paths) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.projectRoot, path)
}

// InputPath returns the input table path.
func (p *Paths) InputPath(cfg *model.ProjectConfig) string {
	return p.Resolve(cfg.Input)
}

// OutputDir returns the directory artifacts are written to.
func (p *Paths) OutputDir(cfg *model.ProjectConfig) string {
	return p.Resolve(cfg.OutputDir)
}

// ColorsPath returns the path of the name→color JSON table.
func (p *Paths) ColorsPath(cfg *model.ProjectConfig) string {
	return filepath.Join(p.OutputDir(cfg), cfg.ColorsFile)
}

// PreviewPath returns the path of the HTML palette preview.
func (p *Paths) PreviewPath(cfg *model.ProjectConfig) string {
	return filepath.Join(p.OutputDir(cfg), cfg.PreviewFile)
}
