package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/namemap/internal/config"
)

// Result contains the discovered project root.
type Result struct {
	ProjectRoot string // Absolute path to project root
	HasConfig   bool   // Whether namemap.toml exists there
}

// DiscoverProject finds the project root by walking up from cwd.
// A directory containing namemap.toml is the project root; when none is found the
// working directory is used with default settings.
func DiscoverProject() (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return DiscoverProjectFrom(cwd)
}

// DiscoverProjectFrom finds the project root starting from a given directory.
func DiscoverProjectFrom(startDir string) (*Result, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := absStart
	for {
		if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
			return &Result{ProjectRoot: dir, HasConfig: true}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, fall back to the starting directory
			return &Result{ProjectRoot: absStart, HasConfig: false}, nil
		}
		dir = parent
	}
}
