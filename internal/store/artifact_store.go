package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/namemap/internal/config"
	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
)

// FileArtifactStore implements ArtifactStore in the configured output directory.
type FileArtifactStore struct {
	paths *config.Paths
	cfg   *model.ProjectConfig
}

// NewArtifactStore creates a new artifact store.
func NewArtifactStore(paths *config.Paths, cfg *model.ProjectConfig) *FileArtifactStore {
	return &FileArtifactStore{paths: paths, cfg: cfg}
}

// MarshalTable renders a color table as indented JSON with sorted keys.
// Identical tables always produce identical bytes.
func MarshalTable(table model.ColorTable) ([]byte, error) {
	if table == nil {
		table = model.ColorTable{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]string(table)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores both artifacts. Each is first written to a hidden temp file in the
// output directory; the temp files are renamed into place only once both are
// complete, so a failed run leaves previous artifacts untouched.
func (s *FileArtifactStore) Write(a *Artifacts) error {
	dir := s.paths.OutputDir(s.cfg)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	targets := []struct {
		path string
		data []byte
	}{
		{s.paths.ColorsPath(s.cfg), a.Colors},
		{s.paths.PreviewPath(s.cfg), a.Preview},
	}

	temps := make([]string, 0, len(targets))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, t := range targets {
		tmp, err := writeTemp(dir, filepath.Base(t.path), t.data)
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}

	// Renames within one directory only fail on a bad target; check before the first.
	for _, t := range targets {
		if info, err := os.Stat(t.path); err == nil && info.IsDir() {
			cleanup()
			return fmt.Errorf("cannot replace %s: is a directory", t.path)
		}
	}

	for i, t := range targets {
		if err := os.Rename(temps[i], t.path); err != nil {
			cleanup()
			return fmt.Errorf("failed to move %s into place: %w", filepath.Base(t.path), err)
		}
	}
	return nil
}

func writeTemp(dir, base string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("failed to write %s: %w", base, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to write %s: %w", base, err)
	}
	if err := os.Chmod(name, 0644); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to write %s: %w", base, err)
	}
	return name, nil
}

// LoadTable reads the generated color table.
func (s *FileArtifactStore) LoadTable() (model.ColorTable, error) {
	path := s.paths.ColorsPath(s.cfg)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &nmerr.NotInitializedError{Path: path}
		}
		return nil, fmt.Errorf("failed to read color table: %w", err)
	}

	var table model.ColorTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("invalid color table %s: %w", path, err)
	}
	if table == nil {
		table = model.ColorTable{}
	}
	return table, nil
}

// TableExists returns true if the color table has been generated.
func (s *FileArtifactStore) TableExists() bool {
	_, err := os.Stat(s.paths.ColorsPath(s.cfg))
	return err == nil
}
