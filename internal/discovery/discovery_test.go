package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/namemap/internal/config"
)

func TestDiscoverProjectFrom_ConfigInStartDir(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir)

	result, err := DiscoverProjectFrom(projectDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProjectRoot != projectDir {
		t.Errorf("expected ProjectRoot %q, got %q", projectDir, result.ProjectRoot)
	}
	if !result.HasConfig {
		t.Error("expected HasConfig to be true")
	}
}

func TestDiscoverProjectFrom_WalksUp(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir)
	nested := filepath.Join(projectDir, "data", "raw")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := DiscoverProjectFrom(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProjectRoot != projectDir {
		t.Errorf("expected ProjectRoot %q, got %q", projectDir, result.ProjectRoot)
	}
}

func TestDiscoverProjectFrom_NoConfigUsesStartDir(t *testing.T) {
	dir := t.TempDir()

	result, err := DiscoverProjectFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasConfig {
		t.Skip("a namemap.toml exists above the temp dir; cannot test fallback here")
	}
	if result.ProjectRoot != dir {
		t.Errorf("expected ProjectRoot %q, got %q", dir, result.ProjectRoot)
	}
}

func writeConfig(t *testing.T, dir string) {
	t.Helper()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte("namemap_schema = \"config/1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
}
