package config

import (
	"path/filepath"
	"testing"

	"github.com/amterp/namemap/internal/model"
)

func TestPaths(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "names")
	paths := NewPaths(root)
	cfg := model.DefaultProjectConfig()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", paths.ConfigPath(), filepath.Join(root, "namemap.toml")},
		{"input", paths.InputPath(cfg), filepath.Join(root, "data", "counts_by_year.tsv")},
		{"output dir", paths.OutputDir(cfg), filepath.Join(root, "data")},
		{"colors", paths.ColorsPath(cfg), filepath.Join(root, "data", "colors.json")},
		{"preview", paths.PreviewPath(cfg), filepath.Join(root, "data", "palette.html")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s path = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestPaths_ResolveAbsolute(t *testing.T) {
	paths := NewPaths("/work/names")
	abs := filepath.Join(string(filepath.Separator), "srv", "input.tsv")

	if got := paths.Resolve(abs); got != abs {
		t.Errorf("Resolve(%q) = %q, want unchanged", abs, got)
	}
}
