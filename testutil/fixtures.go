package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/amterp/namemap/internal/config"
	"github.com/amterp/namemap/internal/model"
)

// ScenarioTSV is the two-year example where Alice meets both Bob and Carol but
// Bob and Carol never appear together.
const ScenarioTSV = "year\tstate\tm\tf\n" +
	"1\tCA\tAlice\tEve\n" +
	"1\tNY\tBob\tFay\n" +
	"2\tCA\tAlice\tEve\n" +
	"2\tNY\tCarol\tGina\n"

// CrowdedTSV has one year where every state shows a different male name, so
// that year alone needs n colors.
func CrowdedTSV(n int) string {
	out := "year\tstate\tm\tf\n"
	for i := 0; i < n; i++ {
		out += "2000\tS" + strconv.Itoa(i) + "\tName" + strconv.Itoa(i) + "\t\n"
	}
	return out
}

// SmallPaletteConfig returns a default config whose palette has only n gray
// colors, n <= 7.
func SmallPaletteConfig(n int) *model.ProjectConfig {
	cfg := model.DefaultProjectConfig()
	cfg.Palette.Scheme = ""
	cfg.Palette.Base = append([]string(nil), grays[:n]...)
	cfg.Palette.GroupSize = 1
	cfg.Palette.Steps = 1
	return cfg
}

var grays = []string{"#111111", "#333333", "#555555", "#777777", "#999999", "#bbbbbb", "#dddddd"}

// TempProjectDir creates a temporary project whose configured input file holds
// tsv. Returns the paths, a default config and a cleanup function.
func TempProjectDir(t *testing.T, tsv string) (*config.Paths, *model.ProjectConfig, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "namemap-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	cleanup := func() {
		os.RemoveAll(dir)
	}

	paths := config.NewPaths(dir)
	cfg := model.DefaultProjectConfig()

	input := paths.InputPath(cfg)
	if err := os.MkdirAll(filepath.Dir(input), 0755); err != nil {
		cleanup()
		t.Fatalf("failed to create input dir: %v", err)
	}
	if err := os.WriteFile(input, []byte(tsv), 0644); err != nil {
		cleanup()
		t.Fatalf("failed to write input: %v", err)
	}

	return paths, cfg, cleanup
}
