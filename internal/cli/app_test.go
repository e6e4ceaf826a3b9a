package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/prompt"
)

func TestOverrides_Apply(t *testing.T) {
	cfg := model.DefaultProjectConfig()
	o := Overrides{Input: "in.tsv", OutputDir: "out", MaxColors: 5}
	if err := o.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !filepath.IsAbs(cfg.Input) || filepath.Base(cfg.Input) != "in.tsv" {
		t.Errorf("Expected absolute input path, got %q", cfg.Input)
	}
	if !filepath.IsAbs(cfg.OutputDir) || filepath.Base(cfg.OutputDir) != "out" {
		t.Errorf("Expected absolute output dir, got %q", cfg.OutputDir)
	}
	if cfg.MaxColors != 5 {
		t.Errorf("Expected max colors 5, got %d", cfg.MaxColors)
	}
}

func TestOverrides_ApplyEmptyKeepsConfig(t *testing.T) {
	cfg := model.DefaultProjectConfig()
	if err := (Overrides{}).Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.Input != model.DefaultInput || cfg.MaxColors != model.DefaultMaxColors {
		t.Errorf("Expected defaults untouched, got input=%q max=%d", cfg.Input, cfg.MaxColors)
	}
}

func TestOverrides_ApplyRejectsInvalid(t *testing.T) {
	cfg := model.DefaultProjectConfig()
	err := (Overrides{MaxColors: -1}).Apply(cfg)
	if !nmerr.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	log := newLogger(&buf, false)
	log.Debug("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("Debug output without verbose")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Expected warning output")
	}

	if newLogger(&buf, true).GetLevel() != logrus.DebugLevel {
		t.Error("Expected debug level when verbose")
	}
}

func TestFormatPeaks(t *testing.T) {
	if got := formatPeaks([]int{1, 3, 2}); got != "3 2 1" {
		t.Errorf("Expected heaviest first, got %q", got)
	}
	peaks := []int{1, 3}
	formatPeaks(peaks)
	if peaks[0] != 1 || peaks[1] != 3 {
		t.Errorf("formatPeaks reordered its input: %v", peaks)
	}
}

func TestBuildInitConfig_Defaults(t *testing.T) {
	for _, p := range []prompt.Prompter{&prompt.DefaultsPrompter{}, &prompt.NoopPrompter{}} {
		cfg, err := buildInitConfig(p, initOptions{})
		if err != nil {
			t.Fatalf("%T: buildInitConfig failed: %v", p, err)
		}
		if cfg.Input != model.DefaultInput {
			t.Errorf("%T: Expected default input, got %q", p, cfg.Input)
		}
		if cfg.Palette.Scheme != model.DefaultScheme {
			t.Errorf("%T: Expected default scheme, got %q", p, cfg.Palette.Scheme)
		}
	}
}

func TestBuildInitConfig_FlagsWin(t *testing.T) {
	flags := initOptions{Input: "names.tsv", OutputDir: "web", Scheme: "category20b", MaxColors: 12}
	cfg, err := buildInitConfig(&prompt.NoopPrompter{}, flags)
	if err != nil {
		t.Fatalf("buildInitConfig failed: %v", err)
	}
	if cfg.Input != "names.tsv" || cfg.OutputDir != "web" {
		t.Errorf("Expected flag paths, got input=%q out=%q", cfg.Input, cfg.OutputDir)
	}
	if cfg.Palette.Scheme != "category20b" || cfg.MaxColors != 12 {
		t.Errorf("Expected flag scheme and max colors, got %q %d", cfg.Palette.Scheme, cfg.MaxColors)
	}
}

func TestBuildInitConfig_UnknownScheme(t *testing.T) {
	_, err := buildInitConfig(&prompt.NoopPrompter{}, initOptions{Scheme: "rainbow"})
	if !nmerr.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

// failingPrompter fails text input the way an aborted form does.
type failingPrompter struct{ prompt.NoopPrompter }

var errAborted = errors.New("aborted")

func (failingPrompter) Input(string, string, prompt.Validator) (string, error) {
	return "", errAborted
}

func TestBuildInitConfig_PromptError(t *testing.T) {
	_, err := buildInitConfig(&failingPrompter{}, initOptions{})
	if !errors.Is(err, errAborted) {
		t.Errorf("Expected prompt error, got %v", err)
	}
}
