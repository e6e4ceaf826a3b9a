package model

import (
	"testing"

	nmerr "github.com/amterp/namemap/internal/errors"
)

func TestDefaultProjectConfig(t *testing.T) {
	cfg := DefaultProjectConfig()

	if cfg.MaxColors != DefaultMaxColors {
		t.Errorf("MaxColors = %d, want %d", cfg.MaxColors, DefaultMaxColors)
	}
	if cfg.FallbackColor != FallbackColor {
		t.Errorf("FallbackColor = %q, want %q", cfg.FallbackColor, FallbackColor)
	}
	if cfg.Palette.Scheme != DefaultScheme {
		t.Errorf("Palette.Scheme = %q, want %q", cfg.Palette.Scheme, DefaultScheme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &ProjectConfig{
		Input:     "names.tsv",
		MaxColors: 12,
		Palette:   PaletteConfig{Base: []string{"#000000", "#ffffff"}, GroupSize: 2},
	}
	cfg.ApplyDefaults()

	if cfg.Input != "names.tsv" {
		t.Errorf("Input = %q, want names.tsv", cfg.Input)
	}
	if cfg.MaxColors != 12 {
		t.Errorf("MaxColors = %d, want 12", cfg.MaxColors)
	}
	if cfg.Palette.Scheme != "" {
		t.Errorf("Scheme should stay empty when Base is set, got %q", cfg.Palette.Scheme)
	}
	if cfg.Palette.GroupSize != 2 {
		t.Errorf("GroupSize = %d, want 2", cfg.Palette.GroupSize)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectConfig)
	}{
		{"zero max colors", func(c *ProjectConfig) { c.MaxColors = -1 }},
		{"bad fallback", func(c *ProjectConfig) { c.FallbackColor = "white" }},
		{"zero steps", func(c *ProjectConfig) { c.Palette.Steps = -2 }},
		{"inverted range", func(c *ProjectConfig) { c.Palette.Low, c.Palette.High = 0.9, 0.1 }},
		{"ragged base", func(c *ProjectConfig) { c.Palette.Base = []string{"#000", "#fff", "#abc"} }},
		{"bad base color", func(c *ProjectConfig) { c.Palette.Base = []string{"#000", "#fff", "#abc", "red"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProjectConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !nmerr.IsValidationError(err) {
				t.Errorf("expected validation error, got %T: %v", err, err)
			}
		})
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"#fff", true},
		{"#3182BD", true},
		{"fff", false},
		{"#ffff", false},
		{"rgb(1, 2, 3)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHexColor(tt.input); got != tt.expected {
			t.Errorf("IsHexColor(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
