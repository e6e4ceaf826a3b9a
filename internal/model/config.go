package model

import (
	"regexp"

	nmerr "github.com/amterp/namemap/internal/errors"
)

// Default values for a fresh project config.
const (
	DefaultInput       = "data/counts_by_year.tsv"
	DefaultOutputDir   = "data"
	DefaultColorsFile  = "colors.json"
	DefaultPreviewFile = "palette.html"
	DefaultMaxColors   = 16
	DefaultScheme      = "category20c"
	DefaultGroupSize   = 4
	DefaultSteps       = 4
	DefaultLow         = 0.2
	DefaultHigh        = 1.0
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ProjectConfig represents the project-level configuration.
// Stored at namemap.toml in the project root.
// Schema changes require a version bump; see internal/version/version.go.
type ProjectConfig struct {
	Schema        string        `toml:"namemap_schema" json:"namemap_schema"`
	Input         string        `toml:"input" json:"input"`
	OutputDir     string        `toml:"output_dir" json:"output_dir"`
	ColorsFile    string        `toml:"colors_file" json:"colors_file"`
	PreviewFile   string        `toml:"preview_file" json:"preview_file"`
	MaxColors     int           `toml:"max_colors" json:"max_colors"` // Merge stops once labels <= this
	FallbackColor string        `toml:"fallback_color" json:"fallback_color"`
	Palette       PaletteConfig `toml:"palette" json:"palette"`
}

// PaletteConfig describes how the palette is derived from a base scheme.
// Base colors are split into groups of GroupSize; each group is resampled into
// Steps colors between Low and High along its Lab gradient.
type PaletteConfig struct {
	Scheme    string   `toml:"scheme" json:"scheme"`
	Base      []string `toml:"base,omitempty" json:"base,omitempty"` // Overrides Scheme when set
	GroupSize int      `toml:"group_size" json:"group_size"`
	Steps     int      `toml:"steps" json:"steps"`
	Low       float64  `toml:"low" json:"low"`
	High      float64  `toml:"high" json:"high"`
}

// DefaultProjectConfig returns a config with every field at its default.
func DefaultProjectConfig() *ProjectConfig {
	cfg := &ProjectConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults.
func (c *ProjectConfig) ApplyDefaults() {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.ColorsFile == "" {
		c.ColorsFile = DefaultColorsFile
	}
	if c.PreviewFile == "" {
		c.PreviewFile = DefaultPreviewFile
	}
	if c.MaxColors == 0 {
		c.MaxColors = DefaultMaxColors
	}
	if c.FallbackColor == "" {
		c.FallbackColor = FallbackColor
	}
	if c.Palette.Scheme == "" && len(c.Palette.Base) == 0 {
		c.Palette.Scheme = DefaultScheme
	}
	if c.Palette.GroupSize == 0 {
		c.Palette.GroupSize = DefaultGroupSize
	}
	if c.Palette.Steps == 0 {
		c.Palette.Steps = DefaultSteps
	}
	if c.Palette.Low == 0 && c.Palette.High == 0 {
		c.Palette.Low = DefaultLow
		c.Palette.High = DefaultHigh
	}
}

// Validate checks the config for values the assigner cannot work with.
func (c *ProjectConfig) Validate() error {
	if c.MaxColors < 1 {
		return nmerr.InvalidField("max_colors", "must be at least 1")
	}
	if !IsHexColor(c.FallbackColor) {
		return nmerr.InvalidField("fallback_color", "must be a hex color like '#fff'")
	}
	return c.Palette.Validate()
}

// Validate checks the palette settings.
func (p *PaletteConfig) Validate() error {
	if p.GroupSize < 1 {
		return nmerr.InvalidField("palette.group_size", "must be at least 1")
	}
	if p.Steps < 1 {
		return nmerr.InvalidField("palette.steps", "must be at least 1")
	}
	if p.Low < 0 || p.High > 1 || p.Low > p.High {
		return nmerr.InvalidField("palette", "low and high must satisfy 0 <= low <= high <= 1")
	}
	if len(p.Base) > 0 {
		if len(p.Base)%p.GroupSize != 0 {
			return nmerr.InvalidField("palette.base", "length must be a multiple of group_size")
		}
		for _, color := range p.Base {
			if !IsHexColor(color) {
				return nmerr.InvalidField("palette.base", "invalid hex color "+color)
			}
		}
	}
	return nil
}

// IsHexColor reports whether s is a #rgb or #rrggbb color.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}
