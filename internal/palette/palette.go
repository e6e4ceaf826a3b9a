// Package palette derives the ordered color palette that color classes are mapped
// onto, and renders it as an HTML preview.
package palette

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
)

// Palette is an ordered list of distinct CSS hex colors, lightest first.
type Palette []string

// At returns the color for slot i, wrapping around when i exceeds the palette.
// An empty palette has no colors to give and returns "".
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return ""
	}
	return p[i%len(p)]
}

// Deficit returns how many labels cannot get a color of their own.
func (p Palette) Deficit(labels int) int {
	if labels <= len(p) {
		return 0
	}
	return labels - len(p)
}

// Generate builds the palette described by cfg. The base colors are split into
// groups of cfg.GroupSize; each group is read as a Lab gradient and sampled at
// cfg.Steps evenly spaced positions between cfg.Low and cfg.High. The result is
// deduplicated and sorted by HSL lightness, lightest first.
func Generate(cfg model.PaletteConfig) (Palette, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.Base
	if len(base) == 0 {
		var err error
		base, err = Scheme(cfg.Scheme)
		if err != nil {
			return nil, err
		}
	}
	if len(base)%cfg.GroupSize != 0 {
		return nil, nmerr.InvalidField("palette.group_size",
			fmt.Sprintf("%d base colors do not split into groups of %d", len(base), cfg.GroupSize))
	}

	type entry struct {
		hex       string
		lightness float64
	}
	var entries []entry
	seen := make(map[string]bool)

	for start := 0; start+cfg.GroupSize <= len(base); start += cfg.GroupSize {
		group, err := parseColors(base[start : start+cfg.GroupSize])
		if err != nil {
			return nil, err
		}
		for step := 0; step < cfg.Steps; step++ {
			c := sampleGradient(group, stepPosition(step, cfg.Steps, cfg.Low, cfg.High))
			hex := c.Clamped().Hex()
			if seen[hex] {
				continue
			}
			seen[hex] = true

			// Measure the rounded color so ordering matches what gets written.
			rounded, _ := colorful.Hex(hex)
			_, _, l := rounded.Hsl()
			entries = append(entries, entry{hex: hex, lightness: l})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].lightness > entries[j].lightness
	})

	if len(entries) == 0 {
		return nil, nmerr.InvalidField("palette", "produced no colors")
	}

	p := make(Palette, len(entries))
	for i, e := range entries {
		p[i] = e.hex
	}
	return p, nil
}

// stepPosition maps step k of n linearly onto [low, high].
func stepPosition(k, n int, low, high float64) float64 {
	if n == 1 {
		return low
	}
	return low + float64(k)*(high-low)/float64(n-1)
}

// sampleGradient reads colors as evenly spaced stops on [0, 1] and blends the two
// stops around t in Lab space.
func sampleGradient(colors []colorful.Color, t float64) colorful.Color {
	n := len(colors) - 1
	if n == 0 || t <= 0 {
		return colors[0]
	}
	if t >= 1 {
		return colors[n]
	}
	ip, frac := math.Modf(t * float64(n))
	i := int(ip)
	return colors[i].BlendLab(colors[i+1], frac)
}

func parseColors(hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid base color %q: %w", h, err)
		}
		out[i] = c
	}
	return out, nil
}
