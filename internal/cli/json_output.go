package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/namemap/internal/service"
)

// LookupOutput is the JSON form of a name lookup.
type LookupOutput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Found bool   `json:"found"`
}

// PaletteOutput wraps the palette for JSON output.
type PaletteOutput struct {
	Colors   []string `json:"colors"`
	Fallback string   `json:"fallback"`
}

// NewPaletteOutput creates a PaletteOutput.
// Always returns an empty array (not null) when the palette is empty.
func NewPaletteOutput(colors []string, fallback string) PaletteOutput {
	if colors == nil {
		colors = []string{}
	}
	return PaletteOutput{Colors: colors, Fallback: fallback}
}

// CheckOutput wraps a check report for JSON output.
type CheckOutput struct {
	Healthy bool `json:"healthy"`
	*service.CheckReport
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
