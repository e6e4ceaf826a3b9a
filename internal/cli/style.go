package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Terminal colors for the tool's own chrome. Dark first, light second.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"}
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"}
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"}
	ColorURL     = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"}
)

var (
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleName    = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleURL     = lipgloss.NewStyle().Foreground(ColorURL)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// Status lines go to stdout, problems to stderr. Tests swap these.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

type status struct {
	icon  string
	style lipgloss.Style
	toErr bool
}

var (
	statusSuccess = status{IconSuccess, lipgloss.NewStyle().Foreground(ColorSuccess), false}
	statusError   = status{IconError, StyleError, true}
	statusWarning = status{IconWarning, StyleWarning, true}
	statusInfo    = status{IconInfo, StyleMuted, false}
)

func (s status) print(format string, args ...any) {
	w := stdout
	if s.toErr {
		w = stderr
	}
	fmt.Fprintf(w, "%s %s\n", s.style.Render(s.icon), fmt.Sprintf(format, args...))
}

func PrintSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func PrintError(format string, args ...any)   { statusError.print(format, args...) }
func PrintWarning(format string, args ...any) { statusWarning.print(format, args...) }
func PrintInfo(format string, args ...any)    { statusInfo.print(format, args...) }

func RenderName(name string) string  { return StyleName.Render(name) }
func RenderURL(url string) string    { return StyleURL.Render(url) }
func RenderMuted(text string) string { return StyleMuted.Render(text) }
func RenderBold(text string) string  { return StyleBold.Render(text) }

// swatchBlock is one palette cell, two columns wide so it reads as a square.
const swatchBlock = "██"

// ColorSwatch renders a block in hexColor. Colors that don't parse render as a
// muted hatch so a bad table entry is visible rather than blank.
func ColorSwatch(hexColor string) string {
	if _, err := colorful.Hex(expandHex(hexColor)); err != nil {
		return StyleMuted.Render("░░")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(swatchBlock)
}

// SwatchRow renders one swatch per color on a single line.
func SwatchRow(colors []string) string {
	swatches := make([]string, len(colors))
	for i, c := range colors {
		swatches[i] = ColorSwatch(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, swatches...)
}

// NameChip renders name on its assigned color, the way it appears on the map,
// with black or white text picked for contrast.
func NameChip(name, hexColor string) string {
	c, err := colorful.Hex(expandHex(hexColor))
	if err != nil {
		return RenderName(name)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(ContrastText(c))).
		Padding(0, 1).
		Render(name)
}

// ContrastText returns black for light backgrounds and white for dark ones,
// splitting on Lab lightness.
func ContrastText(bg colorful.Color) string {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// expandHex turns #rgb into #rrggbb; go-colorful only parses the long form.
func expandHex(s string) string {
	if len(s) != 4 || s[0] != '#' {
		return s
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range s[1:] {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

// PaletteGrid lays colors out perRow to a line, each row prefixed with the slot
// index of its first color.
func PaletteGrid(colors []string, perRow int) string {
	if perRow < 1 {
		perRow = len(colors)
	}
	var rows []string
	for start := 0; start < len(colors); start += perRow {
		end := min(start+perRow, len(colors))
		rows = append(rows, fmt.Sprintf("%s %s", RenderMuted(fmt.Sprintf("%3d", start)), SwatchRow(colors[start:end])))
	}
	return strings.Join(rows, "\n")
}

// Panel renders body in a rounded border with title set in bold above it.
func Panel(title, body string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1)
	if body == "" {
		return style.Bold(true).Render(title)
	}
	return style.Render(RenderBold(title) + "\n" + body)
}

// Field formats one line of a run summary with the label right-aligned in a
// column of fieldWidth.
func Field(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(fieldWidth).
		Align(lipgloss.Right).
		Foreground(ColorMuted)
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}

const fieldWidth = 8
