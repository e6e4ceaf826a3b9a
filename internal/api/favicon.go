package api

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/amterp/namemap/internal/palette"
)

// faviconCells is how many palette colors the favicon shows, as a 2x2 grid.
const faviconCells = 4

// GenerateFaviconSVG creates an SVG favicon from the first palette colors.
// Missing cells use the fallback color.
func GenerateFaviconSVG(p palette.Palette, fallback string) string {
	var cells strings.Builder
	for i := 0; i < faviconCells; i++ {
		color := fallback
		if i < len(p) {
			color = p[i]
		}
		fmt.Fprintf(&cells, `<rect x="%d" y="%d" width="16" height="16" fill="%s"/>`,
			(i%2)*16, (i/2)*16, html.EscapeString(color))
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">%s</svg>`,
		cells.String(),
	)
}

// GetFavicon serves the palette favicon.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	svg := GenerateFaviconSVG(h.palette, h.fallback)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(svg))
}
