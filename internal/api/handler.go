package api

import (
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/palette"
	"github.com/amterp/namemap/internal/store"
	"github.com/amterp/namemap/internal/util"
)

// Handler serves the preview page and the color table. The table is read from
// the artifact store on first use and dropped whenever the colors file changes,
// so a regenerate is picked up without restarting the server.
type Handler struct {
	artifacts  store.ArtifactStore
	palette    palette.Palette
	fallback   string
	liveReload bool
	log        logrus.FieldLogger

	mu    sync.RWMutex
	table model.ColorTable // nil until loaded
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(artifacts store.ArtifactStore, p palette.Palette, fallback string, log logrus.FieldLogger) *Handler {
	if fallback == "" {
		fallback = model.FallbackColor
	}
	return &Handler{
		artifacts: artifacts,
		palette:   p,
		fallback:  fallback,
		log:       log,
	}
}

// SetLiveReload makes the preview page reload itself on artifact changes.
func (h *Handler) SetLiveReload(enabled bool) {
	h.liveReload = enabled
}

// RegisterRoutes sets up all routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.GetPreview)
	mux.HandleFunc("GET /colors.json", h.GetColorsFile)
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	mux.HandleFunc("GET /api/v1/colors", h.ListColors)
	mux.HandleFunc("GET /api/v1/colors/{name}", h.GetColor)
	mux.HandleFunc("GET /api/v1/palette", h.GetPalette)
}

// OnFileChange implements FileWatcherSubscriber.
func (h *Handler) OnFileChange(change FileChange) {
	if change.Kind != FileChangeKindColors {
		return
	}
	h.mu.Lock()
	h.table = nil
	h.mu.Unlock()
}

// loadTable returns the cached table, reading it from the store if needed.
func (h *Handler) loadTable() (model.ColorTable, error) {
	h.mu.RLock()
	table := h.table
	h.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.table != nil {
		return h.table, nil
	}
	table, err := h.artifacts.LoadTable()
	if err != nil {
		return nil, err
	}
	h.table = table
	h.log.WithField("names", len(table)).Debug("color table loaded")
	return table, nil
}

// --- Page Handlers ---

// GetPreview renders the palette preview page.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	page, err := palette.RenderPreview(h.palette, palette.PreviewOptions{LiveReload: h.liveReload})
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(page)
}

// GetColorsFile serves the table in the same form as the written colors file.
func (h *Handler) GetColorsFile(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadTable()
	if err != nil {
		Error(w, err)
		return
	}
	data, err := store.MarshalTable(table)
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// --- API Handlers ---

// ColorResponse is the JSON response for a single name lookup.
type ColorResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Found bool   `json:"found"`
}

// PaletteResponse is the JSON response for the palette.
type PaletteResponse struct {
	Colors   []string `json:"colors"`
	Fallback string   `json:"fallback"`
}

// ListColors returns the whole name→color table.
func (h *Handler) ListColors(w http.ResponseWriter, r *http.Request) {
	table, err := h.loadTable()
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, table)
}

// GetColor looks up one name. Unknown names get the fallback color, not a 404.
func (h *Handler) GetColor(w http.ResponseWriter, r *http.Request) {
	name := util.NormalizeName(r.PathValue("name"))
	if name == "" {
		BadRequest(w, "name is required")
		return
	}

	table, err := h.loadTable()
	if err != nil {
		Error(w, err)
		return
	}

	color, found := table.Get(name)
	if !found || color == "" {
		color = h.fallback
	}
	JSON(w, http.StatusOK, ColorResponse{Name: name, Color: color, Found: found})
}

// GetPalette returns the palette colors, lightest first.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	colors := make([]string, len(h.palette))
	copy(colors, h.palette)
	JSON(w, http.StatusOK, PaletteResponse{Colors: colors, Fallback: h.fallback})
}
