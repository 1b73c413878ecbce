package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/palette"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// PaletteHandler handles personal color season endpoints.
type PaletteHandler struct {
	Svc *wardrobe.Service
}

type seasonRequest struct {
	Season string `json:"season"`
}

// Seasons handles GET /api/palette/seasons.
func (h *PaletteHandler) Seasons(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, palette.Seasons())
}

// GetSeason handles GET /api/palette/season.
func (h *PaletteHandler) GetSeason(w http.ResponseWriter, r *http.Request) {
	info, err := h.Svc.ColorSeason(r.Context())
	if err != nil {
		engineError(w, err, "failed to get color season")
		return
	}
	jsonResponse(w, http.StatusOK, info)
}

// SetSeason handles PUT /api/palette/season.
func (h *PaletteHandler) SetSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := palette.LookupSeason(req.Season); !ok {
		jsonError(w, http.StatusBadRequest, "season must be Winter, Summer, Spring or Autumn")
		return
	}

	info, err := h.Svc.SetColorSeason(r.Context(), req.Season)
	if err != nil {
		engineError(w, err, "failed to set color season")
		return
	}
	jsonResponse(w, http.StatusOK, info)
}

// Item handles GET /api/palette/items/{id}.
func (h *PaletteHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	a, err := h.Svc.AnalyzeItem(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to analyze item")
		return
	}
	jsonResponse(w, http.StatusOK, a)
}

// Outfit handles GET /api/palette/outfits/{id}.
func (h *PaletteHandler) Outfit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	hm, err := h.Svc.OutfitHarmony(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to analyze outfit")
		return
	}
	jsonResponse(w, http.StatusOK, hm)
}

// Wardrobe handles GET /api/palette/wardrobe.
func (h *PaletteHandler) Wardrobe(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.WardrobePalette(r.Context())
	if err != nil {
		engineError(w, err, "failed to analyze wardrobe")
		return
	}
	jsonResponse(w, http.StatusOK, a)
}
