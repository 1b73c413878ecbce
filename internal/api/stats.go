package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// StatsHandler handles read-only wardrobe statistics.
type StatsHandler struct {
	Svc *wardrobe.Service
}

// DefaultItemLimit is used by GET /api/stats/items without ?limit.
const DefaultItemLimit = 5

// Laundry handles GET /api/stats/laundry.
func (h *StatsHandler) Laundry(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.StatsLaundry(r.Context())
	if err != nil {
		engineError(w, err, "failed to compute laundry stats")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Wear handles GET /api/stats/wear.
func (h *StatsHandler) Wear(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.StatsWear(r.Context())
	if err != nil {
		engineError(w, err, "failed to compute wear stats")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Colors handles GET /api/stats/colors?outfit=&category=.
func (h *StatsHandler) Colors(w http.ResponseWriter, r *http.Request) {
	outfitID, err := queryID(r, "outfit")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}

	s, err := h.Svc.StatsColors(r.Context(), wardrobe.ColorFilter{
		OutfitID: outfitID,
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		engineError(w, err, "failed to compute color stats")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Items handles GET /api/stats/items?limit=.
func (h *StatsHandler) Items(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil || limit < 0 {
		jsonError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit == 0 {
		limit = DefaultItemLimit
	}

	s, err := h.Svc.StatsItems(r.Context(), limit)
	if err != nil {
		engineError(w, err, "failed to compute item stats")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Summary handles GET /api/stats/summary.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.StatsSummary(r.Context())
	if err != nil {
		engineError(w, err, "failed to compute summary")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}

// Seasonal handles GET /api/stats/seasonal.
func (h *StatsHandler) Seasonal(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.StatsSeasonal(r.Context())
	if err != nil {
		engineError(w, err, "failed to compute seasonal report")
		return
	}
	jsonResponse(w, http.StatusOK, s)
}
