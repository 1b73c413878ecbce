package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// OutfitsHandler handles outfit endpoints.
type OutfitsHandler struct {
	Svc *wardrobe.Service
}

type outfitRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      int     `json:"rating"`
	ItemIDs     []int64 `json:"item_ids"`
	TagIDs      []int64 `json:"tag_ids"`
}

func (req outfitRequest) outfit() model.Outfit {
	o := model.Outfit{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Rating:      req.Rating,
		ItemIDs:     req.ItemIDs,
	}
	for _, id := range req.TagIDs {
		o.Tags = append(o.Tags, model.Tag{ID: id})
	}
	return o
}

func (req outfitRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name required"
	}
	if !model.ValidRating(req.Rating) {
		return "rating must be between 1 and 5, or 0 for unrated"
	}
	return ""
}

type wearRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

type outfitStatusResponse struct {
	OutfitID int64  `json:"outfit_id"`
	Status   string `json:"status"`
}

// List handles GET /api/outfits.
func (h *OutfitsHandler) List(w http.ResponseWriter, r *http.Request) {
	itemID, err := queryID(r, "item")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	tagID, err := queryID(r, "tag")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	outfits, err := h.Svc.Outfits(r.Context(), store.OutfitFilter{ItemID: itemID, TagID: tagID})
	if err != nil {
		engineError(w, err, "failed to list outfits")
		return
	}
	if outfits == nil {
		outfits = []model.Outfit{}
	}
	jsonResponse(w, http.StatusOK, outfits)
}

// Create handles POST /api/outfits.
func (h *OutfitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req outfitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	outfit, err := store.CreateOutfit(r.Context(), h.Svc.DB(), req.outfit())
	if err != nil {
		engineError(w, err, "failed to create outfit")
		return
	}

	slog.Info("outfit created", "outfit", outfit.Name, "items", len(outfit.ItemIDs))
	jsonResponse(w, http.StatusCreated, outfit)
}

// Get handles GET /api/outfits/{id}.
func (h *OutfitsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	outfit, err := h.Svc.Outfit(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get outfit")
		return
	}
	jsonResponse(w, http.StatusOK, outfit)
}

// Update handles PUT /api/outfits/{id}.
func (h *OutfitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	var req outfitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	o := req.outfit()
	o.ID = id
	if err := store.UpdateOutfit(r.Context(), h.Svc.DB(), o); err != nil {
		engineError(w, err, "failed to update outfit")
		return
	}

	outfit, err := h.Svc.Outfit(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get outfit")
		return
	}
	slog.Info("outfit updated", "outfit", outfit.Name, "items", len(outfit.ItemIDs))
	jsonResponse(w, http.StatusOK, outfit)
}

// Delete handles DELETE /api/outfits/{id}.
func (h *OutfitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	if err := store.DeleteOutfit(r.Context(), h.Svc.DB(), id); err != nil {
		engineError(w, err, "failed to delete outfit")
		return
	}

	slog.Info("outfit deleted", "outfit", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "outfit deleted"})
}

// Wear handles POST /api/outfits/{id}/wear. Every member item becomes dirty.
func (h *OutfitsHandler) Wear(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	var req wearRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	event, err := h.Svc.Wear(r.Context(), id, req.Date, req.Notes)
	if err != nil {
		engineError(w, err, "failed to record wear")
		return
	}
	jsonResponse(w, http.StatusCreated, event)
}

// Status handles GET /api/outfits/{id}/status.
func (h *OutfitsHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	status, err := h.Svc.OutfitStatus(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get outfit status")
		return
	}
	jsonResponse(w, http.StatusOK, outfitStatusResponse{OutfitID: id, Status: status})
}

// UploadPhoto handles PUT /api/outfits/{id}/photo.
func (h *OutfitsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}
	if _, err := h.Svc.Outfit(r.Context(), id); err != nil {
		engineError(w, err, "failed to get outfit")
		return
	}

	photo, ok := readPhoto(w, r)
	if !ok {
		return
	}

	if err := store.SetOutfitPhoto(r.Context(), h.Svc.DB(), id, photo.Data, photo.MIME); err != nil {
		engineError(w, err, "failed to save photo")
		return
	}

	slog.Info("outfit photo uploaded", "outfit", id, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/outfits/{id}/photo.
func (h *OutfitsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "outfit")
	if !ok {
		return
	}

	data, mime, err := store.GetOutfitPhoto(r.Context(), h.Svc.DB(), id)
	if err != nil {
		engineError(w, err, "failed to get photo")
		return
	}
	writePhoto(w, r, data, mime)
}

// Wears handles GET /api/wears.
func (h *OutfitsHandler) Wears(w http.ResponseWriter, r *http.Request) {
	outfitID, err := queryID(r, "outfit")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid outfit id")
		return
	}
	itemID, err := queryID(r, "item")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	q := r.URL.Query()
	events, err := store.ListWearEvents(r.Context(), h.Svc.DB(), store.WearFilter{
		OutfitID: outfitID,
		ItemID:   itemID,
		From:     q.Get("from"),
		To:       q.Get("to"),
	})
	if err != nil {
		engineError(w, err, "failed to list wear events")
		return
	}
	if events == nil {
		events = []model.WearEvent{}
	}
	jsonResponse(w, http.StatusOK, events)
}
