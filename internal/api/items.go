package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// MaxPhotoSize is the largest accepted photo upload.
const MaxPhotoSize = 5 << 20

// ItemsHandler handles item CRUD and laundry endpoints.
type ItemsHandler struct {
	Svc *wardrobe.Service
}

type itemRequest struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Color     string   `json:"color"`
	Brand     string   `json:"brand"`
	Size      string   `json:"size"`
	Material  string   `json:"material"`
	Season    string   `json:"season"`
	Occasions []string `json:"occasions"`
	Notes     string   `json:"notes"`
}

func (req itemRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name required")
	}
	if !model.ValidCategory(req.Category) {
		return fmt.Errorf("category must be one of %s", strings.Join(model.Categories, ", "))
	}
	if strings.TrimSpace(req.Color) == "" {
		return fmt.Errorf("color required")
	}
	if req.Season != "" && !model.ValidSeason(req.Season) {
		return fmt.Errorf("season must be one of %s", strings.Join(model.Seasons, ", "))
	}
	return nil
}

func (req itemRequest) item() model.Item {
	return model.Item{
		Name:      strings.TrimSpace(req.Name),
		Category:  req.Category,
		Color:     strings.TrimSpace(req.Color),
		Brand:     req.Brand,
		Size:      req.Size,
		Material:  req.Material,
		Season:    req.Season,
		Occasions: req.Occasions,
		Notes:     req.Notes,
	}
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status != "" && !model.ValidStatus(status) {
		jsonError(w, http.StatusBadRequest, "status must be clean or dirty")
		return
	}

	items, err := h.Svc.Items(r.Context(), store.ItemFilter{
		Category: q.Get("category"),
		Status:   status,
		Season:   q.Get("season"),
		Color:    q.Get("color"),
	})
	if err != nil {
		engineError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.CreateItem(r.Context(), h.Svc.DB(), req.item())
	if err != nil {
		engineError(w, err, "failed to create item")
		return
	}

	slog.Info("item created", "item", item.Name, "category", item.Category)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	item, err := h.Svc.Item(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Svc.Item(r.Context(), id); err != nil {
		engineError(w, err, "failed to get item")
		return
	}

	item := req.item()
	item.ID = id
	if err := store.UpdateItem(r.Context(), h.Svc.DB(), item); err != nil {
		engineError(w, err, "failed to update item")
		return
	}

	updated, err := h.Svc.Item(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get item")
		return
	}
	slog.Info("item updated", "item", updated.Name)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	item, err := h.Svc.Item(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get item")
		return
	}
	if err := store.DeleteItem(r.Context(), h.Svc.DB(), id); err != nil {
		engineError(w, err, "failed to delete item")
		return
	}

	slog.Info("item deleted", "item", item.Name)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// MarkDirty handles POST /api/items/{id}/dirty.
func (h *ItemsHandler) MarkDirty(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.StatusDirty)
}

// MarkClean handles POST /api/items/{id}/clean.
func (h *ItemsHandler) MarkClean(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.StatusClean)
}

func (h *ItemsHandler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	var err error
	if status == model.StatusDirty {
		err = h.Svc.MarkDirty(r.Context(), id)
	} else {
		err = h.Svc.MarkClean(r.Context(), id)
	}
	if err != nil {
		engineError(w, err, "failed to update laundry status")
		return
	}

	item, err := h.Svc.Item(r.Context(), id)
	if err != nil {
		engineError(w, err, "failed to get item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Laundry handles GET /api/laundry and lists the dirty items, or the clean
// ones with ?status=clean.
func (h *ItemsHandler) Laundry(w http.ResponseWriter, r *http.Request) {
	var (
		items []model.Item
		err   error
	)
	switch r.URL.Query().Get("status") {
	case "", model.StatusDirty:
		items, err = h.Svc.DirtyItems(r.Context())
	case model.StatusClean:
		items, err = h.Svc.CleanItems(r.Context())
	default:
		jsonError(w, http.StatusBadRequest, "status must be clean or dirty")
		return
	}
	if err != nil {
		engineError(w, err, "failed to list laundry")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}
	if _, err := h.Svc.Item(r.Context(), id); err != nil {
		engineError(w, err, "failed to get item")
		return
	}

	photo, ok := readPhoto(w, r)
	if !ok {
		return
	}

	if err := store.SetItemPhoto(r.Context(), h.Svc.DB(), id, photo.Data, photo.MIME); err != nil {
		engineError(w, err, "failed to save photo")
		return
	}

	slog.Info("item photo uploaded", "item", id, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "item")
	if !ok {
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), h.Svc.DB(), id)
	if err != nil {
		engineError(w, err, "failed to get photo")
		return
	}
	writePhoto(w, r, data, mime)
}

// readPhoto reads the "photo" multipart field and normalises it.
func readPhoto(w http.ResponseWriter, r *http.Request) (*imaging.Photo, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoSize)
	if err := r.ParseMultipartForm(MaxPhotoSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return nil, false
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return result, true
}

// writePhoto serves a stored photo, or its thumbnail with ?thumb=1.
func writePhoto(w http.ResponseWriter, r *http.Request, data []byte, mime string) {
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}
	if r.URL.Query().Get("thumb") != "" {
		thumb, err := imaging.Thumbnail(data, imaging.ThumbnailSize)
		if err != nil {
			engineError(w, err, "failed to render thumbnail")
			return
		}
		data, mime = thumb.Data, thumb.MIME
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
