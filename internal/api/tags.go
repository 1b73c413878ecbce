package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// TagsHandler handles tag endpoints.
type TagsHandler struct {
	Svc *wardrobe.Service
}

type createTagRequest struct {
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

// Categories handles GET /api/tags/categories.
func (h *TagsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := store.ListTagCategories(r.Context(), h.Svc.DB())
	if err != nil {
		engineError(w, err, "failed to list tag categories")
		return
	}
	if cats == nil {
		cats = []model.TagCategory{}
	}
	jsonResponse(w, http.StatusOK, cats)
}

// List handles GET /api/tags?category=.
func (h *TagsHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	tags, err := store.ListTags(r.Context(), h.Svc.DB(), categoryID)
	if err != nil {
		engineError(w, err, "failed to list tags")
		return
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	jsonResponse(w, http.StatusOK, tags)
}

// Create handles POST /api/tags.
func (h *TagsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CategoryID <= 0 {
		jsonError(w, http.StatusBadRequest, "name and category_id required")
		return
	}

	tag, err := store.CreateTag(r.Context(), h.Svc.DB(), req.Name, req.CategoryID)
	if err != nil {
		jsonError(w, http.StatusConflict, "tag already exists or category is unknown")
		return
	}

	slog.Info("tag created", "tag", tag.Name, "category", tag.CategoryName)
	jsonResponse(w, http.StatusCreated, tag)
}
