package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/assistant"
	"github.com/erazemk/garderoba/internal/composer"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// SuggestionsHandler handles outfit suggestions and the chat assistant.
type SuggestionsHandler struct {
	Svc  *wardrobe.Service
	Chat *assistant.Conversation
}

type suggestRequest struct {
	Text string `json:"text"`
}

type proposalRequest struct {
	Proposal *composer.Proposal `json:"proposal"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// Suggest handles POST /api/suggestions.
func (h *SuggestionsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Svc.Request(r.Context(), req.Text)
	if err != nil {
		engineError(w, err, "failed to compose outfit")
		return
	}
	jsonResponse(w, http.StatusOK, p)
}

// Next handles POST /api/suggestions/next and proposes a different outfit
// than the one in the body.
func (h *SuggestionsHandler) Next(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Proposal == nil {
		jsonError(w, http.StatusBadRequest, "proposal required")
		return
	}

	p, err := h.Svc.GenerateNew(r.Context(), req.Proposal)
	if err != nil {
		engineError(w, err, "failed to compose outfit")
		return
	}
	jsonResponse(w, http.StatusOK, p)
}

// Save handles POST /api/suggestions/save.
func (h *SuggestionsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outfit, err := h.Svc.SaveProposal(r.Context(), req.Proposal)
	if err != nil {
		engineError(w, err, "failed to save outfit")
		return
	}
	jsonResponse(w, http.StatusCreated, outfit)
}

// Message handles POST /api/chat.
func (h *SuggestionsHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		jsonError(w, http.StatusBadRequest, "message required")
		return
	}

	reply, err := h.Chat.Process(r.Context(), req.Message)
	if err != nil {
		engineError(w, err, "failed to process message")
		return
	}
	jsonResponse(w, http.StatusOK, reply)
}

// History handles GET /api/chat/history.
func (h *SuggestionsHandler) History(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid n")
		return
	}
	jsonResponse(w, http.StatusOK, h.Chat.History(n))
}
