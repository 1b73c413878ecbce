package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// CalendarHandler handles outfit scheduling endpoints.
type CalendarHandler struct {
	Svc *wardrobe.Service
}

type scheduleRequest struct {
	Date     string `json:"date"`
	OutfitID int64  `json:"outfit_id"`
	Notes    string `json:"notes"`
}

type recurringRequest struct {
	Start    string `json:"start"`
	Rule     string `json:"rule"`
	OutfitID int64  `json:"outfit_id"`
	Notes    string `json:"notes"`
}

type rescheduleRequest struct {
	OutfitID int64  `json:"outfit_id"`
	Notes    string `json:"notes"`
}

// List handles GET /api/calendar?from=&to=.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	for _, key := range []string{"from", "to"} {
		if v := q.Get(key); v != "" {
			if _, err := model.ParseDate(v, nil); err != nil {
				engineError(w, err, "invalid date")
				return
			}
		}
	}

	entries, err := store.ListCalendar(r.Context(), h.Svc.DB(), store.CalendarRange{From: q.Get("from"), To: q.Get("to")})
	if err != nil {
		engineError(w, err, "failed to list calendar")
		return
	}
	writeEntries(w, entries)
}

// Schedule handles POST /api/calendar.
func (h *CalendarHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OutfitID <= 0 {
		jsonError(w, http.StatusBadRequest, "outfit_id required")
		return
	}

	entry, err := h.Svc.Schedule(r.Context(), req.Date, req.OutfitID, req.Notes)
	if err != nil {
		engineError(w, err, "failed to schedule outfit")
		return
	}
	jsonResponse(w, http.StatusCreated, entry)
}

// Recurring handles POST /api/calendar/recurring.
func (h *CalendarHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OutfitID <= 0 || req.Rule == "" {
		jsonError(w, http.StatusBadRequest, "outfit_id and rule required")
		return
	}

	result, err := h.Svc.ScheduleRecurring(r.Context(), req.Start, req.Rule, req.OutfitID, req.Notes)
	if err != nil {
		engineError(w, err, "failed to schedule outfit")
		return
	}
	jsonResponse(w, http.StatusCreated, result)
}

// Reschedule handles PUT /api/calendar/{id}.
func (h *CalendarHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "calendar entry")
	if !ok {
		return
	}

	var req rescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OutfitID <= 0 {
		jsonError(w, http.StatusBadRequest, "outfit_id required")
		return
	}

	entry, err := h.Svc.Reschedule(r.Context(), id, req.OutfitID, req.Notes)
	if err != nil {
		engineError(w, err, "failed to reschedule outfit")
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Unschedule handles DELETE /api/calendar/{id}.
func (h *CalendarHandler) Unschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "calendar entry")
	if !ok {
		return
	}

	if err := h.Svc.Unschedule(r.Context(), id); err != nil {
		engineError(w, err, "failed to unschedule outfit")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "entry removed"})
}

// Today handles GET /api/calendar/today. The body is null when nothing is
// scheduled.
func (h *CalendarHandler) Today(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Svc.TodayEntry(r.Context())
	if err != nil {
		engineError(w, err, "failed to get today's outfit")
		return
	}
	jsonResponse(w, http.StatusOK, entry)
}

// Upcoming handles GET /api/calendar/upcoming?n=.
func (h *CalendarHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid n")
		return
	}

	entries, err := h.Svc.Upcoming(r.Context(), n)
	if err != nil {
		engineError(w, err, "failed to list upcoming outfits")
		return
	}
	writeEntries(w, entries)
}

// Week handles GET /api/calendar/week?start=.
func (h *CalendarHandler) Week(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Svc.Week(r.Context(), r.URL.Query().Get("start"))
	if err != nil {
		engineError(w, err, "failed to list week")
		return
	}
	writeEntries(w, entries)
}

// ICS handles GET /api/calendar.ics.
func (h *CalendarHandler) ICS(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Svc.CalendarICS(r.Context())
	if err != nil {
		engineError(w, err, "failed to export calendar")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="outfits.ics"`)
	w.Write([]byte(feed))
}

func writeEntries(w http.ResponseWriter, entries []model.CalendarEntry) {
	if entries == nil {
		entries = []model.CalendarEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}
