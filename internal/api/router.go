package api

import (
	"net/http"

	"github.com/erazemk/garderoba/internal/assistant"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(svc *wardrobe.Service, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: svc.DB(), JWTSecret: jwtSecret}
	itemsHandler := &ItemsHandler{Svc: svc}
	outfitsHandler := &OutfitsHandler{Svc: svc}
	suggestionsHandler := &SuggestionsHandler{Svc: svc, Chat: assistant.New(svc, assistant.DefaultHistory)}
	calendarHandler := &CalendarHandler{Svc: svc}
	statsHandler := &StatsHandler{Svc: svc}
	paletteHandler := &PaletteHandler{Svc: svc}
	tagsHandler := &TagsHandler{Svc: svc}

	authMW := AuthMiddleware(jwtSecret, svc.DB())
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMW(h))
	}

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	handle("PUT /api/auth/password", authHandler.ChangePassword)
	handle("POST /api/auth/logout", authHandler.Logout)

	// Items and laundry.
	handle("GET /api/items", itemsHandler.List)
	handle("POST /api/items", itemsHandler.Create)
	handle("GET /api/items/{id}", itemsHandler.Get)
	handle("PUT /api/items/{id}", itemsHandler.Update)
	handle("DELETE /api/items/{id}", itemsHandler.Delete)
	handle("PUT /api/items/{id}/photo", itemsHandler.UploadPhoto)
	handle("GET /api/items/{id}/photo", itemsHandler.GetPhoto)
	handle("POST /api/items/{id}/dirty", itemsHandler.MarkDirty)
	handle("POST /api/items/{id}/clean", itemsHandler.MarkClean)
	handle("GET /api/laundry", itemsHandler.Laundry)

	// Outfits and wear history.
	handle("GET /api/outfits", outfitsHandler.List)
	handle("POST /api/outfits", outfitsHandler.Create)
	handle("GET /api/outfits/{id}", outfitsHandler.Get)
	handle("PUT /api/outfits/{id}", outfitsHandler.Update)
	handle("DELETE /api/outfits/{id}", outfitsHandler.Delete)
	handle("PUT /api/outfits/{id}/photo", outfitsHandler.UploadPhoto)
	handle("GET /api/outfits/{id}/photo", outfitsHandler.GetPhoto)
	handle("POST /api/outfits/{id}/wear", outfitsHandler.Wear)
	handle("GET /api/outfits/{id}/status", outfitsHandler.Status)
	handle("GET /api/wears", outfitsHandler.Wears)

	// Suggestions and chat.
	handle("POST /api/suggestions", suggestionsHandler.Suggest)
	handle("POST /api/suggestions/next", suggestionsHandler.Next)
	handle("POST /api/suggestions/save", suggestionsHandler.Save)
	handle("POST /api/chat", suggestionsHandler.Message)
	handle("GET /api/chat/history", suggestionsHandler.History)

	// Calendar.
	handle("GET /api/calendar", calendarHandler.List)
	handle("POST /api/calendar", calendarHandler.Schedule)
	handle("POST /api/calendar/recurring", calendarHandler.Recurring)
	handle("PUT /api/calendar/{id}", calendarHandler.Reschedule)
	handle("DELETE /api/calendar/{id}", calendarHandler.Unschedule)
	handle("GET /api/calendar/today", calendarHandler.Today)
	handle("GET /api/calendar/upcoming", calendarHandler.Upcoming)
	handle("GET /api/calendar/week", calendarHandler.Week)
	handle("GET /api/calendar.ics", calendarHandler.ICS)

	// Stats.
	handle("GET /api/stats/laundry", statsHandler.Laundry)
	handle("GET /api/stats/wear", statsHandler.Wear)
	handle("GET /api/stats/colors", statsHandler.Colors)
	handle("GET /api/stats/items", statsHandler.Items)
	handle("GET /api/stats/summary", statsHandler.Summary)
	handle("GET /api/stats/seasonal", statsHandler.Seasonal)

	// Personal color season.
	handle("GET /api/palette/seasons", paletteHandler.Seasons)
	handle("GET /api/palette/season", paletteHandler.GetSeason)
	handle("PUT /api/palette/season", paletteHandler.SetSeason)
	handle("GET /api/palette/items/{id}", paletteHandler.Item)
	handle("GET /api/palette/outfits/{id}", paletteHandler.Outfit)
	handle("GET /api/palette/wardrobe", paletteHandler.Wardrobe)

	// Tags.
	handle("GET /api/tags/categories", tagsHandler.Categories)
	handle("GET /api/tags", tagsHandler.List)
	handle("POST /api/tags", tagsHandler.Create)

	return mux
}
