package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/garderoba/internal/auth"
	"github.com/erazemk/garderoba/internal/composer"
	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/stats"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	svc := wardrobe.New(database, wardrobe.Options{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) },
	})
	server := httptest.NewServer(NewRouter(svc, testJWTSecret))
	t.Cleanup(server.Close)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if _, err := store.CreateUser(ctx, database, "owner", string(hash)); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"username": "owner", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader io.Reader = bytes.NewReader(nil)
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends an authenticated request, checks the status and decodes the
// response into out when out is non-nil.
func do(t *testing.T, method, url, token string, body any, want int, out any) {
	t.Helper()
	req, err := authRequest(method, url, token, body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected %d, got %d: %s", method, url, want, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s: %v", method, url, err)
		}
	}
}

func createItem(t *testing.T, server *httptest.Server, token, name, category, color string) model.Item {
	t.Helper()
	var item model.Item
	do(t, "POST", server.URL+"/api/items", token, map[string]string{
		"name": name, "category": category, "color": color,
	}, http.StatusCreated, &item)
	return item
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "owner", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	forged, _ := auth.GenerateToken("other-secret", 1, "owner")
	do(t, "GET", server.URL+"/api/items", forged, nil, http.StatusUnauthorized, nil)
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token := setupTestServer(t)

	do(t, "POST", server.URL+"/api/auth/logout", token, nil, http.StatusOK, nil)
	do(t, "GET", server.URL+"/api/items", token, nil, http.StatusUnauthorized, nil)
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItem(t, server, token, "Oxford", model.CategoryShirt, "White")
	if item.Status != model.StatusClean {
		t.Errorf("expected new item to be clean, got %s", item.Status)
	}

	do(t, "POST", server.URL+"/api/items", token, map[string]string{
		"name": "Thing", "category": "Hat", "color": "Red",
	}, http.StatusBadRequest, nil)

	var items []model.Item
	do(t, "GET", server.URL+"/api/items?category=Shirt", token, nil, http.StatusOK, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	var dirty model.Item
	do(t, "POST", server.URL+"/api/items/1/dirty", token, nil, http.StatusOK, &dirty)
	if dirty.Status != model.StatusDirty {
		t.Errorf("expected dirty, got %s", dirty.Status)
	}

	var laundry []model.Item
	do(t, "GET", server.URL+"/api/laundry", token, nil, http.StatusOK, &laundry)
	if len(laundry) != 1 {
		t.Errorf("expected 1 item in the laundry, got %d", len(laundry))
	}
	var ready []model.Item
	do(t, "GET", server.URL+"/api/laundry?status=clean", token, nil, http.StatusOK, &ready)
	if len(ready) != 0 {
		t.Errorf("expected no clean items, got %d", len(ready))
	}
	do(t, "GET", server.URL+"/api/laundry?status=wet", token, nil, http.StatusBadRequest, nil)

	do(t, "POST", server.URL+"/api/items/99/clean", token, nil, http.StatusNotFound, nil)
	do(t, "GET", server.URL+"/api/items/abc", token, nil, http.StatusBadRequest, nil)

	var updated model.Item
	do(t, "PUT", server.URL+"/api/items/1", token, map[string]string{
		"name": "Oxford shirt", "category": model.CategoryShirt, "color": "Light Blue",
	}, http.StatusOK, &updated)
	if updated.Color != "Light Blue" || updated.Status != model.StatusDirty {
		t.Errorf("unexpected update result: %+v", updated)
	}

	do(t, "DELETE", server.URL+"/api/items/1", token, nil, http.StatusOK, nil)
	do(t, "GET", server.URL+"/api/items/1", token, nil, http.StatusNotFound, nil)
}

func TestItemPhoto(t *testing.T) {
	server, token := setupTestServer(t)
	createItem(t, server, token, "Oxford", model.CategoryShirt, "White")

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	var pngBuf bytes.Buffer
	png.Encode(&pngBuf, img)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("photo", "shirt.png")
	part.Write(pngBuf.Bytes())
	mw.Close()

	req, _ := http.NewRequest("PUT", server.URL+"/api/items/1/photo", &body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	req, _ = authRequest("GET", server.URL+"/api/items/1/photo", token, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", ct)
	}
}

func TestSuggestSaveWear(t *testing.T) {
	server, token := setupTestServer(t)
	createItem(t, server, token, "Oxford", model.CategoryShirt, "White")
	createItem(t, server, token, "Tee", model.CategoryShirt, "Gray")
	createItem(t, server, token, "Chinos", model.CategoryPants, "Navy")

	var p composer.Proposal
	do(t, "POST", server.URL+"/api/suggestions", token, map[string]string{"text": "casual outfit"}, http.StatusOK, &p)
	if len(p.Items) != 2 || p.Constraints.Style != "Casual" {
		t.Fatalf("unexpected proposal: %+v", p)
	}

	var next composer.Proposal
	do(t, "POST", server.URL+"/api/suggestions/next", token, map[string]any{"proposal": p}, http.StatusOK, &next)
	if next.Key() == p.Key() {
		t.Errorf("expected a different proposal, got %s twice", p.Key())
	}

	var outfit model.Outfit
	do(t, "POST", server.URL+"/api/suggestions/save", token, map[string]any{"proposal": next}, http.StatusCreated, &outfit)

	var event model.WearEvent
	do(t, "POST", server.URL+"/api/outfits/"+itoa(outfit.ID)+"/wear", token, nil, http.StatusCreated, &event)
	if event.WornOn != "2026-10-14" {
		t.Errorf("expected today, got %s", event.WornOn)
	}

	var status outfitStatusResponse
	do(t, "GET", server.URL+"/api/outfits/"+itoa(outfit.ID)+"/status", token, nil, http.StatusOK, &status)
	if status.Status != model.StatusDirty {
		t.Errorf("expected dirty outfit, got %s", status.Status)
	}

	var laundry stats.LaundryStats
	do(t, "GET", server.URL+"/api/stats/laundry", token, nil, http.StatusOK, &laundry)
	if laundry.Dirty != 2 || laundry.Clean != 1 {
		t.Errorf("unexpected laundry stats: %+v", laundry)
	}

	var wears []stats.OutfitWear
	do(t, "GET", server.URL+"/api/stats/wear", token, nil, http.StatusOK, &wears)
	if len(wears) != 1 || wears[0].Count != 1 {
		t.Errorf("unexpected wear stats: %+v", wears)
	}
}

func TestSuggestWithoutItems(t *testing.T) {
	server, token := setupTestServer(t)
	do(t, "POST", server.URL+"/api/suggestions", token, map[string]string{"text": "anything"}, http.StatusUnprocessableEntity, nil)
}

func TestCalendarAPI(t *testing.T) {
	server, token := setupTestServer(t)
	shirt := createItem(t, server, token, "Oxford", model.CategoryShirt, "White")
	pants := createItem(t, server, token, "Chinos", model.CategoryPants, "Navy")

	var outfit model.Outfit
	do(t, "POST", server.URL+"/api/outfits", token, map[string]any{
		"name": "Office", "item_ids": []int64{shirt.ID, pants.ID},
	}, http.StatusCreated, &outfit)

	var entry model.CalendarEntry
	do(t, "POST", server.URL+"/api/calendar", token, map[string]any{
		"date": "2026-10-14", "outfit_id": outfit.ID,
	}, http.StatusCreated, &entry)
	do(t, "POST", server.URL+"/api/calendar", token, map[string]any{
		"date": "2026-10-14", "outfit_id": outfit.ID,
	}, http.StatusConflict, nil)
	do(t, "POST", server.URL+"/api/calendar", token, map[string]any{
		"date": "14.10.2026", "outfit_id": outfit.ID,
	}, http.StatusBadRequest, nil)

	var today model.CalendarEntry
	do(t, "GET", server.URL+"/api/calendar/today", token, nil, http.StatusOK, &today)
	if today.OutfitID != outfit.ID {
		t.Errorf("expected today's outfit %d, got %+v", outfit.ID, today)
	}

	do(t, "POST", server.URL+"/api/calendar/recurring", token, map[string]any{
		"start": "2026-10-14", "rule": "FREQ=WEEKLY;COUNT=3", "outfit_id": outfit.ID,
	}, http.StatusCreated, nil)
	do(t, "POST", server.URL+"/api/calendar/recurring", token, map[string]any{
		"start": "2026-10-14", "rule": "FREQ=SOMETIMES", "outfit_id": outfit.ID,
	}, http.StatusBadRequest, nil)

	var upcoming []model.CalendarEntry
	do(t, "GET", server.URL+"/api/calendar/upcoming?n=10", token, nil, http.StatusOK, &upcoming)
	if len(upcoming) != 3 {
		t.Errorf("expected 3 upcoming entries, got %d", len(upcoming))
	}

	req, _ := authRequest("GET", server.URL+"/api/calendar.ics", token, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("ics: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar") || !strings.Contains(string(data), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected feed (%s):\n%s", resp.Header.Get("Content-Type"), data)
	}

	do(t, "DELETE", server.URL+"/api/calendar/"+itoa(entry.ID), token, nil, http.StatusOK, nil)
	do(t, "DELETE", server.URL+"/api/calendar/"+itoa(entry.ID), token, nil, http.StatusNotFound, nil)
}

func TestPaletteAPI(t *testing.T) {
	server, token := setupTestServer(t)
	createItem(t, server, token, "Sweater", model.CategoryShirt, "Rust")

	do(t, "PUT", server.URL+"/api/palette/season", token, map[string]string{"season": "Monsoon"}, http.StatusBadRequest, nil)
	do(t, "PUT", server.URL+"/api/palette/season", token, map[string]string{"season": "autumn"}, http.StatusOK, nil)

	var analysis struct {
		Compatibility string `json:"compatibility"`
	}
	do(t, "GET", server.URL+"/api/palette/items/1", token, nil, http.StatusOK, &analysis)
	if analysis.Compatibility != "Excellent" {
		t.Errorf("expected Excellent, got %s", analysis.Compatibility)
	}
}

func TestChatAPI(t *testing.T) {
	server, token := setupTestServer(t)

	var reply struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	do(t, "POST", server.URL+"/api/chat", token, map[string]string{"message": "hello"}, http.StatusOK, &reply)
	if reply.Kind != "greeting" {
		t.Errorf("expected greeting, got %s", reply.Kind)
	}

	var history []map[string]string
	do(t, "GET", server.URL+"/api/chat/history", token, nil, http.StatusOK, &history)
	if len(history) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(history))
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
