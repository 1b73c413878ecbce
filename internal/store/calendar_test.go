package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestCreateCalendarEntryRejectsTakenDate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	first := mustOutfit(t, database, "First", dress)
	second := mustOutfit(t, database, "Second", dress)

	entry, err := CreateCalendarEntry(ctx, database, "2026-10-14", first.ID, "office")
	if err != nil {
		t.Fatalf("CreateCalendarEntry: %v", err)
	}
	if entry.OutfitName != "First" {
		t.Errorf("expected joined outfit name, got %q", entry.OutfitName)
	}

	_, err = CreateCalendarEntry(ctx, database, "2026-10-14", second.ID, "")
	if !errors.Is(err, model.ErrAlreadyScheduled) {
		t.Fatalf("expected ErrAlreadyScheduled, got %v", err)
	}

	got, _ := GetCalendarByDate(ctx, database, "2026-10-14")
	if got.OutfitID != first.ID || got.Notes != "office" {
		t.Errorf("existing entry changed: %+v", got)
	}
}

func TestListCalendarRange(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	outfit := mustOutfit(t, database, "Picnic", dress)
	for _, d := range []string{"2026-10-20", "2026-10-12", "2026-10-15", "2026-11-01"} {
		if _, err := CreateCalendarEntry(ctx, database, d, outfit.ID, ""); err != nil {
			t.Fatalf("CreateCalendarEntry(%s): %v", d, err)
		}
	}

	entries, _ := ListCalendar(ctx, database, CalendarRange{From: "2026-10-14", Limit: 2})
	if len(entries) != 2 || entries[0].Date != "2026-10-15" || entries[1].Date != "2026-10-20" {
		t.Errorf("unexpected upcoming entries %+v", entries)
	}

	october, _ := ListCalendar(ctx, database, CalendarRange{From: "2026-10-01", To: "2026-10-31"})
	if len(october) != 3 {
		t.Errorf("expected 3 entries in October, got %d", len(october))
	}
}

func TestUpdateAndDeleteCalendarEntry(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	a := mustOutfit(t, database, "A", dress)
	b := mustOutfit(t, database, "B", dress)
	entry, _ := CreateCalendarEntry(ctx, database, "2026-10-14", a.ID, "")

	if err := UpdateCalendarEntry(ctx, database, entry.ID, b.ID, "swapped"); err != nil {
		t.Fatalf("UpdateCalendarEntry: %v", err)
	}
	got, _ := GetCalendarEntry(ctx, database, entry.ID)
	if got.OutfitID != b.ID || got.Notes != "swapped" {
		t.Errorf("update not applied: %+v", got)
	}

	if err := DeleteCalendarEntry(ctx, database, entry.ID); err != nil {
		t.Fatalf("DeleteCalendarEntry: %v", err)
	}
	if err := DeleteCalendarEntry(ctx, database, entry.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := UpdateCalendarEntry(ctx, database, entry.ID, a.ID, ""); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
