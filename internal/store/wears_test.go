package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestRecordWearCascade(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	b := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	outfit := mustOutfit(t, database, "Weekend", a, b)

	event, err := RecordWear(ctx, database, outfit.ID, "2026-10-14", "park")
	if err != nil {
		t.Fatalf("RecordWear: %v", err)
	}
	if event.OutfitName != "Weekend" || len(event.ItemIDs) != 2 {
		t.Errorf("unexpected event %+v", event)
	}

	for _, id := range []int64{a.ID, b.ID} {
		item, _ := GetItem(ctx, database, id)
		if !item.IsDirty() {
			t.Errorf("expected item %d to be dirty", id)
		}
	}

	got, _ := GetOutfit(ctx, database, outfit.ID)
	if !model.OutfitDirty(got.Items) {
		t.Error("expected outfit to be dirty")
	}

	counts, _ := CountWearsByOutfit(ctx, database)
	if counts[outfit.ID] != 1 {
		t.Errorf("expected 1 wear, got %d", counts[outfit.ID])
	}
	itemCounts, _ := CountWearsByItem(ctx, database)
	if itemCounts[a.ID] != 1 || itemCounts[b.ID] != 1 {
		t.Errorf("unexpected item counts %v", itemCounts)
	}
}

func TestRecordWearReturnsStoredEvent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	b := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	outfit := mustOutfit(t, database, "Weekend", a, b)

	event, err := RecordWear(ctx, database, outfit.ID, "2026-10-14", "park")
	if err != nil {
		t.Fatalf("RecordWear: %v", err)
	}
	stored, err := GetWearEvent(ctx, database, event.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetWearEvent: %v %v", stored, err)
	}

	if event.ID != stored.ID || event.OutfitID != stored.OutfitID || event.WornOn != stored.WornOn ||
		event.Notes != stored.Notes || event.OutfitName != stored.OutfitName ||
		!event.CreatedAt.Equal(stored.CreatedAt) {
		t.Errorf("returned event %+v differs from stored %+v", event, stored)
	}
	if fmt.Sprint(event.ItemIDs) != fmt.Sprint(stored.ItemIDs) {
		t.Errorf("returned items %v, stored %v", event.ItemIDs, stored.ItemIDs)
	}
}

func TestRecordWearRollsBackOnFailure(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	b := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	outfit := mustOutfit(t, database, "Weekend", a, b)

	// Make the second member's status update fail mid-cascade.
	trigger := fmt.Sprintf(`CREATE TRIGGER fail_status BEFORE UPDATE OF status ON items
		WHEN NEW.id = %d BEGIN SELECT RAISE(ABORT, 'disk on fire'); END`, b.ID)
	if _, err := database.ExecContext(ctx, trigger); err != nil {
		t.Fatalf("creating trigger: %v", err)
	}

	if _, err := RecordWear(ctx, database, outfit.ID, "2026-10-14", ""); err == nil {
		t.Fatal("expected RecordWear to fail")
	}

	item, _ := GetItem(ctx, database, a.ID)
	if item.IsDirty() {
		t.Error("expected first member to stay clean after rollback")
	}
	events, _ := ListWearEvents(ctx, database, WearFilter{})
	if len(events) != 0 {
		t.Errorf("expected no wear events after rollback, got %d", len(events))
	}
	itemCounts, _ := CountWearsByItem(ctx, database)
	if len(itemCounts) != 0 {
		t.Errorf("expected no worn item snapshot after rollback, got %v", itemCounts)
	}
}

func TestRecordWearSkipsDeletedMembers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	b := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	outfit := mustOutfit(t, database, "Weekend", a, b)
	DeleteItem(ctx, database, b.ID)

	event, err := RecordWear(ctx, database, outfit.ID, "2026-10-14", "")
	if err != nil {
		t.Fatalf("RecordWear: %v", err)
	}
	if len(event.ItemIDs) != 1 || event.ItemIDs[0] != a.ID {
		t.Errorf("expected snapshot of the active member only, got %v", event.ItemIDs)
	}
}

func TestListWearEventsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	b := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	casual := mustOutfit(t, database, "Casual", a, b)
	picnic := mustOutfit(t, database, "Picnic", dress)

	RecordWear(ctx, database, casual.ID, "2026-10-01", "")
	RecordWear(ctx, database, picnic.ID, "2026-10-05", "")
	RecordWear(ctx, database, casual.ID, "2026-10-10", "")

	all, _ := ListWearEvents(ctx, database, WearFilter{})
	if len(all) != 3 || all[0].WornOn != "2026-10-10" {
		t.Errorf("expected newest first, got %+v", all)
	}

	byOutfit, _ := ListWearEvents(ctx, database, WearFilter{OutfitID: picnic.ID})
	if len(byOutfit) != 1 {
		t.Errorf("expected 1 picnic wear, got %d", len(byOutfit))
	}

	byItem, _ := ListWearEvents(ctx, database, WearFilter{ItemID: a.ID})
	if len(byItem) != 2 {
		t.Errorf("expected 2 wears of the tee, got %d", len(byItem))
	}

	ranged, _ := ListWearEvents(ctx, database, WearFilter{From: "2026-10-02", To: "2026-10-09"})
	if len(ranged) != 1 || ranged[0].OutfitID != picnic.ID {
		t.Errorf("unexpected ranged events %+v", ranged)
	}
}
