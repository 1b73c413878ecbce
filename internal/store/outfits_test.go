package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestCreateOutfitWithItemsAndTags(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shirt := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	pants := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	casual, _ := FindTagByName(ctx, database, "casual", model.TagCategoryStyle)
	if casual == nil {
		t.Fatal("expected seeded Casual tag")
	}

	outfit, err := CreateOutfit(ctx, database, model.Outfit{
		Name:    "Weekend",
		Rating:  4,
		ItemIDs: []int64{shirt.ID, pants.ID},
		Tags:    []model.Tag{*casual},
	})
	if err != nil {
		t.Fatalf("CreateOutfit: %v", err)
	}
	if len(outfit.Items) != 2 || len(outfit.ItemIDs) != 2 {
		t.Errorf("expected 2 items, got %d", len(outfit.Items))
	}
	if len(outfit.Tags) != 1 || outfit.Tags[0].CategoryName != model.TagCategoryStyle {
		t.Errorf("expected one Style tag, got %+v", outfit.Tags)
	}
}

func TestCreateOutfitIsAtomic(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shirt := mustItem(t, database, "Tee", model.CategoryShirt, "White")

	_, err := CreateOutfit(ctx, database, model.Outfit{Name: "Broken", ItemIDs: []int64{shirt.ID, 9999}})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing item, got %v", err)
	}

	outfits, _ := ListOutfits(ctx, database, OutfitFilter{})
	if len(outfits) != 0 {
		t.Errorf("expected no outfit after failed create, got %d", len(outfits))
	}
}

func TestCreateOutfitValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateOutfit(ctx, database, model.Outfit{Name: "Empty"}); err == nil {
		t.Error("expected error for outfit without items")
	}

	shirt := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	if _, err := CreateOutfit(ctx, database, model.Outfit{Name: "Bad", Rating: 9, ItemIDs: []int64{shirt.ID}}); err == nil {
		t.Error("expected error for rating out of range")
	}
}

func TestListOutfitsByItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shirt := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	pants := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	mustOutfit(t, database, "A", shirt, pants)
	mustOutfit(t, database, "B", dress)

	all, _ := ListOutfits(ctx, database, OutfitFilter{})
	if len(all) != 2 {
		t.Fatalf("expected 2 outfits, got %d", len(all))
	}
	for _, o := range all {
		if len(o.Items) == 0 {
			t.Errorf("expected items to be loaded for %s", o.Name)
		}
	}

	withShirt, _ := ListOutfits(ctx, database, OutfitFilter{ItemID: shirt.ID})
	if len(withShirt) != 1 || withShirt[0].Name != "A" {
		t.Errorf("expected only outfit A, got %v", withShirt)
	}
}

func TestUpdateOutfitReplacesItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shirt := mustItem(t, database, "Tee", model.CategoryShirt, "White")
	pants := mustItem(t, database, "Jeans", model.CategoryPants, "Blue")
	shoes := mustItem(t, database, "Sneakers", model.CategoryShoes, "White")
	outfit := mustOutfit(t, database, "A", shirt, pants)

	outfit.Name = "A+"
	outfit.ItemIDs = []int64{shirt.ID, pants.ID, shoes.ID}
	if err := UpdateOutfit(ctx, database, *outfit); err != nil {
		t.Fatalf("UpdateOutfit: %v", err)
	}

	got, _ := GetOutfit(ctx, database, outfit.ID)
	if got.Name != "A+" || len(got.Items) != 3 {
		t.Errorf("update not applied: %s with %d items", got.Name, len(got.Items))
	}

	if err := UpdateOutfit(ctx, database, model.Outfit{ID: 9999, Name: "x", ItemIDs: []int64{shirt.ID}}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOutfitFreesCalendar(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	outfit := mustOutfit(t, database, "Picnic", dress)
	CreateCalendarEntry(ctx, database, "2026-07-01", outfit.ID, "")

	if err := DeleteOutfit(ctx, database, outfit.ID); err != nil {
		t.Fatalf("DeleteOutfit: %v", err)
	}

	got, _ := GetOutfit(ctx, database, outfit.ID)
	if got != nil {
		t.Error("expected deleted outfit to be gone")
	}
	entry, _ := GetCalendarByDate(ctx, database, "2026-07-01")
	if entry != nil {
		t.Error("expected calendar day to be freed")
	}

	if err := DeleteOutfit(ctx, database, outfit.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestOutfitPhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	dress := mustItem(t, database, "Sundress", model.CategoryDress, "Yellow")
	outfit := mustOutfit(t, database, "Picnic", dress)
	SetOutfitPhoto(ctx, database, outfit.ID, []byte("jpeg"), "image/jpeg")

	data, mime, err := GetOutfitPhoto(ctx, database, outfit.ID)
	if err != nil {
		t.Fatalf("GetOutfitPhoto: %v", err)
	}
	if string(data) != "jpeg" || mime != "image/jpeg" {
		t.Errorf("unexpected photo %q %q", data, mime)
	}
}
