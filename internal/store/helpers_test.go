package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/erazemk/garderoba/internal/model"
)

func mustItem(t *testing.T, database *sql.DB, name, category, color string) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), database, model.Item{Name: name, Category: category, Color: color})
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", name, err)
	}
	return item
}

func mustOutfit(t *testing.T, database *sql.DB, name string, items ...*model.Item) *model.Outfit {
	t.Helper()
	o := model.Outfit{Name: name}
	for _, it := range items {
		o.ItemIDs = append(o.ItemIDs, it.ID)
	}
	outfit, err := CreateOutfit(context.Background(), database, o)
	if err != nil {
		t.Fatalf("CreateOutfit(%s): %v", name, err)
	}
	return outfit
}
