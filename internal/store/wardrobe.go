package store

import (
	"context"
	"database/sql"

	"github.com/erazemk/garderoba/internal/model"
)

// Wardrobe binds the package functions to one database so engine packages
// can depend on small interfaces instead of *sql.DB.
type Wardrobe struct {
	DB *sql.DB
}

// NewWardrobe returns a Wardrobe backed by db.
func NewWardrobe(db *sql.DB) *Wardrobe {
	return &Wardrobe{DB: db}
}

// GetItem returns an item by ID, or nil if it does not exist.
func (w *Wardrobe) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return GetItem(ctx, w.DB, id)
}

// ItemsByStatus lists active items with the given laundry status.
func (w *Wardrobe) ItemsByStatus(ctx context.Context, status string) ([]model.Item, error) {
	return ListItems(ctx, w.DB, ItemFilter{Status: status})
}

// SetItemStatus sets an item's laundry status.
func (w *Wardrobe) SetItemStatus(ctx context.Context, id int64, status string) error {
	return SetItemStatus(ctx, w.DB, id, status)
}

// GetOutfit returns an outfit with its items, or nil if it does not exist.
func (w *Wardrobe) GetOutfit(ctx context.Context, id int64) (*model.Outfit, error) {
	return GetOutfit(ctx, w.DB, id)
}

// RecordWear logs a wear and marks the outfit's items dirty atomically.
func (w *Wardrobe) RecordWear(ctx context.Context, outfitID int64, wornOn, notes string) (*model.WearEvent, error) {
	return RecordWear(ctx, w.DB, outfitID, wornOn, notes)
}

// CreateCalendarEntry schedules an outfit on a date.
func (w *Wardrobe) CreateCalendarEntry(ctx context.Context, date string, outfitID int64, notes string) (*model.CalendarEntry, error) {
	return CreateCalendarEntry(ctx, w.DB, date, outfitID, notes)
}

// GetCalendarEntry returns a calendar entry by ID, or nil.
func (w *Wardrobe) GetCalendarEntry(ctx context.Context, id int64) (*model.CalendarEntry, error) {
	return GetCalendarEntry(ctx, w.DB, id)
}

// GetCalendarByDate returns the entry scheduled on date, or nil.
func (w *Wardrobe) GetCalendarByDate(ctx context.Context, date string) (*model.CalendarEntry, error) {
	return GetCalendarByDate(ctx, w.DB, date)
}

// UpdateCalendarEntry changes an entry's outfit and notes.
func (w *Wardrobe) UpdateCalendarEntry(ctx context.Context, id, outfitID int64, notes string) error {
	return UpdateCalendarEntry(ctx, w.DB, id, outfitID, notes)
}

// DeleteCalendarEntry removes a calendar entry.
func (w *Wardrobe) DeleteCalendarEntry(ctx context.Context, id int64) error {
	return DeleteCalendarEntry(ctx, w.DB, id)
}

// ListCalendar lists entries between from and to, at most limit of them.
func (w *Wardrobe) ListCalendar(ctx context.Context, from, to string, limit int) ([]model.CalendarEntry, error) {
	return ListCalendar(ctx, w.DB, CalendarRange{From: from, To: to, Limit: limit})
}
