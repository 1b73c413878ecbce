// Package laundry tracks the clean/dirty lifecycle of items and applies
// wear events to every member of an outfit.
package laundry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// Store is the persistence the state machine needs. RecordWear must apply
// the wear event and every member status flip atomically.
type Store interface {
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	ItemsByStatus(ctx context.Context, status string) ([]model.Item, error)
	SetItemStatus(ctx context.Context, id int64, status string) error
	GetOutfit(ctx context.Context, id int64) (*model.Outfit, error)
	RecordWear(ctx context.Context, outfitID int64, wornOn, notes string) (*model.WearEvent, error)
}

// Machine applies laundry transitions.
type Machine struct {
	store Store
}

// New returns a Machine backed by s.
func New(s Store) *Machine {
	return &Machine{store: s}
}

// MarkDirty marks one item dirty. Marking a dirty item again is a no-op.
func (m *Machine) MarkDirty(ctx context.Context, itemID int64) error {
	return m.setStatus(ctx, itemID, model.StatusDirty)
}

// MarkClean marks one item clean, e.g. after laundering. It never touches
// outfits or past wear events.
func (m *Machine) MarkClean(ctx context.Context, itemID int64) error {
	return m.setStatus(ctx, itemID, model.StatusClean)
}

func (m *Machine) setStatus(ctx context.Context, itemID int64, status string) error {
	if err := m.store.SetItemStatus(ctx, itemID, status); err != nil {
		return fmt.Errorf("marking item %d %s: %w", itemID, status, err)
	}
	slog.Info("item status changed", "item", itemID, "status", status)
	return nil
}

// RecordWear logs that the outfit was worn on day and marks all its items
// dirty. Store failures are reported as model.ErrCascadeFailure; in that
// case nothing was applied.
func (m *Machine) RecordWear(ctx context.Context, outfitID int64, day time.Time, notes string) (*model.WearEvent, error) {
	outfit, err := m.store.GetOutfit(ctx, outfitID)
	if err != nil {
		return nil, fmt.Errorf("getting outfit: %w", err)
	}
	if outfit == nil {
		return nil, fmt.Errorf("outfit %d: %w", outfitID, model.ErrNotFound)
	}
	if len(activeItems(outfit.Items)) == 0 {
		return nil, fmt.Errorf("outfit %d has no items to wear: %w", outfitID, model.ErrInsufficientItems)
	}

	event, err := m.store.RecordWear(ctx, outfitID, model.FormatDate(day), notes)
	if err != nil {
		slog.Error("wear cascade failed", "outfit", outfitID, "error", err)
		return nil, fmt.Errorf("recording wear of outfit %d: %w: %w", outfitID, model.ErrCascadeFailure, err)
	}

	slog.Info("outfit worn", "outfit", outfit.Name, "date", event.WornOn, "items", len(event.ItemIDs))
	return event, nil
}

// OutfitStatus derives an outfit's status from its current items.
func (m *Machine) OutfitStatus(ctx context.Context, outfitID int64) (string, error) {
	outfit, err := m.store.GetOutfit(ctx, outfitID)
	if err != nil {
		return "", fmt.Errorf("getting outfit: %w", err)
	}
	if outfit == nil {
		return "", fmt.Errorf("outfit %d: %w", outfitID, model.ErrNotFound)
	}
	return model.OutfitStatus(activeItems(outfit.Items)), nil
}

// ItemStatus returns one item's status.
func (m *Machine) ItemStatus(ctx context.Context, itemID int64) (string, error) {
	item, err := m.store.GetItem(ctx, itemID)
	if err != nil {
		return "", fmt.Errorf("getting item: %w", err)
	}
	if item == nil || item.DeletedAt != nil {
		return "", fmt.Errorf("item %d: %w", itemID, model.ErrNotFound)
	}
	return item.Status, nil
}

// Dirty lists items waiting to be laundered.
func (m *Machine) Dirty(ctx context.Context) ([]model.Item, error) {
	return m.store.ItemsByStatus(ctx, model.StatusDirty)
}

// Clean lists items ready to wear.
func (m *Machine) Clean(ctx context.Context) ([]model.Item, error) {
	return m.store.ItemsByStatus(ctx, model.StatusClean)
}

func activeItems(items []model.Item) []model.Item {
	var out []model.Item
	for _, it := range items {
		if it.DeletedAt == nil {
			out = append(out, it)
		}
	}
	return out
}
