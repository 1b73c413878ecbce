package wardrobe

import (
	"context"

	"github.com/erazemk/garderoba/internal/model"
)

// MarkDirty marks one item dirty.
func (s *Service) MarkDirty(ctx context.Context, itemID int64) error {
	return s.laundry.MarkDirty(ctx, itemID)
}

// MarkClean marks one item clean.
func (s *Service) MarkClean(ctx context.Context, itemID int64) error {
	return s.laundry.MarkClean(ctx, itemID)
}

// Wear records that an outfit was worn on date (YYYY-MM-DD, empty for
// today) and marks its items dirty.
func (s *Service) Wear(ctx context.Context, outfitID int64, date, notes string) (*model.WearEvent, error) {
	day, err := s.ParseDay(date)
	if err != nil {
		return nil, err
	}
	return s.laundry.RecordWear(ctx, outfitID, day, notes)
}

// OutfitStatus returns the derived laundry status of an outfit.
func (s *Service) OutfitStatus(ctx context.Context, outfitID int64) (string, error) {
	return s.laundry.OutfitStatus(ctx, outfitID)
}

// DirtyItems lists items waiting to be laundered.
func (s *Service) DirtyItems(ctx context.Context) ([]model.Item, error) {
	return s.laundry.Dirty(ctx)
}

// CleanItems lists items ready to wear.
func (s *Service) CleanItems(ctx context.Context) ([]model.Item, error) {
	return s.laundry.Clean(ctx)
}
