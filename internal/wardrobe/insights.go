package wardrobe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/palette"
	"github.com/erazemk/garderoba/internal/stats"
	"github.com/erazemk/garderoba/internal/store"
)

// ColorFilter narrows StatsColors. Zero values match every item.
type ColorFilter struct {
	OutfitID int64
	Category string
}

// StatsLaundry returns the clean/dirty split of active items.
func (s *Service) StatsLaundry(ctx context.Context) (stats.LaundryStats, error) {
	items, err := store.ListItems(ctx, s.db, store.ItemFilter{})
	if err != nil {
		return stats.LaundryStats{}, err
	}
	return stats.Laundry(items), nil
}

// StatsWear returns wear counts per outfit, most worn first.
func (s *Service) StatsWear(ctx context.Context) ([]stats.OutfitWear, error) {
	outfits, err := store.ListOutfits(ctx, s.db, store.OutfitFilter{})
	if err != nil {
		return nil, err
	}
	events, err := store.ListWearEvents(ctx, s.db, store.WearFilter{})
	if err != nil {
		return nil, err
	}
	return stats.WearFrequency(outfits, events), nil
}

// StatsColors returns the color distribution of the items selected by f.
func (s *Service) StatsColors(ctx context.Context, f ColorFilter) ([]stats.ColorCount, error) {
	var items []model.Item
	if f.OutfitID > 0 {
		outfit, err := s.Outfit(ctx, f.OutfitID)
		if err != nil {
			return nil, err
		}
		for _, it := range outfit.Items {
			if it.DeletedAt != nil {
				continue
			}
			if f.Category == "" || strings.EqualFold(it.Category, f.Category) {
				items = append(items, it)
			}
		}
	} else {
		var err error
		items, err = store.ListItems(ctx, s.db, store.ItemFilter{Category: f.Category})
		if err != nil {
			return nil, err
		}
	}
	return stats.Colors(items), nil
}

// ItemWearReport holds the most and least worn items.
type ItemWearReport struct {
	Most  []stats.ItemWear `json:"most_worn"`
	Least []stats.ItemWear `json:"least_worn"`
}

// StatsItems returns up to limit of the most and least worn items.
func (s *Service) StatsItems(ctx context.Context, limit int) (*ItemWearReport, error) {
	items, err := store.ListItems(ctx, s.db, store.ItemFilter{})
	if err != nil {
		return nil, err
	}
	counts, err := store.CountWearsByItem(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return &ItemWearReport{
		Most:  stats.MostWornItems(items, counts, limit),
		Least: stats.LeastWornItems(items, counts, limit),
	}, nil
}

// StatsSummary returns a wardrobe overview.
func (s *Service) StatsSummary(ctx context.Context) (stats.Summary, error) {
	items, err := store.ListItems(ctx, s.db, store.ItemFilter{})
	if err != nil {
		return stats.Summary{}, err
	}
	outfits, err := store.ListOutfits(ctx, s.db, store.OutfitFilter{})
	if err != nil {
		return stats.Summary{}, err
	}
	events, err := store.ListWearEvents(ctx, s.db, store.WearFilter{})
	if err != nil {
		return stats.Summary{}, err
	}
	counts, err := store.CountWearsByItem(ctx, s.db)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(items, outfits, events, counts), nil
}

// StatsSeasonal reports the coming season change as of today.
func (s *Service) StatsSeasonal(ctx context.Context) (stats.SeasonalReport, error) {
	items, err := store.ListItems(ctx, s.db, store.ItemFilter{})
	if err != nil {
		return stats.SeasonalReport{}, err
	}
	return stats.Seasonal(items, s.Today()), nil
}

// ColorSeason returns the owner's personal color season.
func (s *Service) ColorSeason(ctx context.Context) (palette.SeasonInfo, error) {
	name, err := store.GetSetting(ctx, s.db, store.SettingColorSeason)
	if err != nil {
		return palette.SeasonInfo{}, err
	}
	if name == "" {
		name = s.opts.ColorSeason
	}
	if info, ok := palette.LookupSeason(name); ok {
		return info, nil
	}
	info, _ := palette.LookupSeason(palette.DefaultSeason)
	return info, nil
}

// SetColorSeason stores the owner's personal color season.
func (s *Service) SetColorSeason(ctx context.Context, name string) (palette.SeasonInfo, error) {
	info, ok := palette.LookupSeason(name)
	if !ok {
		return palette.SeasonInfo{}, fmt.Errorf("unknown color season %q", name)
	}
	if err := store.SetSetting(ctx, s.db, store.SettingColorSeason, info.Name); err != nil {
		return palette.SeasonInfo{}, err
	}
	slog.Info("color season set", "season", info.Name)
	return info, nil
}

// AnalyzeItem rates an item's color against the owner's color season.
func (s *Service) AnalyzeItem(ctx context.Context, itemID int64) (*palette.ItemAnalysis, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	info, err := s.ColorSeason(ctx)
	if err != nil {
		return nil, err
	}
	a := palette.Analyze(*item, info)
	return &a, nil
}

// OutfitHarmony rates an outfit's colors against the owner's color season.
func (s *Service) OutfitHarmony(ctx context.Context, outfitID int64) (*palette.Harmony, error) {
	outfit, err := s.Outfit(ctx, outfitID)
	if err != nil {
		return nil, err
	}
	info, err := s.ColorSeason(ctx)
	if err != nil {
		return nil, err
	}
	h := palette.OutfitHarmony(outfit.Items, info)
	return &h, nil
}

// WardrobePalette rates every active item against the owner's color season.
func (s *Service) WardrobePalette(ctx context.Context) (*palette.WardrobeAnalysis, error) {
	items, err := store.ListItems(ctx, s.db, store.ItemFilter{})
	if err != nil {
		return nil, err
	}
	info, err := s.ColorSeason(ctx)
	if err != nil {
		return nil, err
	}
	w := palette.AnalyzeWardrobe(items, info)
	return &w, nil
}
