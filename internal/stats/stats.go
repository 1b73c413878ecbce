// Package stats computes read-only views over items, outfits and wear
// events. Nothing here is cached or stored.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/erazemk/garderoba/internal/matcher"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/palette"
)

// Percent returns n as a percentage of total rounded to one decimal, or 0
// when total is 0.
func Percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*1000/float64(total)) / 10
}

// LaundryStats is the clean/dirty split of a set of items.
type LaundryStats struct {
	Total        int     `json:"total"`
	Clean        int     `json:"clean"`
	Dirty        int     `json:"dirty"`
	CleanPercent float64 `json:"clean_percent"`
	DirtyPercent float64 `json:"dirty_percent"`
}

// Laundry counts clean and dirty items.
func Laundry(items []model.Item) LaundryStats {
	s := LaundryStats{Total: len(items)}
	for _, it := range items {
		if it.IsDirty() {
			s.Dirty++
		} else {
			s.Clean++
		}
	}
	s.CleanPercent = Percent(s.Clean, s.Total)
	s.DirtyPercent = Percent(s.Dirty, s.Total)
	return s
}

// OutfitWear is how often one outfit was worn.
type OutfitWear struct {
	OutfitID int64  `json:"outfit_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	LastWorn string `json:"last_worn,omitempty"`
}

// WearFrequency counts wear events per outfit, most worn first. Outfits
// that were never worn are included with a zero count. Events for outfits
// not in the list (e.g. deleted ones) are counted under their own name.
func WearFrequency(outfits []model.Outfit, events []model.WearEvent) []OutfitWear {
	byID := make(map[int64]*OutfitWear)
	var out []*OutfitWear
	for _, o := range outfits {
		w := &OutfitWear{OutfitID: o.ID, Name: o.Name}
		byID[o.ID] = w
		out = append(out, w)
	}
	for _, e := range events {
		w, ok := byID[e.OutfitID]
		if !ok {
			w = &OutfitWear{OutfitID: e.OutfitID, Name: e.OutfitName}
			byID[e.OutfitID] = w
			out = append(out, w)
		}
		w.Count++
		if e.WornOn > w.LastWorn {
			w.LastWorn = e.WornOn
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].OutfitID < out[j].OutfitID
	})

	result := make([]OutfitWear, len(out))
	for i, w := range out {
		result[i] = *w
	}
	return result
}

// ColorCount is the frequency of one color label.
type ColorCount struct {
	Color   string  `json:"color"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Colors counts declared color labels, most frequent first. Labels are
// compared after palette.Label normalisation; items without a color are
// skipped.
func Colors(items []model.Item) []ColorCount {
	counts := make(map[string]int)
	total := 0
	for _, it := range items {
		label := palette.Label(it.Color)
		if label == "" {
			continue
		}
		counts[label]++
		total++
	}

	out := make([]ColorCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, ColorCount{Color: c, Count: n, Percent: Percent(n, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Color < out[j].Color
	})
	return out
}

// ItemWear is how often one item was worn.
type ItemWear struct {
	Item  model.Item `json:"item"`
	Count int        `json:"count"`
}

// MostWornItems returns up to limit items with the highest wear counts.
// Items never worn are left out.
func MostWornItems(items []model.Item, counts map[int64]int, limit int) []ItemWear {
	var out []ItemWear
	for _, it := range items {
		if n := counts[it.ID]; n > 0 {
			out = append(out, ItemWear{Item: it, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return truncate(out, limit)
}

// LeastWornItems returns up to limit items with the lowest wear counts,
// never-worn items first.
func LeastWornItems(items []model.Item, counts map[int64]int, limit int) []ItemWear {
	out := make([]ItemWear, len(items))
	for i, it := range items {
		out[i] = ItemWear{Item: it, Count: counts[it.ID]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return truncate(out, limit)
}

func truncate(s []ItemWear, limit int) []ItemWear {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

// Summary is an overview of the whole wardrobe.
type Summary struct {
	TotalItems    int            `json:"total_items"`
	TotalOutfits  int            `json:"total_outfits"`
	TotalWears    int            `json:"total_wears"`
	ItemsByCat    map[string]int `json:"items_by_category"`
	AverageRating float64        `json:"average_rating"`
	LastWorn      string         `json:"last_worn,omitempty"`
	UnwornItems   int            `json:"unworn_items"`
	UnwornPercent float64        `json:"unworn_percent"`
	Laundry       LaundryStats   `json:"laundry"`
}

// Summarize builds a Summary. counts are per-item wear counts.
func Summarize(items []model.Item, outfits []model.Outfit, events []model.WearEvent, counts map[int64]int) Summary {
	s := Summary{
		TotalItems:   len(items),
		TotalOutfits: len(outfits),
		TotalWears:   len(events),
		ItemsByCat:   make(map[string]int),
		Laundry:      Laundry(items),
	}

	for _, it := range items {
		s.ItemsByCat[it.Category]++
		if counts[it.ID] == 0 {
			s.UnwornItems++
		}
	}
	s.UnwornPercent = Percent(s.UnwornItems, s.TotalItems)

	rated, sum := 0, 0
	for _, o := range outfits {
		if o.Rating > 0 {
			rated++
			sum += o.Rating
		}
	}
	if rated > 0 {
		s.AverageRating = math.Round(float64(sum)*10/float64(rated)) / 10
	}

	for _, e := range events {
		if e.WornOn > s.LastWorn {
			s.LastWorn = e.WornOn
		}
	}
	return s
}

// SeasonalReport describes the coming season change.
type SeasonalReport struct {
	Current      string       `json:"current_season"`
	Next         string       `json:"next_season"`
	NextStarts   string       `json:"next_starts"`
	DaysUntil    int          `json:"days_until"`
	ToStore      []model.Item `json:"to_store"`
	ToBringOut   []model.Item `json:"to_bring_out"`
	ReadyForNext int          `json:"ready_for_next"`
	NeedsWashing []model.Item `json:"needs_washing"`
}

// Seasonal reports which items to put away and bring out for the season
// following today, and which next-season items still need washing.
func Seasonal(items []model.Item, today time.Time) SeasonalReport {
	t := model.Day(today)
	current := model.SeasonForDate(t)
	next, starts := model.NextSeason(t)

	r := SeasonalReport{
		Current:    current,
		Next:       next,
		NextStarts: model.FormatDate(starts),
		DaysUntil:  int(math.Round(starts.Sub(t).Hours() / 24)),
	}

	for _, it := range items {
		switch {
		case strings.EqualFold(it.Season, current):
			r.ToStore = append(r.ToStore, it)
		case strings.EqualFold(it.Season, next):
			r.ToBringOut = append(r.ToBringOut, it)
		}
		if matcher.MatchesSeason(it, next) {
			if it.IsDirty() {
				r.NeedsWashing = append(r.NeedsWashing, it)
			} else {
				r.ReadyForNext++
			}
		}
	}
	return r
}
