package matcher

import (
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// Narrow returns the items a composer may use for c. Dirty items are always
// dropped. Season and occasion are soft: they are applied per category and
// skipped for a category they would leave empty. The result keeps the
// input order.
func Narrow(items []model.Item, c Constraints) []model.Item {
	byCategory := make(map[string][]int)
	var order []string
	for i, it := range items {
		if it.IsDirty() {
			continue
		}
		if _, seen := byCategory[it.Category]; !seen {
			order = append(order, it.Category)
		}
		byCategory[it.Category] = append(byCategory[it.Category], i)
	}

	keep := make([]bool, len(items))
	for _, cat := range order {
		group := byCategory[cat]
		if c.Season != "" {
			group = softFilter(items, group, func(it model.Item) bool { return MatchesSeason(it, c.Season) })
		}
		if c.Occasion != "" {
			group = softFilter(items, group, func(it model.Item) bool { return it.HasOccasion(c.Occasion) })
		}
		for _, i := range group {
			keep[i] = true
		}
	}

	var out []model.Item
	for i, it := range items {
		if keep[i] {
			out = append(out, it)
		}
	}
	return out
}

// MatchesSeason reports whether item suits season. Items tagged All-Season
// or without a season tag suit every season.
func MatchesSeason(item model.Item, season string) bool {
	if item.Season == "" || strings.EqualFold(item.Season, model.SeasonAllSeason) {
		return true
	}
	return strings.EqualFold(item.Season, season)
}

func softFilter(items []model.Item, group []int, match func(model.Item) bool) []int {
	var out []int
	for _, i := range group {
		if match(items[i]) {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return group
	}
	return out
}
