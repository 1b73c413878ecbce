package palette

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// Personal color seasons.
const (
	Winter = "Winter"
	Summer = "Summer"
	Spring = "Spring"
	Autumn = "Autumn"
)

// DefaultSeason is used until the owner picks one.
const DefaultSeason = Winter

// Compatibility levels for an item against a color season.
const (
	Excellent = "Excellent"
	Neutral   = "Neutral"
	Poor      = "Poor"
)

// SeasonInfo describes a personal color season.
type SeasonInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Best        []string `json:"best_colors"`
	Avoid       []string `json:"avoid_colors"`
}

var seasons = map[string]SeasonInfo{
	Winter: {
		Name:        Winter,
		Description: "Clear, cool, and high-contrast colors",
		Best:        []string{"Black", "White", "Navy", "Royal Blue", "Ice Blue", "Purple", "Magenta", "Red", "Emerald Green"},
		Avoid:       []string{"Orange", "Warm Brown", "Gold", "Olive Green", "Beige", "Ivory"},
	},
	Summer: {
		Name:        Summer,
		Description: "Soft, cool, and muted colors",
		Best:        []string{"Lavender", "Mauve", "Powder Blue", "Slate Blue", "Rose Pink", "Soft Fuchsia", "Periwinkle", "Sage Green"},
		Avoid:       []string{"Black", "Orange", "Bright Yellow", "Tomato Red", "Bright Gold"},
	},
	Spring: {
		Name:        Spring,
		Description: "Warm, clear, and bright colors",
		Best:        []string{"Peach", "Coral", "Golden Yellow", "Warm Green", "Aqua", "Light Turquoise", "Ivory", "Camel"},
		Avoid:       []string{"Black", "Navy", "Burgundy", "Gray", "Plum"},
	},
	Autumn: {
		Name:        Autumn,
		Description: "Warm, muted, and rich colors",
		Best:        []string{"Olive Green", "Rust", "Terracotta", "Warm Brown", "Gold", "Mustard Yellow", "Teal", "Warm Burgundy"},
		Avoid:       []string{"Black", "Fuchsia", "Icy Blue", "Bright White", "Cool Pink"},
	},
}

// Seasons returns the known color seasons in a stable order.
func Seasons() []SeasonInfo {
	return []SeasonInfo{seasons[Winter], seasons[Summer], seasons[Spring], seasons[Autumn]}
}

// LookupSeason returns the named season, ignoring case.
func LookupSeason(name string) (SeasonInfo, bool) {
	for key, info := range seasons {
		if strings.EqualFold(key, name) {
			return info, true
		}
	}
	return SeasonInfo{}, false
}

// ItemAnalysis is an item's fit with a color season.
type ItemAnalysis struct {
	ItemID        int64  `json:"item_id"`
	ItemName      string `json:"item_name"`
	Color         string `json:"color"`
	Season        string `json:"season"`
	Compatibility string `json:"compatibility"`
	Message       string `json:"message"`
}

// Rate classifies a color label against a season. A label matches a listed
// color when either contains the other, ignoring case. Best wins over avoid.
func Rate(color string, info SeasonInfo) string {
	color = strings.ToLower(strings.TrimSpace(color))
	if color == "" {
		return Neutral
	}
	if matchesAny(color, info.Best) {
		return Excellent
	}
	if matchesAny(color, info.Avoid) {
		return Poor
	}
	return Neutral
}

func matchesAny(color string, list []string) bool {
	for _, c := range list {
		c = strings.ToLower(c)
		if strings.Contains(color, c) || strings.Contains(c, color) {
			return true
		}
	}
	return false
}

// Analyze rates one item against a season.
func Analyze(item model.Item, info SeasonInfo) ItemAnalysis {
	a := ItemAnalysis{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Color:         item.Color,
		Season:        info.Name,
		Compatibility: Rate(item.Color, info),
	}
	color := strings.ToLower(item.Color)
	switch a.Compatibility {
	case Excellent:
		a.Message = fmt.Sprintf("This %s item is an excellent match for your %s color palette.", color, info.Name)
	case Poor:
		a.Message = fmt.Sprintf("This %s item may not be the best match for your %s color palette.", color, info.Name)
	default:
		a.Message = fmt.Sprintf("This %s item is a neutral match for your %s color palette.", color, info.Name)
	}
	return a
}

// Harmony summarises how an outfit's items fit a season.
type Harmony struct {
	Season    string         `json:"season"`
	Score     float64        `json:"score"`
	Level     string         `json:"level"`
	Excellent int            `json:"excellent"`
	Neutral   int            `json:"neutral"`
	Poor      int            `json:"poor"`
	Items     []ItemAnalysis `json:"items"`
}

// OutfitHarmony scores items as a percentage: excellent items count fully,
// neutral items half, poor items not at all.
func OutfitHarmony(items []model.Item, info SeasonInfo) Harmony {
	h := Harmony{Season: info.Name, Level: "N/A"}
	for _, it := range items {
		a := Analyze(it, info)
		h.Items = append(h.Items, a)
		switch a.Compatibility {
		case Excellent:
			h.Excellent++
		case Poor:
			h.Poor++
		default:
			h.Neutral++
		}
	}
	if len(items) == 0 {
		return h
	}

	h.Score = round1(float64(h.Excellent*100+h.Neutral*50) / float64(len(items)))
	switch {
	case h.Score >= 80:
		h.Level = "Excellent"
	case h.Score >= 60:
		h.Level = "Good"
	case h.Score >= 40:
		h.Level = "Fair"
	default:
		h.Level = "Poor"
	}
	return h
}

// ColorCount is a color label with its frequency.
type ColorCount struct {
	Color string `json:"color"`
	Count int    `json:"count"`
}

// WardrobeAnalysis rates a whole wardrobe against a season.
type WardrobeAnalysis struct {
	Season           string       `json:"season"`
	Total            int          `json:"total"`
	ExcellentPercent float64      `json:"excellent_percent"`
	NeutralPercent   float64      `json:"neutral_percent"`
	PoorPercent      float64      `json:"poor_percent"`
	TopColors        []ColorCount `json:"top_colors"`
	Missing          []string     `json:"missing_colors,omitempty"`
	Recommendations  []string     `json:"recommendations,omitempty"`
}

// AnalyzeWardrobe rates every item and suggests what to add or avoid.
func AnalyzeWardrobe(items []model.Item, info SeasonInfo) WardrobeAnalysis {
	w := WardrobeAnalysis{Season: info.Name, Total: len(items)}

	counts := make(map[string]int)
	var excellent, neutral, poor int
	for _, it := range items {
		if c := strings.ToLower(strings.TrimSpace(it.Color)); c != "" {
			counts[c]++
		}
		switch Rate(it.Color, info) {
		case Excellent:
			excellent++
		case Poor:
			poor++
		default:
			neutral++
		}
	}
	if w.Total > 0 {
		w.ExcellentPercent = percent(excellent, w.Total)
		w.NeutralPercent = percent(neutral, w.Total)
		w.PoorPercent = percent(poor, w.Total)
	}

	for c, n := range counts {
		w.TopColors = append(w.TopColors, ColorCount{Color: c, Count: n})
	}
	sort.Slice(w.TopColors, func(i, j int) bool {
		if w.TopColors[i].Count != w.TopColors[j].Count {
			return w.TopColors[i].Count > w.TopColors[j].Count
		}
		return w.TopColors[i].Color < w.TopColors[j].Color
	})
	if len(w.TopColors) > 10 {
		w.TopColors = w.TopColors[:10]
	}

	for _, best := range info.Best {
		b := strings.ToLower(best)
		found := false
		for c := range counts {
			if strings.Contains(c, b) || strings.Contains(b, c) {
				found = true
				break
			}
		}
		if !found {
			w.Missing = append(w.Missing, best)
		}
	}

	if w.ExcellentPercent < 50 {
		w.Recommendations = append(w.Recommendations,
			fmt.Sprintf("Consider adding more %s-friendly colors: %s.", info.Name, strings.Join(firstN(info.Best, 5), ", ")))
	}
	if w.PoorPercent > 20 {
		w.Recommendations = append(w.Recommendations,
			fmt.Sprintf("When shopping, try to avoid: %s.", strings.Join(firstN(info.Avoid, 5), ", ")))
	}
	if len(w.Missing) > 0 {
		w.Recommendations = append(w.Recommendations,
			fmt.Sprintf("Missing colors worth adding: %s.", strings.Join(firstN(w.Missing, 5), ", ")))
	}
	return w
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func percent(n, total int) float64 {
	return round1(float64(n) / float64(total) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
