// Package matcher turns a free-text outfit request into soft constraints and
// narrows the item pool to the candidates a composer may use.
package matcher

import (
	"strings"
	"unicode"

	"github.com/erazemk/garderoba/internal/model"
)

// Formality levels derived from the requested style.
const (
	FormalityCasual = "casual"
	FormalityFormal = "formal"
)

// Constraints are the soft constraints extracted from a request. Empty
// fields are wildcards.
type Constraints struct {
	Style     string   `json:"style,omitempty"`
	Occasion  string   `json:"occasion,omitempty"`
	Season    string   `json:"season,omitempty"`
	Formality string   `json:"formality,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}

// IsEmpty reports whether no dimension is constrained.
func (c Constraints) IsEmpty() bool {
	return c.Style == "" && c.Occasion == "" && c.Season == "" && len(c.Hints) == 0
}

// HasHint reports whether category was hinted.
func (c Constraints) HasHint(category string) bool {
	for _, h := range c.Hints {
		if h == category {
			return true
		}
	}
	return false
}

var styleWords = map[string]string{
	"casual":       "Casual",
	"formal":       "Formal",
	"business":     "Business",
	"professional": "Business",
	"bohemian":     "Bohemian",
	"boho":         "Bohemian",
	"minimalist":   "Minimalist",
	"vintage":      "Vintage",
	"retro":        "Vintage",
	"sporty":       "Sporty",
	"athletic":     "Sporty",
}

var occasionWords = map[string]string{
	"work":      "Work",
	"office":    "Work",
	"date":      "Date Night",
	"party":     "Party",
	"weekend":   "Weekend",
	"vacation":  "Vacation",
	"travel":    "Travel",
	"interview": "Interview",
	"meeting":   "Meeting",
	"special":   "Special Occasion",
	"wedding":   "Wedding",
	"dinner":    "Dinner",
}

var seasonWords = map[string]string{
	"summer": model.SeasonSummer,
	"winter": model.SeasonWinter,
	"fall":   model.SeasonFall,
	"autumn": model.SeasonFall,
	"spring": model.SeasonSpring,
	"hot":    model.SeasonSummer,
	"warm":   model.SeasonSummer,
	"cold":   model.SeasonWinter,
	"cool":   model.SeasonFall,
	"rainy":  model.SeasonSpring,
}

var hintWords = map[string]string{
	"shirt":       model.CategoryShirt,
	"t-shirt":     model.CategoryShirt,
	"tee":         model.CategoryShirt,
	"blouse":      model.CategoryShirt,
	"top":         model.CategoryShirt,
	"pants":       model.CategoryPants,
	"jeans":       model.CategoryPants,
	"trousers":    model.CategoryPants,
	"shorts":      model.CategoryPants,
	"skirt":       model.CategoryPants,
	"dress":       model.CategoryDress,
	"gown":        model.CategoryDress,
	"jacket":      model.CategoryJacket,
	"blazer":      model.CategoryJacket,
	"coat":        model.CategoryJacket,
	"shoes":       model.CategoryShoes,
	"sneakers":    model.CategoryShoes,
	"boots":       model.CategoryShoes,
	"heels":       model.CategoryShoes,
	"sandals":     model.CategoryShoes,
	"loafers":     model.CategoryShoes,
	"accessory":   model.CategoryAccessory,
	"accessories": model.CategoryAccessory,
	"scarf":       model.CategoryAccessory,
	"belt":        model.CategoryAccessory,
	"hat":         model.CategoryAccessory,
	"bag":         model.CategoryAccessory,
	"jewelry":     model.CategoryJewelry,
	"jewellery":   model.CategoryJewelry,
	"necklace":    model.CategoryJewelry,
	"earrings":    model.CategoryJewelry,
	"bracelet":    model.CategoryJewelry,
	"ring":        model.CategoryJewelry,
}

// Tokenize lowercases text and splits it into words. Hyphens stay inside
// words so "t-shirt" and "all-season" survive.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// Parse extracts constraints from text. Within one dimension the keyword
// that appears first in the text wins; later keywords of the same dimension
// are ignored. Category hints accumulate in order of first appearance.
// Parse never fails: unrecognised text yields empty constraints.
func Parse(text string) Constraints {
	var c Constraints
	for _, tok := range Tokenize(text) {
		if v, ok := styleWords[tok]; ok && c.Style == "" {
			c.Style = v
		}
		if v, ok := occasionWords[tok]; ok && c.Occasion == "" {
			c.Occasion = v
		}
		if v, ok := seasonWords[tok]; ok && c.Season == "" {
			c.Season = v
		}
		if v, ok := hintWords[tok]; ok && !c.HasHint(v) {
			c.Hints = append(c.Hints, v)
		}
	}
	c.Formality = FormalityFor(c.Style)
	return c
}

// FormalityFor maps a style to its formality level, or "" when the style
// does not imply one.
func FormalityFor(style string) string {
	switch style {
	case "Formal", "Business":
		return FormalityFormal
	case "Casual", "Sporty":
		return FormalityCasual
	}
	return ""
}
