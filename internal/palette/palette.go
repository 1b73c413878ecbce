// Package palette scores declared color labels against each other and
// against a personal color season.
package palette

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pair scores.
const (
	ScoreComplementary = 3
	ScoreNeutral       = 2
	ScoreSameFamily    = 1
	ScoreUnrelated     = 0
	ScoreClash         = -2
)

// Neutral families go with everything.
var neutrals = map[string]bool{
	"black": true,
	"white": true,
	"gray":  true,
	"navy":  true,
	"beige": true,
}

// families maps color words to a base family.
var families = map[string]string{
	"black":      "black",
	"charcoal":   "gray",
	"white":      "white",
	"ivory":      "white",
	"cream":      "beige",
	"gray":       "gray",
	"grey":       "gray",
	"silver":     "gray",
	"navy":       "navy",
	"beige":      "beige",
	"tan":        "beige",
	"khaki":      "beige",
	"camel":      "brown",
	"brown":      "brown",
	"chocolate":  "brown",
	"rust":       "orange",
	"terracotta": "orange",
	"red":        "red",
	"burgundy":   "red",
	"maroon":     "red",
	"tomato":     "red",
	"pink":       "pink",
	"rose":       "pink",
	"fuchsia":    "pink",
	"magenta":    "pink",
	"coral":      "orange",
	"peach":      "orange",
	"orange":     "orange",
	"yellow":     "yellow",
	"mustard":    "yellow",
	"gold":       "yellow",
	"green":      "green",
	"olive":      "green",
	"emerald":    "green",
	"sage":       "green",
	"mint":       "green",
	"teal":       "teal",
	"turquoise":  "teal",
	"aqua":       "teal",
	"blue":       "blue",
	"denim":      "blue",
	"periwinkle": "blue",
	"purple":     "purple",
	"lavender":   "purple",
	"mauve":      "purple",
	"plum":       "purple",
	"violet":     "purple",
}

type pair struct{ a, b string }

// complementary lists family pairs that sit well together.
var complementary = map[pair]bool{
	{"blue", "orange"}:   true,
	{"blue", "brown"}:    true,
	{"red", "green"}:     true,
	{"yellow", "purple"}: true,
	{"pink", "green"}:    true,
	{"teal", "orange"}:   true,
	{"teal", "pink"}:     true,
	{"brown", "green"}:   true,
	{"teal", "brown"}:    true,
}

// clashes lists family pairs that fight each other.
var clashes = map[pair]bool{
	{"red", "pink"}:      true,
	{"red", "orange"}:    true,
	{"orange", "pink"}:   true,
	{"orange", "purple"}: true,
	{"green", "purple"}:  true,
	{"brown", "purple"}:  true,
	{"red", "purple"}:    true,
	{"yellow", "pink"}:   true,
}

// Family normalises a color label to its base family. The first known word
// in the label decides ("light blue" is blue, "navy blue" is navy). Labels
// with no known word are returned lowercased.
func Family(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, word := range strings.FieldsFunc(label, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/' || r == ','
	}) {
		if f, ok := families[word]; ok {
			return f
		}
	}
	return label
}

// IsNeutral reports whether label belongs to a neutral family.
func IsNeutral(label string) bool {
	return neutrals[Family(label)]
}

// Score rates how well two color labels go together. The matrix is
// symmetric.
func Score(a, b string) int {
	fa, fb := Family(a), Family(b)
	if fa == "" || fb == "" {
		return ScoreUnrelated
	}
	if neutrals[fa] || neutrals[fb] {
		return ScoreNeutral
	}
	if fa == fb {
		return ScoreSameFamily
	}
	if complementary[pair{fa, fb}] || complementary[pair{fb, fa}] {
		return ScoreComplementary
	}
	if clashes[pair{fa, fb}] || clashes[pair{fb, fa}] {
		return ScoreClash
	}
	return ScoreUnrelated
}

// Total sums Score over every unordered pair of labels.
func Total(labels []string) int {
	total := 0
	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			total += Score(labels[i], labels[j])
		}
	}
	return total
}

// Label normalises a color label for display: trimmed, single spaced and
// title cased ("light  BLUE" becomes "Light Blue").
func Label(label string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(strings.ToLower(label)), " "))
}
