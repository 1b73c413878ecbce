package composer

import (
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/matcher"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/palette"
)

// Name builds a proposal name from the constraints, e.g. "Casual Summer
// Outfit". Unconstrained proposals are named after their dominant color.
func Name(c matcher.Constraints, items []model.Item) string {
	var parts []string
	for _, p := range []string{c.Style, c.Occasion, c.Season} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		if color := DominantColor(items); color != "" {
			parts = append(parts, color)
		}
		parts = append(parts, "Everyday")
	}
	parts = append(parts, "Outfit")
	return strings.Join(parts, " ")
}

// DominantColor returns the most frequent color family among items, title
// cased. Non-neutral families win over neutrals; ties go to the family seen
// first.
func DominantColor(items []model.Item) string {
	counts := make(map[string]int)
	var order []string
	for _, it := range items {
		f := palette.Family(it.Color)
		if f == "" {
			continue
		}
		if counts[f] == 0 {
			order = append(order, f)
		}
		counts[f]++
	}

	best := ""
	for _, f := range order {
		switch {
		case best == "":
			best = f
		case palette.IsNeutral(best) && !palette.IsNeutral(f):
			best = f
		case palette.IsNeutral(best) == palette.IsNeutral(f) && counts[f] > counts[best]:
			best = f
		}
	}
	return palette.Label(best)
}

// Describe renders a proposal as a short chat reply.
func Describe(p *Proposal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I've put together a %s for you:\n", strings.ToLower(p.Name))
	for _, it := range p.Items {
		fmt.Fprintf(&b, "- %s (%s %s)\n", it.Name, it.Color, strings.ToLower(it.Category))
	}

	c := p.Constraints
	var suited []string
	if c.Style != "" {
		suited = append(suited, "a "+strings.ToLower(c.Style)+" style")
	}
	if c.Occasion != "" {
		suited = append(suited, strings.ToLower(c.Occasion))
	}
	if c.Season != "" {
		suited = append(suited, "during "+strings.ToLower(c.Season))
	}
	if len(suited) > 0 {
		fmt.Fprintf(&b, "\nThis outfit is suitable for %s.\n", strings.Join(suited, ", "))
	}

	b.WriteString("\nYou can save this outfit or ask for a new one.")
	return b.String()
}
