// Package composer builds scored outfit proposals from candidate items.
package composer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/matcher"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/palette"
)

// MaxPerSlot caps the candidates kept per slot before enumeration. The
// least worn items are kept.
const MaxPerSlot = 8

// Request configures one composition.
type Request struct {
	Constraints matcher.Constraints
	// WearCounts maps item ID to the number of times it was worn.
	WearCounts map[int64]int
	// Exclude lists item-set keys (see Key) that must not be proposed.
	Exclude []string
}

// Proposal is an unsaved outfit suggestion.
type Proposal struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Items       []model.Item        `json:"items"`
	Score       int                 `json:"score"`
	Constraints matcher.Constraints `json:"constraints"`
	Message     string              `json:"message"`
}

// ItemIDs returns the proposal's item IDs in ascending order.
func (p Proposal) ItemIDs() []int64 {
	ids := make([]int64, len(p.Items))
	for i, it := range p.Items {
		ids[i] = it.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Key identifies the proposal's item set independent of order.
func (p Proposal) Key() string {
	return Key(p.ItemIDs())
}

// Key builds an item-set key from item IDs.
func Key(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// slot is one category role with its ranked candidates.
type slot struct {
	category string
	items    []model.Item
}

// Compose returns the best-ranked combination of candidates that is not
// excluded. Dirty candidates are ignored. A combination needs a Shirt and
// Pants, or a Dress. Shoes, Accessory and Jewelry are optional, as is a
// Jacket when the constraints call for outerwear; each optional slot is
// either filled with one candidate or left empty.
//
// Combinations are ranked by total pairwise color score (higher first),
// then by item count (more first, so an optional item that costs nothing
// is kept), then by total wear count (lower first), then by their sorted
// item IDs.
// It returns model.ErrInsufficientItems when no combination qualifies.
func Compose(candidates []model.Item, req Request) (*Proposal, error) {
	byCategory := make(map[string][]model.Item)
	for _, it := range candidates {
		if it.IsDirty() || !model.ValidCategory(it.Category) {
			continue
		}
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}
	for cat := range byCategory {
		byCategory[cat] = leastWorn(byCategory[cat], req.WearCounts)
	}

	bases := baseSets(byCategory, req.Constraints)
	if len(bases) == 0 {
		return nil, fmt.Errorf("need a shirt and pants or a dress: %w", model.ErrInsufficientItems)
	}

	var optional []slot
	for _, cat := range optionalCategories(req.Constraints) {
		if items := byCategory[cat]; len(items) > 0 {
			optional = append(optional, slot{category: cat, items: items})
		}
	}

	excluded := make(map[string]bool, len(req.Exclude))
	for _, k := range req.Exclude {
		excluded[k] = true
	}

	e := newEnumerator(req.WearCounts, excluded)
	for _, base := range bases {
		e.walk(base, optional)
	}
	if e.best == nil {
		return nil, fmt.Errorf("no other combination available: %w", model.ErrInsufficientItems)
	}

	p := &Proposal{
		ID:          uuid.NewString(),
		Items:       e.best.items,
		Score:       e.best.score,
		Constraints: req.Constraints,
	}
	p.Name = Name(req.Constraints, p.Items)
	p.Message = Describe(p)
	return p, nil
}

// GenerateNew composes again, excluding the previous proposal's item set.
func GenerateNew(candidates []model.Item, req Request, prev *Proposal) (*Proposal, error) {
	if prev != nil {
		req.Exclude = append(append([]string(nil), req.Exclude...), prev.Key())
		if req.Constraints.IsEmpty() {
			req.Constraints = prev.Constraints
		}
	}
	return Compose(candidates, req)
}

// leastWorn orders items by wear count then ID and keeps MaxPerSlot of them.
func leastWorn(items []model.Item, wears map[int64]int) []model.Item {
	sorted := append([]model.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, wj := wears[sorted[i].ID], wears[sorted[j].ID]
		if wi != wj {
			return wi < wj
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > MaxPerSlot {
		sorted = sorted[:MaxPerSlot]
	}
	return sorted
}

// baseSets lists the required-slot combinations. Category hints restrict
// the base kind only when the hinted kind can be built.
func baseSets(byCategory map[string][]model.Item, c matcher.Constraints) [][]model.Item {
	shirts := byCategory[model.CategoryShirt]
	pants := byCategory[model.CategoryPants]
	dresses := byCategory[model.CategoryDress]

	canSeparates := len(shirts) > 0 && len(pants) > 0
	canDress := len(dresses) > 0

	wantSeparates := c.HasHint(model.CategoryShirt) || c.HasHint(model.CategoryPants)
	wantDress := c.HasHint(model.CategoryDress)
	useSeparates, useDress := canSeparates, canDress
	if wantDress && !wantSeparates && canDress {
		useSeparates = false
	}
	if wantSeparates && !wantDress && canSeparates {
		useDress = false
	}

	var bases [][]model.Item
	if useSeparates {
		for _, s := range shirts {
			for _, p := range pants {
				bases = append(bases, []model.Item{s, p})
			}
		}
	}
	if useDress {
		for _, d := range dresses {
			bases = append(bases, []model.Item{d})
		}
	}
	return bases
}

// optionalCategories returns the optional slots in fill order.
func optionalCategories(c matcher.Constraints) []string {
	var cats []string
	if needsOuterwear(c) {
		cats = append(cats, model.CategoryJacket)
	}
	return append(cats, model.CategoryShoes, model.CategoryAccessory, model.CategoryJewelry)
}

func needsOuterwear(c matcher.Constraints) bool {
	return c.Season == model.SeasonWinter || c.Season == model.SeasonFall ||
		c.Formality == matcher.FormalityFormal || c.HasHint(model.CategoryJacket)
}

type combo struct {
	items []model.Item
	ids   []int64
	score int
	wears int
}

// enumerator walks every combination and remembers the best one.
type enumerator struct {
	wears    map[int64]int
	excluded map[string]bool
	scores   map[[2]int64]int
	best     *combo
}

func newEnumerator(wears map[int64]int, excluded map[string]bool) *enumerator {
	return &enumerator{wears: wears, excluded: excluded, scores: make(map[[2]int64]int)}
}

func (e *enumerator) walk(chosen []model.Item, rest []slot) {
	if len(rest) == 0 {
		e.consider(chosen)
		return
	}
	e.walk(chosen, rest[1:])
	for _, it := range rest[0].items {
		e.walk(append(chosen[:len(chosen):len(chosen)], it), rest[1:])
	}
}

func (e *enumerator) pairScore(a, b model.Item) int {
	key := [2]int64{a.ID, b.ID}
	if a.ID > b.ID {
		key = [2]int64{b.ID, a.ID}
	}
	if s, ok := e.scores[key]; ok {
		return s
	}
	s := palette.Score(a.Color, b.Color)
	e.scores[key] = s
	return s
}

func (e *enumerator) consider(items []model.Item) {
	c := combo{items: items}
	for i := range items {
		c.wears += e.wears[items[i].ID]
		for j := i + 1; j < len(items); j++ {
			c.score += e.pairScore(items[i], items[j])
		}
	}
	c.ids = make([]int64, len(items))
	for i, it := range items {
		c.ids[i] = it.ID
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })

	if e.best != nil && !better(c, *e.best) {
		return
	}
	if e.excluded[Key(c.ids)] {
		return
	}
	e.best = &c
}

func better(a, b combo) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if len(a.ids) != len(b.ids) {
		return len(a.ids) > len(b.ids)
	}
	if a.wears != b.wears {
		return a.wears < b.wears
	}
	for i := range a.ids {
		if a.ids[i] != b.ids[i] {
			return a.ids[i] < b.ids[i]
		}
	}
	return false
}
