package composer

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/erazemk/garderoba/internal/matcher"
	"github.com/erazemk/garderoba/internal/model"
)

func item(id int64, category, color string) model.Item {
	return model.Item{ID: id, Name: color + " " + category, Category: category, Color: color, Status: model.StatusClean}
}

func dirty(it model.Item) model.Item {
	it.Status = model.StatusDirty
	return it
}

func categories(p *Proposal) map[string]int {
	out := make(map[string]int)
	for _, it := range p.Items {
		out[it.Category]++
	}
	return out
}

func TestCasualScenario(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "Blue"),
		item(2, model.CategoryPants, "Black"),
		dirty(item(3, model.CategoryDress, "Red")),
	}
	c := matcher.Parse("casual")

	p, err := Compose(matcher.Narrow(pool, c), Request{Constraints: c})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if p.Key() != "1,2" {
		t.Errorf("expected Shirt+Pants, got %s", p.Key())
	}
	if !strings.Contains(p.Name, "Casual") {
		t.Errorf("expected name to mention Casual, got %q", p.Name)
	}
	if p.ID == "" {
		t.Error("expected a proposal ID")
	}
}

func TestComposeNeverUsesDirtyItems(t *testing.T) {
	// Dirty items passed straight in, without narrowing, are still skipped.
	pool := []model.Item{
		dirty(item(1, model.CategoryShirt, "White")),
		item(2, model.CategoryShirt, "Blue"),
		item(3, model.CategoryPants, "Khaki"),
		dirty(item(4, model.CategoryShoes, "Brown")),
	}

	p, err := Compose(pool, Request{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	for _, it := range p.Items {
		if it.IsDirty() {
			t.Errorf("proposal contains dirty item %d", it.ID)
		}
	}
	if p.Key() != "2,3" {
		t.Errorf("expected 2,3, got %s", p.Key())
	}
}

func TestDressExcludesSeparates(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "Red"),
		item(2, model.CategoryPants, "Pink"),
		item(3, model.CategoryDress, "Navy"),
	}

	p, err := Compose(pool, Request{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	cats := categories(p)
	if cats[model.CategoryDress] > 0 && (cats[model.CategoryShirt] > 0 || cats[model.CategoryPants] > 0) {
		t.Fatalf("proposal mixes a dress with separates: %s", p.Key())
	}
	// Red shirt and pink pants clash, so the dress wins.
	if p.Key() != "3" {
		t.Errorf("expected the dress, got %s", p.Key())
	}
}

func TestInsufficientItems(t *testing.T) {
	tests := map[string][]model.Item{
		"empty":       nil,
		"shirt only":  {item(1, model.CategoryShirt, "Blue")},
		"pants only":  {item(1, model.CategoryPants, "Blue"), item(2, model.CategoryShoes, "Black")},
		"dirty dress": {dirty(item(1, model.CategoryDress, "Red"))},
	}
	for name, pool := range tests {
		_, err := Compose(pool, Request{})
		if !errors.Is(err, model.ErrInsufficientItems) {
			t.Errorf("%s: expected ErrInsufficientItems, got %v", name, err)
		}
	}
}

func TestOptionalSlots(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryPants, "Navy"),
		item(3, model.CategoryShoes, "Brown"),
		item(4, model.CategoryAccessory, "Black"),
		item(5, model.CategoryJewelry, "Gold"),
		item(6, model.CategoryJacket, "Gray"),
	}

	p, _ := Compose(pool, Request{})
	cats := categories(p)
	if cats[model.CategoryShoes] != 1 || cats[model.CategoryAccessory] != 1 || cats[model.CategoryJewelry] != 1 {
		t.Errorf("expected optional slots filled when they add to the score, got %v", cats)
	}
	if cats[model.CategoryJacket] != 0 {
		t.Error("expected no jacket without a reason for outerwear")
	}

	for _, text := range []string{"winter", "formal", "with a blazer"} {
		c := matcher.Parse(text)
		p, _ := Compose(pool, Request{Constraints: c})
		if categories(p)[model.CategoryJacket] != 1 {
			t.Errorf("%q: expected a jacket", text)
		}
	}
}

func TestOptionalItemSkippedWhenItClashes(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "Red"),
		item(2, model.CategoryPants, "Green"),
		item(3, model.CategoryJewelry, "Purple"),
	}
	p, err := Compose(pool, Request{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Purple clashes with both red and green.
	if p.Key() != "1,2" || p.Score != 3 {
		t.Errorf("expected 1,2 scoring 3, got %s scoring %d", p.Key(), p.Score)
	}
}

func TestNeutralOptionalItemKeptOnTie(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "Yellow"),
		item(2, model.CategoryPants, "Blue"),
		item(3, model.CategoryAccessory, "Teal"),
	}
	// Teal scores 0 against both, so adding it leaves the score unchanged.
	p, _ := Compose(pool, Request{})
	if p.Key() != "1,2,3" || p.Score != 0 {
		t.Errorf("expected the fuller 1,2,3 at equal score, got %s scoring %d", p.Key(), p.Score)
	}
}

func TestHintsRestrictBaseKind(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryPants, "Black"),
		item(3, model.CategoryDress, "Green"),
	}

	p, _ := Compose(pool, Request{Constraints: matcher.Parse("a dress please")})
	if p.Key() != "3" {
		t.Errorf("expected the dress, got %s", p.Key())
	}

	p, _ = Compose(pool, Request{Constraints: matcher.Parse("jeans day")})
	if p.Key() != "1,2" {
		t.Errorf("expected separates, got %s", p.Key())
	}

	// An unsatisfiable hint falls back to whatever can be built.
	p, err := Compose(pool[2:], Request{Constraints: matcher.Parse("jeans day")})
	if err != nil || p.Key() != "3" {
		t.Errorf("expected dress fallback, got %v %v", p, err)
	}
}

func TestColorScoreDecides(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "Red"),
		item(2, model.CategoryShirt, "Blue"),
		item(3, model.CategoryPants, "Orange"),
	}
	p, _ := Compose(pool, Request{})
	// Blue/orange is complementary, red/orange clashes.
	if p.Key() != "2,3" || p.Score != 3 {
		t.Errorf("expected 2,3 scoring 3, got %s scoring %d", p.Key(), p.Score)
	}
}

func TestRotationPrefersLeastWorn(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryShirt, "White"),
		item(3, model.CategoryPants, "Black"),
	}

	p, _ := Compose(pool, Request{WearCounts: map[int64]int{1: 5}})
	if p.Key() != "2,3" {
		t.Errorf("expected the less worn shirt, got %s", p.Key())
	}

	// Equal wear counts fall back to the lowest IDs.
	p, _ = Compose(pool, Request{})
	if p.Key() != "1,3" {
		t.Errorf("expected lowest IDs on a full tie, got %s", p.Key())
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryShirt, "Blue"),
		item(3, model.CategoryPants, "Gray"),
		item(4, model.CategoryPants, "Beige"),
		item(5, model.CategoryShoes, "Brown"),
		item(6, model.CategoryShoes, "White"),
		item(7, model.CategoryDress, "Yellow"),
	}
	first, _ := Compose(pool, Request{})
	for range 10 {
		p, _ := Compose(pool, Request{})
		if p.Key() != first.Key() {
			t.Fatalf("Compose not deterministic: %s vs %s", p.Key(), first.Key())
		}
	}
}

func TestSlotCap(t *testing.T) {
	var pool []model.Item
	for i := int64(1); i <= 20; i++ {
		pool = append(pool, item(i, model.CategoryShirt, "White"))
	}
	pool = append(pool, item(100, model.CategoryPants, "Black"))

	wears := make(map[int64]int)
	for i := int64(1); i <= 12; i++ {
		wears[i] = 3
	}

	p, _ := Compose(pool, Request{WearCounts: wears})
	if p.Key() != "13,100" {
		t.Errorf("expected least-worn shirt 13, got %s", p.Key())
	}
}

func TestGenerateNewDiffers(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryShirt, "Blue"),
		item(3, model.CategoryPants, "Black"),
	}

	first, err := Compose(pool, Request{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	second, err := GenerateNew(pool, Request{}, first)
	if err != nil {
		t.Fatalf("GenerateNew: %v", err)
	}
	if second.Key() == first.Key() {
		t.Errorf("GenerateNew repeated %s", first.Key())
	}
	if second.ID == first.ID {
		t.Error("expected a fresh proposal ID")
	}
}

func TestGenerateNewWithSingleCombination(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryPants, "Black"),
	}
	first, _ := Compose(pool, Request{})

	_, err := GenerateNew(pool, Request{}, first)
	if !errors.Is(err, model.ErrInsufficientItems) {
		t.Errorf("expected ErrInsufficientItems, got %v", err)
	}
}

func TestGenerateNewDropsOptionalItem(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryPants, "Black"),
		item(3, model.CategoryShoes, "Brown"),
	}
	first, err := Compose(pool, Request{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if first.Key() != "1,2,3" {
		t.Fatalf("expected shoes on the first proposal, got %s", first.Key())
	}

	second, err := GenerateNew(pool, Request{}, first)
	if err != nil {
		t.Fatalf("GenerateNew: %v", err)
	}
	if second.Key() != "1,2" {
		t.Errorf("expected the base without shoes, got %s", second.Key())
	}
}

func TestGenerateNewKeepsConstraints(t *testing.T) {
	pool := []model.Item{
		item(1, model.CategoryShirt, "White"),
		item(2, model.CategoryShirt, "Blue"),
		item(3, model.CategoryPants, "Black"),
	}
	first, _ := Compose(pool, Request{Constraints: matcher.Parse("summer")})
	second, _ := GenerateNew(pool, Request{}, first)
	if second.Constraints.Season != model.SeasonSummer || !strings.Contains(second.Name, "Summer") {
		t.Errorf("expected constraints carried over, got %+v", second.Constraints)
	}
}

func TestKeyIgnoresOrder(t *testing.T) {
	if Key([]int64{3, 1, 2}) != "1,2,3" {
		t.Errorf("Key = %q", Key([]int64{3, 1, 2}))
	}
	p := Proposal{Items: []model.Item{{ID: 9}, {ID: 4}}}
	if p.Key() != "4,9" {
		t.Errorf("Proposal.Key = %q", p.Key())
	}
}

func TestComposeInvariantsOnRandomPools(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	colors := []string{"Red", "Blue", "Black", "White", "Pink", "Orange", "Green", "Navy", "Purple"}

	for round := 0; round < 200; round++ {
		var pool []model.Item
		n := int64(2 + rng.Intn(15))
		for id := int64(1); id <= n; id++ {
			it := item(id, model.Categories[rng.Intn(len(model.Categories))], colors[rng.Intn(len(colors))])
			if rng.Intn(3) == 0 {
				it = dirty(it)
			}
			pool = append(pool, it)
		}

		p, err := Compose(pool, Request{})
		if errors.Is(err, model.ErrInsufficientItems) {
			continue
		}
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}

		cats := categories(p)
		if cats[model.CategoryDress] > 0 && (cats[model.CategoryShirt] > 0 || cats[model.CategoryPants] > 0) {
			t.Fatalf("round %d: dress mixed with separates: %s", round, p.Key())
		}
		if cats[model.CategoryDress] == 0 && (cats[model.CategoryShirt] != 1 || cats[model.CategoryPants] != 1) {
			t.Fatalf("round %d: incomplete base: %s", round, p.Key())
		}
		for _, it := range p.Items {
			if it.IsDirty() {
				t.Fatalf("round %d: dirty item %d proposed", round, it.ID)
			}
		}

		next, err := GenerateNew(pool, Request{}, p)
		if err == nil && next.Key() == p.Key() {
			t.Fatalf("round %d: GenerateNew repeated %s", round, p.Key())
		}
	}
}
