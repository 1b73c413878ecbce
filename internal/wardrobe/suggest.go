package wardrobe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erazemk/garderoba/internal/composer"
	"github.com/erazemk/garderoba/internal/matcher"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// Request proposes an outfit for a free-text request.
func (s *Service) Request(ctx context.Context, text string) (*composer.Proposal, error) {
	return s.compose(ctx, matcher.Parse(text), nil)
}

// GenerateNew proposes a different outfit than prev under the same
// constraints.
func (s *Service) GenerateNew(ctx context.Context, prev *composer.Proposal) (*composer.Proposal, error) {
	var c matcher.Constraints
	if prev != nil {
		c = prev.Constraints
	}
	return s.compose(ctx, c, prev)
}

func (s *Service) compose(ctx context.Context, c matcher.Constraints, prev *composer.Proposal) (*composer.Proposal, error) {
	items, err := store.ListItems(ctx, s.db, store.ItemFilter{})
	if err != nil {
		return nil, err
	}
	wears, err := store.CountWearsByItem(ctx, s.db)
	if err != nil {
		return nil, err
	}

	req := composer.Request{Constraints: c, WearCounts: wears}
	candidates := matcher.Narrow(items, c)

	var p *composer.Proposal
	if prev != nil {
		p, err = composer.GenerateNew(candidates, req, prev)
	} else {
		p, err = composer.Compose(candidates, req)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("outfit proposed", "name", p.Name, "items", len(p.Items), "score", p.Score)
	return p, nil
}

// SaveProposal stores a proposal as a new outfit and tags it with its
// style, occasion and season.
func (s *Service) SaveProposal(ctx context.Context, p *composer.Proposal) (*model.Outfit, error) {
	if p == nil || len(p.Items) == 0 {
		return nil, fmt.Errorf("nothing to save: %w", model.ErrInsufficientItems)
	}

	var tags []model.Tag
	for _, t := range []struct{ name, category string }{
		{p.Constraints.Style, model.TagCategoryStyle},
		{p.Constraints.Occasion, model.TagCategoryTheme},
		{p.Constraints.Season, model.TagCategorySeason},
	} {
		if t.name == "" {
			continue
		}
		tag, err := store.EnsureTag(ctx, s.db, t.name, t.category)
		if err != nil {
			return nil, fmt.Errorf("tagging outfit: %w", err)
		}
		tags = append(tags, *tag)
	}

	outfit, err := store.CreateOutfit(ctx, s.db, model.Outfit{
		Name:        p.Name,
		Description: fmt.Sprintf("Suggested outfit (color score %d).", p.Score),
		ItemIDs:     p.ItemIDs(),
		Tags:        tags,
	})
	if err != nil {
		return nil, fmt.Errorf("saving proposal: %w", err)
	}

	slog.Info("proposal saved", "outfit", outfit.Name, "id", outfit.ID, "items", len(outfit.ItemIDs))
	return outfit, nil
}
