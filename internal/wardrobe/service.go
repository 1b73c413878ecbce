// Package wardrobe is the entry point used by the API, the MCP tools and
// the chat TUI. It wires the engine packages over one database.
package wardrobe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/garderoba/internal/laundry"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/schedule"
	"github.com/erazemk/garderoba/internal/store"
)

// DefaultUpcomingDays is used when Options.UpcomingDays is unset.
const DefaultUpcomingDays = 7

// Options configures a Service.
type Options struct {
	// Location is used to derive "today". Defaults to time.Local.
	Location *time.Location
	// Now is the clock. Defaults to time.Now.
	Now          func() time.Time
	UpcomingDays int
	CalendarName string
	// ColorSeason is the personal color season used until one is saved.
	ColorSeason string
}

// Service exposes every wardrobe operation.
type Service struct {
	db       *sql.DB
	laundry  *laundry.Machine
	schedule *schedule.Scheduler
	opts     Options
}

// New returns a Service over db.
func New(db *sql.DB, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UpcomingDays <= 0 {
		opts.UpcomingDays = DefaultUpcomingDays
	}
	if opts.CalendarName == "" {
		opts.CalendarName = "Outfits"
	}

	w := store.NewWardrobe(db)
	return &Service{
		db:       db,
		laundry:  laundry.New(w),
		schedule: schedule.New(w),
		opts:     opts,
	}
}

// DB returns the underlying database.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Today returns the current day in the configured location. It is derived
// from the clock on every call.
func (s *Service) Today() time.Time {
	return model.Day(s.opts.Now().In(s.opts.Location))
}

// ParseDay parses a YYYY-MM-DD date in the configured location. An empty
// string means today.
func (s *Service) ParseDay(date string) (time.Time, error) {
	if date == "" {
		return s.Today(), nil
	}
	return model.ParseDate(date, s.opts.Location)
}

// Items lists active items.
func (s *Service) Items(ctx context.Context, f store.ItemFilter) ([]model.Item, error) {
	return store.ListItems(ctx, s.db, f)
}

// Item returns one active item.
func (s *Service) Item(ctx context.Context, id int64) (*model.Item, error) {
	item, err := store.GetItem(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.DeletedAt != nil {
		return nil, fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	return item, nil
}

// Outfit returns one outfit with its items.
func (s *Service) Outfit(ctx context.Context, id int64) (*model.Outfit, error) {
	outfit, err := store.GetOutfit(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if outfit == nil {
		return nil, fmt.Errorf("outfit %d: %w", id, model.ErrNotFound)
	}
	return outfit, nil
}

// Outfits lists outfits.
func (s *Service) Outfits(ctx context.Context, f store.OutfitFilter) ([]model.Outfit, error) {
	return store.ListOutfits(ctx, s.db, f)
}
