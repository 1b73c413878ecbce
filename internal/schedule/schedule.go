// Package schedule assigns outfits to calendar days. Callers always pass
// "today" explicitly.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/erazemk/garderoba/internal/model"
)

// ErrInvalidRule is returned for recurrence rules that cannot be parsed.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// Recurrence bounds. A rule is expanded at most one year ahead of its start.
const (
	RecurrenceHorizonYears = 1
	MaxRecurrences         = 366
)

// Store is the calendar persistence the scheduler needs.
type Store interface {
	GetOutfit(ctx context.Context, id int64) (*model.Outfit, error)
	CreateCalendarEntry(ctx context.Context, date string, outfitID int64, notes string) (*model.CalendarEntry, error)
	GetCalendarEntry(ctx context.Context, id int64) (*model.CalendarEntry, error)
	GetCalendarByDate(ctx context.Context, date string) (*model.CalendarEntry, error)
	UpdateCalendarEntry(ctx context.Context, id, outfitID int64, notes string) error
	DeleteCalendarEntry(ctx context.Context, id int64) error
	ListCalendar(ctx context.Context, from, to string, limit int) ([]model.CalendarEntry, error)
}

// Scheduler manages calendar entries.
type Scheduler struct {
	store Store
}

// New returns a Scheduler backed by s.
func New(s Store) *Scheduler {
	return &Scheduler{store: s}
}

// Schedule puts an outfit on a day. It fails with model.ErrAlreadyScheduled
// when the day is taken; the existing entry is left as it was.
func (s *Scheduler) Schedule(ctx context.Context, day time.Time, outfitID int64, notes string) (*model.CalendarEntry, error) {
	if err := s.requireOutfit(ctx, outfitID); err != nil {
		return nil, err
	}

	date := model.FormatDate(day)
	entry, err := s.store.CreateCalendarEntry(ctx, date, outfitID, notes)
	if err != nil {
		return nil, fmt.Errorf("scheduling %s: %w", date, err)
	}

	slog.Info("outfit scheduled", "date", date, "outfit", entry.OutfitName)
	return entry, nil
}

// Unschedule removes a calendar entry.
func (s *Scheduler) Unschedule(ctx context.Context, entryID int64) error {
	if err := s.store.DeleteCalendarEntry(ctx, entryID); err != nil {
		return fmt.Errorf("unscheduling entry %d: %w", entryID, err)
	}
	slog.Info("outfit unscheduled", "entry", entryID)
	return nil
}

// Reschedule replaces the outfit and notes of an existing entry. This is the
// explicit overwrite for a taken day.
func (s *Scheduler) Reschedule(ctx context.Context, entryID, outfitID int64, notes string) (*model.CalendarEntry, error) {
	if err := s.requireOutfit(ctx, outfitID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCalendarEntry(ctx, entryID, outfitID, notes); err != nil {
		return nil, fmt.Errorf("rescheduling entry %d: %w", entryID, err)
	}
	return s.store.GetCalendarEntry(ctx, entryID)
}

// Today returns the entry for today, or nil when nothing is scheduled.
func (s *Scheduler) Today(ctx context.Context, today time.Time) (*model.CalendarEntry, error) {
	return s.store.GetCalendarByDate(ctx, model.FormatDate(today))
}

// Upcoming returns at most n entries dated today or later, earliest first.
func (s *Scheduler) Upcoming(ctx context.Context, today time.Time, n int) ([]model.CalendarEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.store.ListCalendar(ctx, model.FormatDate(today), "", n)
}

// Week returns the entries of the seven days starting at start.
func (s *Scheduler) Week(ctx context.Context, start time.Time) ([]model.CalendarEntry, error) {
	start = model.Day(start)
	return s.Range(ctx, start, start.AddDate(0, 0, 6))
}

// Range returns entries between from and to, both inclusive.
func (s *Scheduler) Range(ctx context.Context, from, to time.Time) ([]model.CalendarEntry, error) {
	return s.store.ListCalendar(ctx, model.FormatDate(from), model.FormatDate(to), 0)
}

// RecurringResult reports what ScheduleRecurring did.
type RecurringResult struct {
	Scheduled []model.CalendarEntry `json:"scheduled"`
	// Occupied lists dates that already had an entry and were skipped.
	Occupied []string `json:"occupied,omitempty"`
}

// ScheduleRecurring expands an RRULE (e.g. "FREQ=WEEKLY;BYDAY=MO") from
// start and schedules the outfit on every free date. Taken dates are
// skipped and reported, never overwritten.
func (s *Scheduler) ScheduleRecurring(ctx context.Context, start time.Time, rule string, outfitID int64, notes string) (*RecurringResult, error) {
	dates, err := Expand(start, rule)
	if err != nil {
		return nil, err
	}
	if err := s.requireOutfit(ctx, outfitID); err != nil {
		return nil, err
	}

	result := &RecurringResult{}
	for _, d := range dates {
		entry, err := s.store.CreateCalendarEntry(ctx, model.FormatDate(d), outfitID, notes)
		if errors.Is(err, model.ErrAlreadyScheduled) {
			result.Occupied = append(result.Occupied, model.FormatDate(d))
			continue
		}
		if err != nil {
			return result, fmt.Errorf("scheduling %s: %w", model.FormatDate(d), err)
		}
		result.Scheduled = append(result.Scheduled, *entry)
	}

	slog.Info("recurring outfit scheduled", "outfit", outfitID, "rule", rule,
		"scheduled", len(result.Scheduled), "occupied", len(result.Occupied))
	return result, nil
}

// Expand returns the days an RRULE produces within the recurrence horizon of
// start, capped at MaxRecurrences.
func Expand(start time.Time, rule string) ([]time.Time, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, ErrInvalidRule
	}
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	day := model.Day(start)
	r.DTStart(day)
	occurrences := r.Between(day, day.AddDate(RecurrenceHorizonYears, 0, 0), true)
	if len(occurrences) > MaxRecurrences {
		occurrences = occurrences[:MaxRecurrences]
	}

	days := make([]time.Time, len(occurrences))
	for i, t := range occurrences {
		days[i] = model.Day(t)
	}
	return days, nil
}

func (s *Scheduler) requireOutfit(ctx context.Context, outfitID int64) error {
	outfit, err := s.store.GetOutfit(ctx, outfitID)
	if err != nil {
		return fmt.Errorf("getting outfit: %w", err)
	}
	if outfit == nil {
		return fmt.Errorf("outfit %d: %w", outfitID, model.ErrNotFound)
	}
	return nil
}
