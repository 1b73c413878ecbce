package wardrobe

import (
	"context"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/schedule"
	"github.com/erazemk/garderoba/internal/store"
)

// Schedule puts an outfit on date (YYYY-MM-DD, empty for today).
func (s *Service) Schedule(ctx context.Context, date string, outfitID int64, notes string) (*model.CalendarEntry, error) {
	day, err := s.ParseDay(date)
	if err != nil {
		return nil, err
	}
	return s.schedule.Schedule(ctx, day, outfitID, notes)
}

// ScheduleRecurring schedules an outfit on every free date an RRULE yields
// from start.
func (s *Service) ScheduleRecurring(ctx context.Context, start, rule string, outfitID int64, notes string) (*schedule.RecurringResult, error) {
	day, err := s.ParseDay(start)
	if err != nil {
		return nil, err
	}
	return s.schedule.ScheduleRecurring(ctx, day, rule, outfitID, notes)
}

// Unschedule removes a calendar entry.
func (s *Service) Unschedule(ctx context.Context, entryID int64) error {
	return s.schedule.Unschedule(ctx, entryID)
}

// Reschedule swaps the outfit of an existing calendar entry.
func (s *Service) Reschedule(ctx context.Context, entryID, outfitID int64, notes string) (*model.CalendarEntry, error) {
	return s.schedule.Reschedule(ctx, entryID, outfitID, notes)
}

// TodayEntry returns today's calendar entry, or nil.
func (s *Service) TodayEntry(ctx context.Context) (*model.CalendarEntry, error) {
	return s.schedule.Today(ctx, s.Today())
}

// Upcoming returns up to n entries from today on. n <= 0 uses the
// configured default.
func (s *Service) Upcoming(ctx context.Context, n int) ([]model.CalendarEntry, error) {
	if n <= 0 {
		n = s.opts.UpcomingDays
	}
	return s.schedule.Upcoming(ctx, s.Today(), n)
}

// Week returns the entries of the seven days from start (empty for today).
func (s *Service) Week(ctx context.Context, start string) ([]model.CalendarEntry, error) {
	day, err := s.ParseDay(start)
	if err != nil {
		return nil, err
	}
	return s.schedule.Week(ctx, day)
}

// CalendarICS exports every calendar entry as an iCalendar feed.
func (s *Service) CalendarICS(ctx context.Context) (string, error) {
	entries, err := store.ListCalendar(ctx, s.db, store.CalendarRange{})
	if err != nil {
		return "", err
	}
	return schedule.ExportICS(entries, s.opts.CalendarName, s.opts.Now()), nil
}
