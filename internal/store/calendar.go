package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// CalendarRange bounds ListCalendar. Dates are YYYY-MM-DD and inclusive;
// empty bounds are open. Limit <= 0 means no limit.
type CalendarRange struct {
	From  string
	To    string
	Limit int
}

const calendarColumns = `c.id, c.date, c.outfit_id, c.notes, o.name`

func scanCalendarEntry(s rowScanner) (model.CalendarEntry, error) {
	var e model.CalendarEntry
	var notes sql.NullString
	err := s.Scan(&e.ID, &e.Date, &e.OutfitID, &notes, &e.OutfitName)
	e.Notes = notes.String
	return e, err
}

// CreateCalendarEntry schedules an outfit on a date. It returns
// model.ErrAlreadyScheduled when the date already holds an entry and leaves
// that entry untouched.
func CreateCalendarEntry(ctx context.Context, db *sql.DB, date string, outfitID int64, notes string) (*model.CalendarEntry, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM calendar_entries WHERE date = ?`, date,
	).Scan(&taken); err != nil {
		return nil, fmt.Errorf("checking calendar date: %w", err)
	}
	if taken > 0 {
		return nil, model.ErrAlreadyScheduled
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO calendar_entries (date, outfit_id, notes) VALUES (?, ?, ?)`,
		date, outfitID, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating calendar entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing calendar entry: %w", err)
	}

	id, _ := result.LastInsertId()
	return GetCalendarEntry(ctx, db, id)
}

// GetCalendarEntry returns a calendar entry by ID.
func GetCalendarEntry(ctx context.Context, db *sql.DB, id int64) (*model.CalendarEntry, error) {
	e, err := scanCalendarEntry(db.QueryRowContext(ctx,
		`SELECT `+calendarColumns+`
		 FROM calendar_entries c JOIN outfits o ON o.id = c.outfit_id
		 WHERE c.id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting calendar entry: %w", err)
	}
	return &e, nil
}

// GetCalendarByDate returns the entry scheduled on date.
func GetCalendarByDate(ctx context.Context, db *sql.DB, date string) (*model.CalendarEntry, error) {
	e, err := scanCalendarEntry(db.QueryRowContext(ctx,
		`SELECT `+calendarColumns+`
		 FROM calendar_entries c JOIN outfits o ON o.id = c.outfit_id
		 WHERE c.date = ?`, date,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting calendar entry: %w", err)
	}
	return &e, nil
}

// ListCalendar returns entries within the range, ordered by date.
func ListCalendar(ctx context.Context, db *sql.DB, r CalendarRange) ([]model.CalendarEntry, error) {
	query := `SELECT ` + calendarColumns + `
	          FROM calendar_entries c JOIN outfits o ON o.id = c.outfit_id
	          WHERE 1=1`
	var args []any

	if r.From != "" {
		query += ` AND c.date >= ?`
		args = append(args, r.From)
	}
	if r.To != "" {
		query += ` AND c.date <= ?`
		args = append(args, r.To)
	}
	query += ` ORDER BY c.date`
	if r.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, r.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing calendar: %w", err)
	}
	defer rows.Close()

	var entries []model.CalendarEntry
	for rows.Next() {
		e, err := scanCalendarEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning calendar entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateCalendarEntry replaces the outfit and notes of an existing entry.
func UpdateCalendarEntry(ctx context.Context, db *sql.DB, id, outfitID int64, notes string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE calendar_entries SET outfit_id = ?, notes = ? WHERE id = ?`,
		outfitID, notes, id,
	)
	if err != nil {
		return fmt.Errorf("updating calendar entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteCalendarEntry removes an entry.
func DeleteCalendarEntry(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar entry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
