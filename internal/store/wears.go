package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// WearFilter narrows ListWearEvents. Zero values match everything.
type WearFilter struct {
	OutfitID int64
	ItemID   int64
	From     string
	To       string
}

// RecordWear logs a wear event for an outfit and marks every active member
// item dirty, all in one transaction. Either the event, its item snapshot
// and every status flip are applied, or none are.
func RecordWear(ctx context.Context, db *sql.DB, outfitID int64, wornOn, notes string) (*model.WearEvent, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Take the write lock before reading membership.
	if _, err := tx.ExecContext(ctx,
		`UPDATE outfits SET updated_at = updated_at WHERE id = ? AND deleted_at IS NULL`, outfitID,
	); err != nil {
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT oi.item_id FROM outfit_items oi
		 JOIN items i ON i.id = oi.item_id
		 JOIN outfits o ON o.id = oi.outfit_id
		 WHERE oi.outfit_id = ? AND i.deleted_at IS NULL AND o.deleted_at IS NULL
		 ORDER BY oi.item_id`, outfitID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outfit members: %w", err)
	}
	var itemIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning outfit member: %w", err)
		}
		itemIDs = append(itemIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing outfit members: %w", err)
	}
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("outfit %d has no active items", outfitID)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO wear_events (outfit_id, worn_on, notes) VALUES (?, ?, ?)`,
		outfitID, wornOn, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("recording wear event: %w", err)
	}
	eventID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting wear event id: %w", err)
	}

	for _, itemID := range itemIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO wear_event_items (wear_event_id, item_id) VALUES (?, ?)`,
			eventID, itemID,
		); err != nil {
			return nil, fmt.Errorf("recording worn item %d: %w", itemID, err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND deleted_at IS NULL`,
			model.StatusDirty, itemID,
		)
		if err != nil {
			return nil, fmt.Errorf("marking item %d dirty: %w", itemID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("marking item %d dirty: %w", itemID, err)
		}
		if n != 1 {
			return nil, fmt.Errorf("marking item %d dirty: %d rows updated", itemID, n)
		}
	}

	// Nothing may fail after commit.
	e := &model.WearEvent{ItemIDs: itemIDs}
	var storedNotes sql.NullString
	if err := tx.QueryRowContext(ctx,
		`SELECT w.id, w.outfit_id, w.worn_on, w.notes, w.created_at, o.name
		 FROM wear_events w JOIN outfits o ON o.id = w.outfit_id
		 WHERE w.id = ?`, eventID,
	).Scan(&e.ID, &e.OutfitID, &e.WornOn, &storedNotes, &e.CreatedAt, &e.OutfitName); err != nil {
		return nil, fmt.Errorf("reading wear event: %w", err)
	}
	e.Notes = storedNotes.String

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing wear event: %w", err)
	}
	return e, nil
}

// GetWearEvent returns a wear event by ID with its item snapshot.
func GetWearEvent(ctx context.Context, db *sql.DB, id int64) (*model.WearEvent, error) {
	e := &model.WearEvent{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT w.id, w.outfit_id, w.worn_on, w.notes, w.created_at, o.name
		 FROM wear_events w JOIN outfits o ON o.id = w.outfit_id
		 WHERE w.id = ?`, id,
	).Scan(&e.ID, &e.OutfitID, &e.WornOn, &notes, &e.CreatedAt, &e.OutfitName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting wear event: %w", err)
	}
	e.Notes = notes.String

	ids, err := wornItemIDs(ctx, db, e.ID)
	if err != nil {
		return nil, err
	}
	e.ItemIDs = ids
	return e, nil
}

func wornItemIDs(ctx context.Context, db *sql.DB, eventID int64) ([]int64, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT item_id FROM wear_event_items WHERE wear_event_id = ? ORDER BY item_id`, eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing worn items: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning worn item: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListWearEvents returns wear events matching the filter, most recent first.
// Item snapshots are not populated.
func ListWearEvents(ctx context.Context, db *sql.DB, f WearFilter) ([]model.WearEvent, error) {
	query := `SELECT w.id, w.outfit_id, w.worn_on, w.notes, w.created_at, o.name
	          FROM wear_events w JOIN outfits o ON o.id = w.outfit_id
	          WHERE 1=1`
	var args []any

	if f.OutfitID > 0 {
		query += ` AND w.outfit_id = ?`
		args = append(args, f.OutfitID)
	}
	if f.ItemID > 0 {
		query += ` AND w.id IN (SELECT wear_event_id FROM wear_event_items WHERE item_id = ?)`
		args = append(args, f.ItemID)
	}
	if f.From != "" {
		query += ` AND w.worn_on >= ?`
		args = append(args, f.From)
	}
	if f.To != "" {
		query += ` AND w.worn_on <= ?`
		args = append(args, f.To)
	}
	query += ` ORDER BY w.worn_on DESC, w.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing wear events: %w", err)
	}
	defer rows.Close()

	var events []model.WearEvent
	for rows.Next() {
		var e model.WearEvent
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.OutfitID, &e.WornOn, &notes, &e.CreatedAt, &e.OutfitName); err != nil {
			return nil, fmt.Errorf("scanning wear event: %w", err)
		}
		e.Notes = notes.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountWearsByOutfit returns the number of wear events per outfit ID.
func CountWearsByOutfit(ctx context.Context, db *sql.DB) (map[int64]int, error) {
	return countBy(ctx, db, `SELECT outfit_id, COUNT(*) FROM wear_events GROUP BY outfit_id`)
}

// CountWearsByItem returns how many wear events included each item.
func CountWearsByItem(ctx context.Context, db *sql.DB) (map[int64]int, error) {
	return countBy(ctx, db, `SELECT item_id, COUNT(*) FROM wear_event_items GROUP BY item_id`)
}

func countBy(ctx context.Context, db *sql.DB, query string) (map[int64]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting wears: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning wear count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
