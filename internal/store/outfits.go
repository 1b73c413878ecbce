package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// OutfitFilter narrows ListOutfits. Zero values match everything.
type OutfitFilter struct {
	ItemID int64
	TagID  int64
}

// CreateOutfit stores an outfit together with its item and tag links in a
// single transaction.
func CreateOutfit(ctx context.Context, db *sql.DB, o model.Outfit) (*model.Outfit, error) {
	if len(o.ItemIDs) == 0 {
		return nil, fmt.Errorf("outfit needs at least one item: %w", model.ErrInsufficientItems)
	}
	if !model.ValidRating(o.Rating) {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO outfits (name, description, rating) VALUES (?, ?, ?)`,
		o.Name, o.Description, o.Rating,
	)
	if err != nil {
		return nil, fmt.Errorf("creating outfit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting outfit id: %w", err)
	}

	if err := linkOutfit(ctx, tx, id, o.ItemIDs, o.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing outfit: %w", err)
	}

	return GetOutfit(ctx, db, id)
}

// UpdateOutfit replaces an outfit's fields, items and tags.
func UpdateOutfit(ctx context.Context, db *sql.DB, o model.Outfit) error {
	if len(o.ItemIDs) == 0 {
		return fmt.Errorf("outfit needs at least one item: %w", model.ErrInsufficientItems)
	}
	if !model.ValidRating(o.Rating) {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE outfits SET name = ?, description = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		o.Name, o.Description, o.Rating, o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating outfit: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM outfit_items WHERE outfit_id = ?`, o.ID); err != nil {
		return fmt.Errorf("clearing outfit items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM outfit_tags WHERE outfit_id = ?`, o.ID); err != nil {
		return fmt.Errorf("clearing outfit tags: %w", err)
	}
	if err := linkOutfit(ctx, tx, o.ID, o.ItemIDs, o.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing outfit: %w", err)
	}
	return nil
}

func linkOutfit(ctx context.Context, tx *sql.Tx, outfitID int64, itemIDs []int64, tags []model.Tag) error {
	for _, itemID := range itemIDs {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM items WHERE id = ? AND deleted_at IS NULL`, itemID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking item %d: %w", itemID, err)
		}
		if exists == 0 {
			return fmt.Errorf("item %d: %w", itemID, model.ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO outfit_items (outfit_id, item_id) VALUES (?, ?)`,
			outfitID, itemID,
		); err != nil {
			return fmt.Errorf("linking item %d: %w", itemID, err)
		}
	}

	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO outfit_tags (outfit_id, tag_id) VALUES (?, ?)`,
			outfitID, tag.ID,
		); err != nil {
			return fmt.Errorf("linking tag %d: %w", tag.ID, err)
		}
	}
	return nil
}

// GetOutfit returns an outfit by ID with its items and tags populated.
func GetOutfit(ctx context.Context, db *sql.DB, id int64) (*model.Outfit, error) {
	o := &model.Outfit{}
	var description, photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, rating, photo_mime, created_at, updated_at
		 FROM outfits WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&o.ID, &o.Name, &description, &o.Rating, &photoMime, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting outfit: %w", err)
	}
	o.Description = description.String
	o.PhotoMime = photoMime.String

	outfits := []model.Outfit{*o}
	if err := loadOutfitMembers(ctx, db, outfits); err != nil {
		return nil, err
	}
	return &outfits[0], nil
}

// ListOutfits returns all non-deleted outfits matching the filter, newest first.
func ListOutfits(ctx context.Context, db *sql.DB, f OutfitFilter) ([]model.Outfit, error) {
	query := `SELECT id, name, description, rating, photo_mime, created_at, updated_at
	          FROM outfits WHERE deleted_at IS NULL`
	var args []any

	if f.ItemID > 0 {
		query += ` AND id IN (SELECT outfit_id FROM outfit_items WHERE item_id = ?)`
		args = append(args, f.ItemID)
	}
	if f.TagID > 0 {
		query += ` AND id IN (SELECT outfit_id FROM outfit_tags WHERE tag_id = ?)`
		args = append(args, f.TagID)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing outfits: %w", err)
	}

	var outfits []model.Outfit
	for rows.Next() {
		var o model.Outfit
		var description, photoMime sql.NullString
		if err := rows.Scan(&o.ID, &o.Name, &description, &o.Rating, &photoMime,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning outfit: %w", err)
		}
		o.Description = description.String
		o.PhotoMime = photoMime.String
		outfits = append(outfits, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listing outfits: %w", err)
	}
	rows.Close()

	if err := loadOutfitMembers(ctx, db, outfits); err != nil {
		return nil, err
	}
	return outfits, nil
}

// loadOutfitMembers fills Items, ItemIDs and Tags. It must run after the
// outfit rows are closed; the pool holds a single connection.
func loadOutfitMembers(ctx context.Context, db *sql.DB, outfits []model.Outfit) error {
	for i := range outfits {
		items, err := outfitItems(ctx, db, outfits[i].ID)
		if err != nil {
			return err
		}
		outfits[i].Items = items
		outfits[i].ItemIDs = make([]int64, len(items))
		for j, it := range items {
			outfits[i].ItemIDs[j] = it.ID
		}

		tags, err := outfitTags(ctx, db, outfits[i].ID)
		if err != nil {
			return err
		}
		outfits[i].Tags = tags
	}
	return nil
}

func outfitItems(ctx context.Context, db *sql.DB, outfitID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE id IN (SELECT item_id FROM outfit_items WHERE outfit_id = ?)
		 ORDER BY id`, outfitID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outfit items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning outfit item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func outfitTags(ctx context.Context, db *sql.DB, outfitID int64) ([]model.Tag, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT t.id, t.name, t.category_id, c.name
		 FROM outfit_tags ot
		 JOIN tags t ON t.id = ot.tag_id
		 JOIN tag_categories c ON c.id = t.category_id
		 WHERE ot.outfit_id = ?
		 ORDER BY c.id, t.name`, outfitID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outfit tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// DeleteOutfit soft-deletes an outfit and frees the calendar days it was
// scheduled on. Wear history is kept.
func DeleteOutfit(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE outfits SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("deleting outfit: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM calendar_entries WHERE outfit_id = ?`, id); err != nil {
		return fmt.Errorf("unscheduling outfit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing outfit delete: %w", err)
	}
	return nil
}

// SetOutfitPhoto sets an outfit's photo data.
func SetOutfitPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE outfits SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting outfit photo: %w", err)
	}
	return nil
}

// GetOutfitPhoto returns an outfit's photo data and MIME type.
func GetOutfitPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM outfits WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting outfit photo: %w", err)
	}
	return photo, mime.String, nil
}
