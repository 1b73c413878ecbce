package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// ItemFilter narrows ListItems. Zero values match everything.
type ItemFilter struct {
	Category string
	Status   string
	Season   string
	Color    string
	IDs      []int64
}

const itemColumns = `id, name, category, color, brand, size, material, season, occasions, notes,
	photo_mime, status, created_at, updated_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(s rowScanner) (model.Item, error) {
	var item model.Item
	var brand, size, material, season, occasions, notes, photoMime sql.NullString
	err := s.Scan(&item.ID, &item.Name, &item.Category, &item.Color, &brand, &size, &material,
		&season, &occasions, &notes, &photoMime, &item.Status,
		&item.CreatedAt, &item.UpdatedAt, &item.DeletedAt)
	if err != nil {
		return item, err
	}
	item.Brand = brand.String
	item.Size = size.String
	item.Material = material.String
	item.Season = season.String
	item.Occasions = model.ParseOccasions(occasions.String)
	item.Notes = notes.String
	item.PhotoMime = photoMime.String
	return item, nil
}

// CreateItem creates a new item. New items are clean unless item.Status says otherwise.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	if item.Status == "" {
		item.Status = model.StatusClean
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, category, color, brand, size, material, season, occasions, notes, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.Color, item.Brand, item.Size, item.Material,
		item.Season, model.JoinOccasions(item.Occasions), item.Notes, item.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// ListItems returns all non-deleted items matching the filter, ordered by name.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE deleted_at IS NULL`
	var args []any

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Season != "" {
		query += ` AND season = ?`
		args = append(args, f.Season)
	}
	if f.Color != "" {
		query += ` AND color = ? COLLATE NOCASE`
		args = append(args, f.Color)
	}
	if len(f.IDs) > 0 {
		query += ` AND id IN (` + placeholders(len(f.IDs)) + `)`
		for _, id := range f.IDs {
			args = append(args, id)
		}
	}

	query += ` ORDER BY name, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's descriptive fields. Laundry status is changed
// only through SetItemStatus.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, color = ?, brand = ?, size = ?, material = ?,
		        season = ?, occasions = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		item.Name, item.Category, item.Color, item.Brand, item.Size, item.Material,
		item.Season, model.JoinOccasions(item.Occasions), item.Notes, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem soft-deletes an item.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemStatus flips a single item's laundry status. It returns
// model.ErrNotFound when no active item has the given ID.
func SetItemStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if !model.ValidStatus(status) {
		return model.ErrInvalidStatus
	}
	result, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("setting item status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking item status update: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SetItemPhoto sets an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
