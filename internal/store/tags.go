package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// ListTagCategories returns all tag categories.
func ListTagCategories(ctx context.Context, db *sql.DB) ([]model.TagCategory, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description FROM tag_categories ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tag categories: %w", err)
	}
	defer rows.Close()

	var categories []model.TagCategory
	for rows.Next() {
		var c model.TagCategory
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description); err != nil {
			return nil, fmt.Errorf("scanning tag category: %w", err)
		}
		c.Description = description.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListTags returns tags, optionally limited to one category.
func ListTags(ctx context.Context, db *sql.DB, categoryID int64) ([]model.Tag, error) {
	query := `SELECT t.id, t.name, t.category_id, c.name
	          FROM tags t JOIN tag_categories c ON c.id = t.category_id`
	var args []any
	if categoryID > 0 {
		query += ` WHERE t.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY c.id, t.name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]model.Tag, error) {
	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CategoryID, &t.CategoryName); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag creates a tag in the given category.
func CreateTag(ctx context.Context, db *sql.DB, name string, categoryID int64) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO tags (name, category_id) VALUES (?, ?)`, name, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting tag id: %w", err)
	}
	return GetTag(ctx, db, id)
}

// GetTag returns a tag by ID.
func GetTag(ctx context.Context, db *sql.DB, id int64) (*model.Tag, error) {
	t := &model.Tag{}
	err := db.QueryRowContext(ctx,
		`SELECT t.id, t.name, t.category_id, c.name
		 FROM tags t JOIN tag_categories c ON c.id = t.category_id
		 WHERE t.id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.CategoryID, &t.CategoryName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}
	return t, nil
}

// FindTagByName looks a tag up by name within a category, ignoring case.
func FindTagByName(ctx context.Context, db *sql.DB, name, category string) (*model.Tag, error) {
	t := &model.Tag{}
	err := db.QueryRowContext(ctx,
		`SELECT t.id, t.name, t.category_id, c.name
		 FROM tags t JOIN tag_categories c ON c.id = t.category_id
		 WHERE t.name = ? COLLATE NOCASE AND c.name = ? COLLATE NOCASE`, name, category,
	).Scan(&t.ID, &t.Name, &t.CategoryID, &t.CategoryName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding tag: %w", err)
	}
	return t, nil
}

// EnsureTag returns the named tag in category, creating it when missing.
func EnsureTag(ctx context.Context, db *sql.DB, name, category string) (*model.Tag, error) {
	tag, err := FindTagByName(ctx, db, name, category)
	if err != nil || tag != nil {
		return tag, err
	}

	var categoryID int64
	err = db.QueryRowContext(ctx,
		`SELECT id FROM tag_categories WHERE name = ? COLLATE NOCASE`, category,
	).Scan(&categoryID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag category %q: %w", category, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding tag category: %w", err)
	}
	return CreateTag(ctx, db, name, categoryID)
}
