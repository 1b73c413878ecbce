package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    category    TEXT NOT NULL CHECK (category IN ('Shirt', 'Pants', 'Shoes', 'Dress', 'Jacket', 'Accessory', 'Jewelry')),
    color       TEXT NOT NULL,
    brand       TEXT,
    size        TEXT,
    material    TEXT,
    season      TEXT,
    occasions   TEXT,
    notes       TEXT,
    photo       BLOB,
    photo_mime  TEXT,
    status      TEXT NOT NULL DEFAULT 'clean' CHECK (status IN ('clean', 'dirty')),
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at  DATETIME
);

CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_items_status   ON items(status);

CREATE TABLE IF NOT EXISTS outfits (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    rating      INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
    photo       BLOB,
    photo_mime  TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at  DATETIME
);

CREATE TABLE IF NOT EXISTS outfit_items (
    outfit_id INTEGER NOT NULL REFERENCES outfits(id) ON DELETE CASCADE,
    item_id   INTEGER NOT NULL REFERENCES items(id),
    PRIMARY KEY (outfit_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_outfit_items_item ON outfit_items(item_id);

CREATE TABLE IF NOT EXISTS tag_categories (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT
);

CREATE TABLE IF NOT EXISTS tags (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    category_id INTEGER NOT NULL REFERENCES tag_categories(id) ON DELETE CASCADE,
    UNIQUE (name, category_id)
);

CREATE TABLE IF NOT EXISTS outfit_tags (
    outfit_id INTEGER NOT NULL REFERENCES outfits(id) ON DELETE CASCADE,
    tag_id    INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (outfit_id, tag_id)
);

CREATE TABLE IF NOT EXISTS calendar_entries (
    id        INTEGER PRIMARY KEY,
    date      TEXT NOT NULL UNIQUE,
    outfit_id INTEGER NOT NULL REFERENCES outfits(id) ON DELETE CASCADE,
    notes     TEXT
);

CREATE TABLE IF NOT EXISTS wear_events (
    id         INTEGER PRIMARY KEY,
    outfit_id  INTEGER NOT NULL REFERENCES outfits(id),
    worn_on    TEXT NOT NULL,
    notes      TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wear_events_outfit ON wear_events(outfit_id);

CREATE TABLE IF NOT EXISTS wear_event_items (
    wear_event_id INTEGER NOT NULL REFERENCES wear_events(id),
    item_id       INTEGER NOT NULL REFERENCES items(id),
    PRIMARY KEY (wear_event_id, item_id)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// seed inserts the default tag categories and tags.
const seed = `
INSERT OR IGNORE INTO tag_categories (id, name, description) VALUES
    (1, 'Style', 'Fashion style categories (e.g., casual, formal, bohemian)'),
    (2, 'Theme', 'Outfit themes (e.g., work, date night, weekend)'),
    (3, 'Season', 'Seasons (summer, winter, fall, spring)'),
    (4, 'Color Scheme', 'Color combinations (e.g., monochrome, pastel)'),
    (5, 'Custom', 'User-defined custom tags');

INSERT OR IGNORE INTO tags (id, name, category_id) VALUES
    (1, 'Casual', 1), (2, 'Formal', 1), (3, 'Business', 1), (4, 'Bohemian', 1),
    (5, 'Minimalist', 1), (6, 'Vintage', 1), (7, 'Sporty', 1),
    (8, 'Work', 2), (9, 'Date Night', 2), (10, 'Weekend', 2), (11, 'Vacation', 2),
    (12, 'Special Occasion', 2),
    (13, 'Summer', 3), (14, 'Winter', 3), (15, 'Fall', 3), (16, 'Spring', 3),
    (17, 'All-Season', 3),
    (18, 'Monochrome', 4), (19, 'Pastel', 4), (20, 'Bright', 4),
    (21, 'Earth Tones', 4), (22, 'Neutral', 4);
`

// EnsureSchema creates all tables and indexes if they don't already exist
// and seeds the default tags.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.Exec(seed); err != nil {
		return fmt.Errorf("seeding default tags: %w", err)
	}
	return nil
}
