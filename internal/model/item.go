package model

import (
	"strings"
	"time"
)

// Item represents a single clothing or accessory record.
type Item struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Color     string     `json:"color"`
	Brand     string     `json:"brand,omitempty"`
	Size      string     `json:"size,omitempty"`
	Material  string     `json:"material,omitempty"`
	Season    string     `json:"season,omitempty"`
	Occasions []string   `json:"occasions,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	PhotoMime string     `json:"photo_mime,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Item categories.
const (
	CategoryShirt     = "Shirt"
	CategoryPants     = "Pants"
	CategoryShoes     = "Shoes"
	CategoryDress     = "Dress"
	CategoryJacket    = "Jacket"
	CategoryAccessory = "Accessory"
	CategoryJewelry   = "Jewelry"
)

// Categories lists every item category in display order.
var Categories = []string{
	CategoryShirt,
	CategoryPants,
	CategoryDress,
	CategoryJacket,
	CategoryShoes,
	CategoryAccessory,
	CategoryJewelry,
}

// Laundry statuses.
const (
	StatusClean = "clean"
	StatusDirty = "dirty"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a laundry status.
func ValidStatus(s string) bool {
	return s == StatusClean || s == StatusDirty
}

// IsDirty reports whether the item is waiting to be laundered.
func (i Item) IsDirty() bool {
	return i.Status == StatusDirty
}

// HasOccasion reports whether any of the item's occasion labels contains
// label, ignoring case.
func (i Item) HasOccasion(label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return false
	}
	for _, o := range i.Occasions {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "" {
			continue
		}
		if strings.Contains(o, label) || strings.Contains(label, o) {
			return true
		}
	}
	return false
}

// ParseOccasions splits a comma separated occasion list.
func ParseOccasions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinOccasions is the inverse of ParseOccasions.
func JoinOccasions(occasions []string) string {
	return strings.Join(occasions, ",")
}
