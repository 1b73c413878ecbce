package model

import "time"

// Outfit is a named composition of items. Its cleanliness is never stored;
// see OutfitDirty.
type Outfit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Rating      int       `json:"rating,omitempty"`
	PhotoMime   string    `json:"photo_mime,omitempty"`
	ItemIDs     []int64   `json:"item_ids"`
	Tags        []Tag     `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	Items []Item `json:"items,omitempty"`
}

// OutfitDirty reports whether any of the given member items is dirty.
func OutfitDirty(items []Item) bool {
	for _, it := range items {
		if it.IsDirty() {
			return true
		}
	}
	return false
}

// OutfitStatus returns the derived laundry status of an outfit's members.
func OutfitStatus(items []Item) string {
	if OutfitDirty(items) {
		return StatusDirty
	}
	return StatusClean
}

// ValidRating reports whether r is an acceptable outfit rating.
// Zero means unrated.
func ValidRating(r int) bool {
	return r >= 0 && r <= 5
}
