package model

import "time"

// DateLayout is the storage and wire format for calendar days.
const DateLayout = "2006-01-02"

// CalendarEntry schedules one outfit on one day. A day holds at most one entry.
type CalendarEntry struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	OutfitID int64  `json:"outfit_id"`
	Notes    string `json:"notes,omitempty"`

	// Joined fields (not always populated).
	OutfitName string `json:"outfit_name,omitempty"`
}

// WearEvent records that an outfit was worn on a day. Wear events are
// append-only.
type WearEvent struct {
	ID        int64     `json:"id"`
	OutfitID  int64     `json:"outfit_id"`
	WornOn    string    `json:"worn_on"`
	Notes     string    `json:"notes,omitempty"`
	ItemIDs   []int64   `json:"item_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields (not always populated).
	OutfitName string `json:"outfit_name,omitempty"`
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate formats t as a calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar day in loc. A nil loc means UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
