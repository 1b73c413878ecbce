package model

import (
	"testing"
	"time"
)

func TestOutfitDirtyIsDerivedFromItems(t *testing.T) {
	clean := Item{ID: 1, Status: StatusClean}
	dirty := Item{ID: 2, Status: StatusDirty}

	tests := []struct {
		items []Item
		want  bool
	}{
		{nil, false},
		{[]Item{clean}, false},
		{[]Item{clean, dirty}, true},
		{[]Item{dirty, dirty}, true},
	}

	for _, tt := range tests {
		if got := OutfitDirty(tt.items); got != tt.want {
			t.Errorf("OutfitDirty(%v) = %v, want %v", tt.items, got, tt.want)
		}
		wantStatus := StatusClean
		if tt.want {
			wantStatus = StatusDirty
		}
		if got := OutfitStatus(tt.items); got != wantStatus {
			t.Errorf("OutfitStatus(%v) = %q, want %q", tt.items, got, wantStatus)
		}
	}
}

func TestHasOccasion(t *testing.T) {
	item := Item{Occasions: []string{"Work", "Date Night"}}

	tests := []struct {
		label string
		want  bool
	}{
		{"work", true},
		{"date", true},
		{"Date Night", true},
		{"party", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := item.HasOccasion(tt.label); got != tt.want {
			t.Errorf("HasOccasion(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestParseOccasions(t *testing.T) {
	got := ParseOccasions(" work, ,Date Night ,")
	if len(got) != 2 || got[0] != "work" || got[1] != "Date Night" {
		t.Errorf("ParseOccasions = %q", got)
	}
	if JoinOccasions(got) != "work,Date Night" {
		t.Errorf("JoinOccasions = %q", JoinOccasions(got))
	}
}

func TestSeasonForDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-01-10", SeasonWinter},
		{"2026-03-19", SeasonWinter},
		{"2026-03-20", SeasonSpring},
		{"2026-06-21", SeasonSummer},
		{"2026-09-22", SeasonSummer},
		{"2026-09-23", SeasonFall},
		{"2026-12-20", SeasonFall},
		{"2026-12-21", SeasonWinter},
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date, time.UTC)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.date, err)
		}
		if got := SeasonForDate(d); got != tt.want {
			t.Errorf("SeasonForDate(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestNextSeason(t *testing.T) {
	d, _ := ParseDate("2026-10-14", time.UTC)
	name, start := NextSeason(d)
	if name != SeasonWinter || FormatDate(start) != "2026-12-21" {
		t.Errorf("NextSeason = %s %s, want Winter 2026-12-21", name, FormatDate(start))
	}

	d, _ = ParseDate("2026-12-25", time.UTC)
	name, start = NextSeason(d)
	if name != SeasonSpring || FormatDate(start) != "2027-03-20" {
		t.Errorf("NextSeason = %s %s, want Spring 2027-03-20", name, FormatDate(start))
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("14.10.2026", nil); err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}
