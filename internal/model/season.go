package model

import "time"

// Seasons.
const (
	SeasonSpring    = "Spring"
	SeasonSummer    = "Summer"
	SeasonFall      = "Fall"
	SeasonWinter    = "Winter"
	SeasonAllSeason = "All-Season"
)

// Seasons lists the item season tags.
var Seasons = []string{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAllSeason}

// ValidSeason reports whether s is a known season tag. Empty is allowed.
func ValidSeason(s string) bool {
	if s == "" {
		return true
	}
	for _, known := range Seasons {
		if s == known {
			return true
		}
	}
	return false
}

type seasonStart struct {
	name  string
	month time.Month
	day   int
}

// seasonStarts are ordered by date within a year.
var seasonStarts = []seasonStart{
	{SeasonSpring, time.March, 20},
	{SeasonSummer, time.June, 21},
	{SeasonFall, time.September, 23},
	{SeasonWinter, time.December, 21},
}

// SeasonForDate returns the (northern hemisphere) season t falls in.
func SeasonForDate(t time.Time) string {
	current := SeasonWinter
	for _, s := range seasonStarts {
		start := time.Date(t.Year(), s.month, s.day, 0, 0, 0, 0, t.Location())
		if !Day(t).Before(start) {
			current = s.name
		}
	}
	return current
}

// NextSeason returns the season following t's season and the day it starts.
func NextSeason(t time.Time) (string, time.Time) {
	day := Day(t)
	for _, s := range seasonStarts {
		start := time.Date(t.Year(), s.month, s.day, 0, 0, 0, 0, t.Location())
		if start.After(day) {
			return s.name, start
		}
	}
	first := seasonStarts[0]
	return first.name, time.Date(t.Year()+1, first.month, first.day, 0, 0, 0, 0, t.Location())
}
