package schedule

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/erazemk/garderoba/internal/model"
)

// ExportICS renders entries as an iCalendar feed with one all-day event per
// scheduled day. Entries with unparsable dates are skipped.
func ExportICS(entries []model.CalendarEntry, name string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//garderoba//outfit calendar//EN")
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, e := range entries {
		day, err := model.ParseDate(e.Date, time.UTC)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("calendar-%d@garderoba", e.ID))
		ev.SetDtStampTime(now.UTC())
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		summary := e.OutfitName
		if summary == "" {
			summary = fmt.Sprintf("Outfit #%d", e.OutfitID)
		}
		ev.SetSummary(summary)
		if e.Notes != "" {
			ev.SetDescription(e.Notes)
		}
	}

	return cal.Serialize()
}
