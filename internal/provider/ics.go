package provider

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
)

const prodID = "-//sevenofnine//Edupage Calendar Bridge//EN"

// Lesson times are floating local times: no TZID, no trailing Z, so calendar
// clients render them in the subscriber's own timezone.
const icalTimeLayout = "20060102T150405"

// BuildCalendar serializes events into a VCALENDAR document with one VEVENT
// per record, preserving event order.
func BuildCalendar(events []domain.LessonEvent) string {
	cal := ics.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(prodID)
	for _, ev := range events {
		ve := cal.AddEvent(ev.UID)
		ve.SetProperty(ics.ComponentPropertyDtstamp, formatLocal(ev.CreatedAt))
		ve.SetSummary(ev.Summary)
		ve.SetProperty(ics.ComponentPropertyDtStart, formatLocal(ev.Start))
		ve.SetProperty(ics.ComponentPropertyDtEnd, formatLocal(ev.End))
		if ev.Recurrence != "" {
			ve.AddRrule(ev.Recurrence)
		}
	}
	return cal.Serialize()
}

func formatLocal(t time.Time) string {
	return t.Format(icalTimeLayout)
}
