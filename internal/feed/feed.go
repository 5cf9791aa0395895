// Package feed renders assignment events as an iCalendar document so
// consumers without access to the Google calendar can subscribe to the same
// schedule.
package feed

import (
	ics "github.com/arran4/golang-ical"

	"canvassync/internal"
)

// Render serializes the events into a VCALENDAR. Event UIDs reuse the
// canonical identity strings, so a re-rendered feed updates in place for
// subscribers just like the calendar upsert does.
func Render(events []internal.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//canvassync//EN")
	cal.SetXWRCalName("Canvas assignments")

	for _, ev := range events {
		ve := cal.AddEvent(ev.ID)
		ve.SetSummary(ev.Summary)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.SourceURL != "" {
			ve.SetURL(ev.SourceURL)
		}
		if ev.When.AllDay {
			ve.SetAllDayStartAt(ev.When.Start)
			// DTEND is exclusive for all-day events.
			ve.SetAllDayEndAt(ev.When.End.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(ev.When.Start)
			ve.SetEndAt(ev.When.End)
		}
	}
	return cal.Serialize()
}
