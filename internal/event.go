package internal

import "time"

const DateFormat = "2006-01-02"

// Event is the write-target representation shared by the calendar upsert and
// the ICS feed. ID doubles as the idempotency key across runs.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	When        TimeRange
	SourceTitle string
	SourceURL   string
	Private     map[string]string
}

// TimeRange is either a date-only (all-day) range or a timed one.
type TimeRange struct {
	AllDay bool
	Start  time.Time
	End    time.Time
}
