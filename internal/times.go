package internal

import (
	"fmt"
	"strings"
	"time"
)

// eventDuration is the visibility window for a timed assignment event.
// Assignments have no natural duration, a deadline is a point in time.
const eventDuration = 30 * time.Minute

// placeholderDays pushes assignments without a due date a week out so they
// stay visible on the calendar without implying a false deadline.
const placeholderDays = 7

// BuildTimeRange converts a Canvas due_at string into a calendar time range.
// An empty dueAt yields an all-day placeholder placeholderDays after now in
// loc. A dueAt without a UTC offset is interpreted in loc, never as UTC.
// Unparsable input is an error, never a silent default.
func BuildTimeRange(dueAt string, loc *time.Location, now time.Time) (TimeRange, error) {
	if strings.TrimSpace(dueAt) == "" {
		day := midnight(now.In(loc).AddDate(0, 0, placeholderDays))
		return TimeRange{AllDay: true, Start: day, End: day}, nil
	}

	due, err := parseDue(dueAt, loc)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: due, End: due.Add(eventDuration)}, nil
}

func parseDue(dueAt string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dueAt); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, dueAt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date %q", dueAt)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
