package internal

import (
	"fmt"
	"strings"
	"time"
)

// ManualEvent is one operator-authored row from the Manual tab.
type ManualEvent struct {
	EventID     string
	Name        string
	Date        string
	StartTime   string
	EndTime     string
	AllDay      bool
	CourseID    string
	Location    string
	Description string
}

// ManualEventID derives a fallback identity for rows without an explicit
// event_id. The slug tracks the row's name, so renaming such a row changes
// its identity and orphans the previously synced event.
func ManualEventID(courseID, name, date string) string {
	return fmt.Sprintf("manual-%s-%s-%s", courseID, Slug(name), date)
}

// ID returns the row's explicit event_id, or the derived fallback.
func (m ManualEvent) ID() string {
	if m.EventID != "" {
		return m.EventID
	}
	return ManualEventID(m.CourseID, m.Name, m.Date)
}

// Slug lowercases s and collapses every run of non-alphanumerics to a single
// hyphen, trimming hyphens at both ends.
func Slug(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}
	return b.String()
}

// truthy tokens accepted in the all_day column, case-insensitively.
var truthy = map[string]bool{"yes": true, "true": true, "1": true, "y": true}

// ParseManualRows maps spreadsheet rows into ManualEvent records. The first
// row is a header naming the columns; data columns may appear in any order.
// A row is all-day when the all_day column is truthy or start_time is blank.
func ParseManualRows(rows [][]string) []ManualEvent {
	if len(rows) == 0 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	events := make([]ManualEvent, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}

		name := row["name"]
		if name == "" {
			name = "(untitled)"
		}
		courseID := row["course_id"]
		if courseID == "" {
			courseID = "manual"
		}
		startTime := row["start_time"]

		events = append(events, ManualEvent{
			EventID:     row["event_id"],
			Name:        name,
			Date:        row["date"],
			StartTime:   startTime,
			EndTime:     row["end_time"],
			AllDay:      truthy[strings.ToLower(strings.TrimSpace(row["all_day"]))] || startTime == "",
			CourseID:    courseID,
			Location:    row["location"],
			Description: row["description"],
		})
	}
	return events
}

// Event builds the calendar write representation for the row. Dates and times
// are parsed in loc; malformed values fail the whole run rather than being
// silently skipped.
func (m ManualEvent) Event(loc *time.Location) (Event, error) {
	when, err := m.timeRange(loc)
	if err != nil {
		return Event{}, fmt.Errorf("manual event %s: %w", m.ID(), err)
	}
	return Event{
		ID:          m.ID(),
		Summary:     fmt.Sprintf("[%s] %s", m.CourseID, m.Name),
		Description: m.Description,
		Location:    m.Location,
		When:        when,
		Private: map[string]string{
			"manual":    "true",
			"course_id": m.CourseID,
		},
	}, nil
}

func (m ManualEvent) timeRange(loc *time.Location) (TimeRange, error) {
	day, err := time.ParseInLocation(DateFormat, m.Date, loc)
	if err != nil {
		return TimeRange{}, fmt.Errorf("unrecognized date %q", m.Date)
	}
	if m.AllDay {
		return TimeRange{AllDay: true, Start: day, End: day}, nil
	}

	start, err := atTime(day, m.StartTime)
	if err != nil {
		return TimeRange{}, err
	}
	end := start
	if m.EndTime != "" {
		if end, err = atTime(day, m.EndTime); err != nil {
			return TimeRange{}, err
		}
	}
	return TimeRange{Start: start, End: end}, nil
}

func atTime(day time.Time, clock string) (time.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", clock)
}
