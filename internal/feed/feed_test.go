package feed

import (
	"strings"
	"testing"
	"time"

	"canvassync/internal"
)

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Errorf("not a calendar:\n%s", out)
	}
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("expected no events:\n%s", out)
	}
}

func TestRenderTimedEvent(t *testing.T) {
	start := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	out := Render([]internal.Event{{
		ID:          "canvas-101-42",
		Summary:     "[101] Essay draft",
		Description: "https://canvas.example.edu/courses/101/assignments/42",
		SourceURL:   "https://canvas.example.edu/courses/101/assignments/42",
		When:        internal.TimeRange{Start: start, End: start.Add(30 * time.Minute)},
	}})

	for _, want := range []string{
		"UID:canvas-101-42",
		"SUMMARY:[101] Essay draft",
		"DTSTART:20240305T235900Z",
		"DTEND:20240306T002900Z",
		"URL:https://canvas.example.edu/courses/101/assignments/42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderAllDayEvent(t *testing.T) {
	day := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	out := Render([]internal.Event{{
		ID:      "manual-101-reading-day-2024-01-08",
		Summary: "[101] Reading day",
		When:    internal.TimeRange{AllDay: true, Start: day, End: day},
	}})

	if !strings.Contains(out, "DTSTART;VALUE=DATE:20240108") {
		t.Errorf("missing all-day start in:\n%s", out)
	}
	// All-day DTEND is exclusive, so a one-day event ends on the next date.
	if !strings.Contains(out, "DTEND;VALUE=DATE:20240109") {
		t.Errorf("missing exclusive all-day end in:\n%s", out)
	}
}

func TestRenderPreservesUIDPerIdentity(t *testing.T) {
	day := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	ev := internal.Event{
		ID:      "canvas-101-42",
		Summary: "[101] Essay",
		When:    internal.TimeRange{AllDay: true, Start: day, End: day},
	}

	first := Render([]internal.Event{ev})
	ev.Summary = "[101] Essay (revised)"
	second := Render([]internal.Event{ev})

	if !strings.Contains(first, "UID:canvas-101-42") || !strings.Contains(second, "UID:canvas-101-42") {
		t.Errorf("UID changed between renders")
	}
}
