package internal

import (
	"testing"
	"time"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	return loc
}

func TestBuildTimeRangeWithoutDueDate(t *testing.T) {
	loc := chicago(t)
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, loc)

	when, err := BuildTimeRange("", loc, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !when.AllDay {
		t.Errorf("expected an all-day placeholder")
	}
	if got := when.Start.Format(DateFormat); got != "2024-01-08" {
		t.Errorf("incorrect placeholder date\n   expected: 2024-01-08\n   got:      %s", got)
	}
	if !when.End.Equal(when.Start) {
		t.Errorf("expected start and end to match, got %v and %v", when.Start, when.End)
	}
}

func TestBuildTimeRangeLocalizesNaiveDueDate(t *testing.T) {
	loc := chicago(t)

	when, err := BuildTimeRange("2024-03-05T23:59:00", loc, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if when.AllDay {
		t.Errorf("expected a timed range")
	}
	if got := when.Start.Format(time.RFC3339); got != "2024-03-05T23:59:00-06:00" {
		t.Errorf("incorrect start\n   expected: 2024-03-05T23:59:00-06:00\n   got:      %s", got)
	}
	if got := when.End.Format(time.RFC3339); got != "2024-03-06T00:29:00-06:00" {
		t.Errorf("incorrect end\n   expected: 2024-03-06T00:29:00-06:00\n   got:      %s", got)
	}
}

func TestBuildTimeRangeKeepsExplicitOffset(t *testing.T) {
	when, err := BuildTimeRange("2024-03-05T23:59:00Z", chicago(t), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := when.Start.Format(time.RFC3339); got != "2024-03-05T23:59:00Z" {
		t.Errorf("incorrect start\n   expected: 2024-03-05T23:59:00Z\n   got:      %s", got)
	}
}

func TestBuildTimeRangeRejectsGarbage(t *testing.T) {
	for _, due := range []string{"soon", "2024-13-40T99:00:00", "tomorrow 5pm"} {
		if _, err := BuildTimeRange(due, chicago(t), time.Now()); err == nil {
			t.Errorf("expected an error for %q", due)
		}
	}
}
