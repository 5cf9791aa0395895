package google

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"canvassync/internal"
)

type fakeEventsAPI struct {
	// events holds the calendar state keyed by event id, so repeated upserts
	// against the same fake behave like the real service.
	events map[string]*calendar.Event

	inserts, patches int
	insertErr        error
}

func newFakeEventsAPI() *fakeEventsAPI {
	return &fakeEventsAPI{events: map[string]*calendar.Event{}}
}

func (f *fakeEventsAPI) Insert(ctx context.Context, calendarID string, ev *calendar.Event) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.events[ev.Id]; ok {
		return googleErr(http.StatusConflict, "The requested identifier already exists.", "duplicate")
	}
	f.events[ev.Id] = ev
	return nil
}

func (f *fakeEventsAPI) Patch(ctx context.Context, calendarID, eventID string, ev *calendar.Event) error {
	f.patches++
	f.events[eventID] = ev
	return nil
}

func timedEvent(id, summary string) internal.Event {
	start := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	return internal.Event{
		ID:      id,
		Summary: summary,
		When:    internal.TimeRange{Start: start, End: start.Add(30 * time.Minute)},
	}
}

func TestUpsertEventsInsertsNewEvents(t *testing.T) {
	api := newFakeEventsAPI()
	store := &Calendar{api: api, calendarID: "primary"}

	err := store.UpsertEvents(context.Background(), []internal.Event{
		timedEvent("canvas-101-1", "[101] Essay"),
		timedEvent("canvas-101-2", "[101] Quiz"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.events) != 2 {
		t.Errorf("expected 2 events, got %d", len(api.events))
	}
	if api.patches != 0 {
		t.Errorf("expected no patches on first write, got %d", api.patches)
	}
}

func TestUpsertEventsIsIdempotent(t *testing.T) {
	api := newFakeEventsAPI()
	store := &Calendar{api: api, calendarID: "primary"}

	events := []internal.Event{timedEvent("canvas-101-1", "[101] Essay")}
	if err := store.UpsertEvents(context.Background(), events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second run hits the conflict and patches instead.
	events[0].Summary = "[101] Essay (revised)"
	if err := store.UpsertEvents(context.Background(), events); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.events) != 1 {
		t.Fatalf("expected one event per identity, got %d", len(api.events))
	}
	if api.patches != 1 {
		t.Errorf("expected the second run to patch, got %d patches", api.patches)
	}
	if got := api.events["canvas-101-1"].Summary; got != "[101] Essay (revised)" {
		t.Errorf("patch did not carry the new fields: %s", got)
	}
}

func TestUpsertEventsPropagatesOtherErrors(t *testing.T) {
	api := newFakeEventsAPI()
	api.insertErr = googleErr(http.StatusForbidden, "forbidden", "forbidden")
	store := &Calendar{api: api, calendarID: "primary"}

	err := store.UpsertEvents(context.Background(), []internal.Event{timedEvent("canvas-101-1", "x")})
	if err == nil {
		t.Fatalf("expected a non-conflict error to propagate")
	}
	if api.patches != 0 {
		t.Errorf("a non-conflict error must not fall back to patch")
	}
}

func TestUpsertEventsStopsOnCancelledContext(t *testing.T) {
	api := newFakeEventsAPI()
	store := &Calendar{api: api, calendarID: "primary"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.UpsertEvents(ctx, []internal.Event{timedEvent("canvas-101-1", "x")})
	if err == nil {
		t.Fatalf("expected a context error")
	}
	if api.inserts != 0 {
		t.Errorf("expected no writes after cancellation, got %d", api.inserts)
	}
}

func TestUpsertEventsTruncatesLongIDs(t *testing.T) {
	api := newFakeEventsAPI()
	store := &Calendar{api: api, calendarID: "primary"}

	long := "manual-" + strings.Repeat("x", 1500)
	if err := store.UpsertEvents(context.Background(), []internal.Event{timedEvent(long, "x")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id := range api.events {
		if len(id) != maxEventIDLen {
			t.Errorf("expected the id truncated to %d chars, got %d", maxEventIDLen, len(id))
		}
	}
}

func TestNewCalendarEventTimed(t *testing.T) {
	ev := timedEvent("canvas-101-1", "[101] Essay")
	ev.Description = "https://canvas.example.edu/courses/101/assignments/1"
	ev.SourceTitle = "Canvas"
	ev.SourceURL = ev.Description
	ev.Private = map[string]string{"canvas_id": "1", "course_id": "101"}

	body := newCalendarEvent(ev.ID, ev)

	if body.Start.DateTime != "2024-03-05T23:59:00Z" || body.Start.Date != "" {
		t.Errorf("incorrect start: %+v", body.Start)
	}
	if body.End.DateTime != "2024-03-06T00:29:00Z" {
		t.Errorf("incorrect end: %+v", body.End)
	}
	if body.Source == nil || body.Source.Title != "Canvas" {
		t.Errorf("incorrect source: %+v", body.Source)
	}
	if body.ExtendedProperties == nil || body.ExtendedProperties.Private["canvas_id"] != "1" {
		t.Errorf("incorrect private properties: %+v", body.ExtendedProperties)
	}
}

func TestNewCalendarEventAllDay(t *testing.T) {
	day := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)
	ev := internal.Event{
		ID:      "canvas-101-1",
		Summary: "[101] Essay",
		When:    internal.TimeRange{AllDay: true, Start: day, End: day},
	}

	body := newCalendarEvent(ev.ID, ev)

	if body.Start.Date != "2024-01-08" || body.Start.DateTime != "" {
		t.Errorf("incorrect all-day start: %+v", body.Start)
	}
	if body.Source != nil || body.ExtendedProperties != nil {
		t.Errorf("expected no source or private properties: %+v", body)
	}
}
