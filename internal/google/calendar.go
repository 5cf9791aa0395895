package google

import (
	"context"
	"fmt"
	"os"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"canvassync/internal"
)

// maxEventIDLen is the calendar's cap on caller-supplied event ids.
const maxEventIDLen = 1024

// eventsAPI is the slice of the Calendar API this store consumes.
type eventsAPI interface {
	Insert(ctx context.Context, calendarID string, ev *calendar.Event) error
	Patch(ctx context.Context, calendarID, eventID string, ev *calendar.Event) error
}

// Calendar upserts events into one calendar.
type Calendar struct {
	api        eventsAPI
	calendarID string

	Verbose bool
}

// UpsertEvents writes every event keyed by its identity string. Insert is
// attempted first; only the service's "already exists" conflict falls back to
// patching the same fields on the existing event, so repeated runs with the
// same input converge to one event per identity.
func (c *Calendar) UpsertEvents(ctx context.Context, events []internal.Event) error {
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.upsert(ctx, ev); err != nil {
			return fmt.Errorf("google: upserting event %s: %w", ev.ID, err)
		}
	}
	return nil
}

func (c *Calendar) upsert(ctx context.Context, ev internal.Event) error {
	id := truncateID(ev.ID)
	body := newCalendarEvent(id, ev)

	err := c.api.Insert(ctx, c.calendarID, body)
	if err == nil {
		c.logf("created event %s: %q", id, ev.Summary)
		return nil
	}
	if !isConflict(err) {
		return err
	}

	if err := c.api.Patch(ctx, c.calendarID, id, body); err != nil {
		return err
	}
	c.logf("updated event %s: %q", id, ev.Summary)
	return nil
}

func truncateID(id string) string {
	if len(id) > maxEventIDLen {
		return id[:maxEventIDLen]
	}
	return id
}

func newCalendarEvent(id string, ev internal.Event) *calendar.Event {
	body := &calendar.Event{
		Id:          id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       newEventDateTime(ev.When.AllDay, ev.When.Start),
		End:         newEventDateTime(ev.When.AllDay, ev.When.End),
	}
	if ev.SourceTitle != "" || ev.SourceURL != "" {
		body.Source = &calendar.EventSource{Title: ev.SourceTitle, Url: ev.SourceURL}
	}
	if len(ev.Private) > 0 {
		body.ExtendedProperties = &calendar.EventExtendedProperties{Private: ev.Private}
	}
	return body
}

func newEventDateTime(allDay bool, t time.Time) *calendar.EventDateTime {
	if allDay {
		return &calendar.EventDateTime{Date: t.Format(internal.DateFormat)}
	}
	return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}
}

func (c *Calendar) logf(format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "calendar:", c.calendarID, format, a...)
	}
}

// calendarService adapts *calendar.Service to eventsAPI.
type calendarService struct {
	svc *calendar.Service
}

func (g calendarService) Insert(ctx context.Context, calendarID string, ev *calendar.Event) error {
	_, err := g.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	return err
}

func (g calendarService) Patch(ctx context.Context, calendarID, eventID string, ev *calendar.Event) error {
	_, err := g.svc.Events.Patch(calendarID, eventID, ev).Context(ctx).Do()
	return err
}
