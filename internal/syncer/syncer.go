package syncer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"canvassync/internal"
)

// AssignmentSource lists the assignments of one course, fully materialized.
type AssignmentSource interface {
	ListAssignments(ctx context.Context, courseID string) ([]internal.Assignment, error)
}

// SheetStore is the spreadsheet side: full-replace writes and manual reads.
type SheetStore interface {
	ReplaceAssignments(ctx context.Context, tab string, assignments []internal.Assignment) error
	ManualEvents(ctx context.Context, tab string) ([]internal.ManualEvent, error)
}

// CalendarStore upserts events keyed by their identity strings.
type CalendarStore interface {
	UpsertEvents(ctx context.Context, events []internal.Event) error
}

// Summary is the result of one sync run.
type Summary struct {
	SyncedAssignments int      `json:"synced_assignments"`
	Courses           []string `json:"courses"`
	ManualEvents      int      `json:"manual_events"`
}

// Syncer runs the one-directional sync: Canvas assignments into the sheet and
// calendar, then manual sheet rows into the calendar. Either store may be nil,
// which skips its phase; manual events live in the sheet, so they are synced
// only when both stores are present.
type Syncer struct {
	output    io.Writer
	source    AssignmentSource
	sheet     SheetStore
	calendar  CalendarStore
	courseIDs []string
	loc       *time.Location

	now func() time.Time
}

func New(output io.Writer, source AssignmentSource, sheet SheetStore, calendar CalendarStore, courseIDs []string, loc *time.Location) *Syncer {
	if output == nil {
		output = os.Stdout
	}
	return &Syncer{
		output:    output,
		source:    source,
		sheet:     sheet,
		calendar:  calendar,
		courseIDs: courseIDs,
		loc:       loc,
		now:       time.Now,
	}
}

// Run executes one sync. Phases are sequential; a fetch failure aborts the
// run before anything is written.
func (s *Syncer) Run(ctx context.Context) (*Summary, error) {
	assignments, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.sheet != nil {
		logf(s.output, internal.AssignmentsTab, "replacing %d assignment row(s)", len(assignments))
		if err := s.sheet.ReplaceAssignments(ctx, internal.AssignmentsTab, assignments); err != nil {
			return nil, fmt.Errorf("writing sheet: %w", err)
		}
	}

	manualCount := 0
	if s.calendar != nil {
		events, err := s.assignmentEvents(assignments)
		if err != nil {
			return nil, err
		}
		logf(s.output, "", "upserting %d assignment event(s)", len(events))
		if err := s.calendar.UpsertEvents(ctx, events); err != nil {
			return nil, fmt.Errorf("writing calendar: %w", err)
		}

		if s.sheet != nil {
			manualCount, err = s.syncManual(ctx)
			if err != nil {
				return nil, err
			}
		}
	}

	return &Summary{
		SyncedAssignments: len(assignments),
		Courses:           s.courseIDs,
		ManualEvents:      manualCount,
	}, nil
}

func (s *Syncer) fetchAll(ctx context.Context) ([]internal.Assignment, error) {
	var assignments []internal.Assignment
	for _, courseID := range s.courseIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logf(s.output, courseID, "fetching assignments")
		records, err := s.source.ListAssignments(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("fetching course %s: %w", courseID, err)
		}
		assignments = append(assignments, records...)
	}
	return assignments, nil
}

func (s *Syncer) syncManual(ctx context.Context) (int, error) {
	manual, err := s.sheet.ManualEvents(ctx, internal.ManualTab)
	if err != nil {
		return 0, fmt.Errorf("reading manual events: %w", err)
	}
	if len(manual) == 0 {
		return 0, nil
	}

	events := make([]internal.Event, len(manual))
	for i, m := range manual {
		if events[i], err = m.Event(s.loc); err != nil {
			return 0, err
		}
	}
	logf(s.output, internal.ManualTab, "upserting %d manual event(s)", len(events))
	if err := s.calendar.UpsertEvents(ctx, events); err != nil {
		return 0, fmt.Errorf("writing manual events: %w", err)
	}
	return len(manual), nil
}

func (s *Syncer) assignmentEvents(assignments []internal.Assignment) ([]internal.Event, error) {
	now := s.now()
	events := make([]internal.Event, len(assignments))
	for i, a := range assignments {
		ev, err := a.Event(s.loc, now)
		if err != nil {
			return nil, err
		}
		events[i] = ev
	}
	return events, nil
}

// AssignmentEvents fetches and converts assignments without writing anywhere.
// The ICS feed serves these directly.
func (s *Syncer) AssignmentEvents(ctx context.Context) ([]internal.Event, error) {
	assignments, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.assignmentEvents(assignments)
}

func logf(w io.Writer, scope, format string, a ...any) {
	internal.Logf(w, "", scope, format, a...)
}
