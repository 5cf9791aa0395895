package internal

import (
	"fmt"
	"strconv"
	"time"
)

// Tab names on the target spreadsheet. "All" is fully rewritten on every run,
// "Manual" is operator-maintained and only ever read.
const (
	AssignmentsTab = "All"
	ManualTab      = "Manual"
)

// Assignment is the normalized form of a Canvas assignment for one sync run.
type Assignment struct {
	CanvasID        string
	CourseID        string
	Name            string
	DueAt           string // raw ISO-8601 string from Canvas, empty when unset
	Points          *float64
	SubmissionTypes string
	HTMLURL         string
}

// AssignmentID derives the calendar identity for an assignment. Canvas ids and
// course ids never change upstream, so the same assignment maps to the same
// event on every run.
func AssignmentID(courseID, canvasID string) string {
	return fmt.Sprintf("canvas-%s-%s", courseID, canvasID)
}

func (a Assignment) EventID() string {
	return AssignmentID(a.CourseID, a.CanvasID)
}

// Event builds the calendar write representation for the assignment.
// Assignments without a due date get an all-day placeholder a week out.
func (a Assignment) Event(loc *time.Location, now time.Time) (Event, error) {
	when, err := BuildTimeRange(a.DueAt, loc, now)
	if err != nil {
		return Event{}, fmt.Errorf("assignment %s: %w", a.EventID(), err)
	}
	return Event{
		ID:          a.EventID(),
		Summary:     fmt.Sprintf("[%s] %s", a.CourseID, a.Name),
		Description: a.HTMLURL,
		When:        when,
		SourceTitle: "Canvas",
		SourceURL:   a.HTMLURL,
		Private: map[string]string{
			"canvas_id": a.CanvasID,
			"course_id": a.CourseID,
		},
	}, nil
}

// SheetHeader is the fixed header row of the assignments tab.
var SheetHeader = []string{
	"canvas_id",
	"course_id",
	"name",
	"due_at",
	"points",
	"submission_types",
	"html_url",
	"calendar_event_id",
}

// SheetRow renders the assignment as one spreadsheet row, in SheetHeader
// order. All cells are strings; absent values are empty cells.
func (a Assignment) SheetRow() []interface{} {
	points := ""
	if a.Points != nil {
		points = strconv.FormatFloat(*a.Points, 'f', -1, 64)
	}
	return []interface{}{
		a.CanvasID,
		a.CourseID,
		a.Name,
		a.DueAt,
		points,
		a.SubmissionTypes,
		a.HTMLURL,
		a.EventID(),
	}
}
