package google

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// The fallback paths below key off specific service errors. Anything that
// does not match propagates to the caller unchanged.

// isConflict reports whether err is the calendar's signal that an event with
// the requested id already exists.
func isConflict(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusConflict {
		return true
	}
	for _, e := range gerr.Errors {
		if e.Reason == "duplicate" {
			return true
		}
	}
	return false
}

// isAlreadyExists reports whether err is the spreadsheet's rejection of an
// AddSheet request because a tab with that title exists.
func isAlreadyExists(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "already exists")
}

// isMissingRange reports whether err means the referenced tab does not exist.
// The Sheets API surfaces a missing tab as a range parse failure.
func isMissingRange(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range")
}
