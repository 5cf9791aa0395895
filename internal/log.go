package internal

import (
	"fmt"
	"io"
	"strings"
)

// Logf writes a single log line composed of an optional prefix, an optional
// scope (course id, tab name, calendar id) and the formatted message.
func Logf(w io.Writer, prefix, scope string, format string, a ...any) {
	parts := []string{}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if scope != "" {
		parts = append(parts, fmt.Sprintf("%s:", scope))
	}
	parts = append(parts, fmt.Sprintf(format, a...))
	fmt.Fprintln(w, strings.Join(parts, " "))
}
