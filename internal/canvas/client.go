package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"canvassync/internal"
)

const (
	defaultTimeout = 30 * time.Second
	pageSize       = 100
)

// Client fetches assignments from the Canvas REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	Verbose bool
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ListAssignments retrieves every assignment of the course, following the
// Link header rel="next" chain until it runs out. The result is fully
// materialized, in page order; any non-2xx response fails the whole listing.
func (c *Client) ListAssignments(ctx context.Context, courseID string) ([]internal.Assignment, error) {
	url := fmt.Sprintf("%s/api/v1/courses/%s/assignments?per_page=%d", c.baseURL, courseID, pageSize)

	var assignments []internal.Assignment
	for page := 1; url != ""; page++ {
		c.logf(courseID, "fetching assignments page %d", page)

		raw, next, err := c.getPage(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("canvas: course %s: %w", courseID, err)
		}
		for _, a := range raw {
			assignments = append(assignments, normalize(a, courseID))
		}
		// The next URL is already fully qualified, no extra parameters.
		url = next
	}

	c.logf(courseID, "%d assignment(s) fetched", len(assignments))
	return assignments, nil
}

// assignment is the raw wire record; only the fields this system reads.
type assignment struct {
	ID              json.Number `json:"id"`
	Name            string      `json:"name"`
	HTMLURL         string      `json:"html_url"`
	DueAt           string      `json:"due_at"`
	PointsPossible  *float64    `json:"points_possible"`
	SubmissionTypes []string    `json:"submission_types"`
}

func (c *Client) getPage(ctx context.Context, url string) ([]assignment, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, res.Body)
		return nil, "", fmt.Errorf("GET %s: %s", url, res.Status)
	}

	var page []assignment
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("GET %s: decoding response: %w", url, err)
	}
	return page, nextLink(res.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" URL from a Link pagination header, or ""
// when the header is absent, unparsable, or has no next relation.
func nextLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		sections := strings.Split(link, ";")
		if len(sections) < 2 {
			continue
		}
		for _, param := range sections[1:] {
			if strings.EqualFold(strings.TrimSpace(param), `rel="next"`) {
				return strings.Trim(strings.TrimSpace(sections[0]), "<>")
			}
		}
	}
	return ""
}

func normalize(a assignment, courseID string) internal.Assignment {
	name := a.Name
	if name == "" {
		name = "(no title)"
	}
	return internal.Assignment{
		CanvasID:        a.ID.String(),
		CourseID:        courseID,
		Name:            name,
		DueAt:           a.DueAt,
		Points:          a.PointsPossible,
		SubmissionTypes: strings.Join(a.SubmissionTypes, ","),
		HTMLURL:         a.HTMLURL,
	}
}

func (c *Client) logf(courseID, format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "canvas:", "course "+courseID, format, a...)
	}
}
