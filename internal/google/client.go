package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

const (
	scopeSheets   = "https://www.googleapis.com/auth/spreadsheets"
	scopeCalendar = "https://www.googleapis.com/auth/calendar"
)

// newHTTPClient builds an authenticated client from service-account JSON.
// Credentials come from the environment blob decoded at startup; no tokens
// are stored between runs.
func newHTTPClient(ctx context.Context, credentials []byte) (*http.Client, error) {
	cfg, err := google.JWTConfigFromJSON(credentials, scopeSheets, scopeCalendar)
	if err != nil {
		return nil, fmt.Errorf("google: parsing service account credentials: %w", err)
	}
	return cfg.Client(ctx), nil
}

// NewSheets builds a Sheets store bound to one spreadsheet.
func NewSheets(ctx context.Context, credentials []byte, spreadsheetID string) (*Sheets, error) {
	httpClient, err := newHTTPClient(ctx, credentials)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("google: creating sheets service: %w", err)
	}
	return &Sheets{api: sheetsService{svc}, spreadsheetID: spreadsheetID}, nil
}

// NewCalendar builds a Calendar store bound to one calendar.
func NewCalendar(ctx context.Context, credentials []byte, calendarID string) (*Calendar, error) {
	httpClient, err := newHTTPClient(ctx, credentials)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("google: creating calendar service: %w", err)
	}
	return &Calendar{api: calendarService{svc}, calendarID: calendarID}, nil
}
