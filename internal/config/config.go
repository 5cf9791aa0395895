package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration, read once at startup. Handles built
// from it (HTTP clients, Google services) are passed by reference to every
// caller that needs them.
type Config struct {
	CanvasBaseURL string
	CanvasToken   string
	CourseIDs     []string

	// SheetID and CalendarID select the sync targets; either may be empty,
	// which skips the corresponding phase.
	SheetID    string
	CalendarID string

	Timezone    string
	ListenAddr  string
	Credentials []byte // decoded Google service-account JSON, may be empty
}

// Load reads configuration from the environment. Missing required values are
// fatal here so a misconfigured process never reaches its first sync.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	_ = v.BindEnv("canvas_base_url", "CANVAS_BASE_URL")
	_ = v.BindEnv("canvas_token", "CANVAS_TOKEN")
	_ = v.BindEnv("canvas_course_ids", "CANVAS_COURSE_IDS")
	_ = v.BindEnv("sheet_id", "SHEET_ID")
	_ = v.BindEnv("calendar_id", "CALENDAR_ID")
	_ = v.BindEnv("timezone", "TZ")
	_ = v.BindEnv("listen_addr", "LISTEN_ADDR")
	_ = v.BindEnv("google_credentials_json_b64", "GOOGLE_CREDENTIALS_JSON_B64")

	v.SetDefault("timezone", "America/Chicago")
	v.SetDefault("listen_addr", ":8080")

	cfg := &Config{
		CanvasBaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("canvas_base_url")), "/"),
		CanvasToken:   strings.TrimSpace(v.GetString("canvas_token")),
		CourseIDs:     splitIDs(v.GetString("canvas_course_ids")),
		SheetID:       strings.TrimSpace(v.GetString("sheet_id")),
		CalendarID:    strings.TrimSpace(v.GetString("calendar_id")),
		Timezone:      v.GetString("timezone"),
		ListenAddr:    v.GetString("listen_addr"),
	}

	if cfg.CanvasBaseURL == "" {
		return nil, fmt.Errorf("config: CANVAS_BASE_URL is required")
	}
	if cfg.CanvasToken == "" {
		return nil, fmt.Errorf("config: CANVAS_TOKEN is required")
	}
	if len(cfg.CourseIDs) == 0 {
		return nil, fmt.Errorf("config: CANVAS_COURSE_IDS is required")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("config: invalid TZ %q: %w", cfg.Timezone, err)
	}

	if raw := v.GetString("google_credentials_json_b64"); raw != "" {
		creds, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("config: decoding GOOGLE_CREDENTIALS_JSON_B64: %w", err)
		}
		cfg.Credentials = creds
	}
	if (cfg.SheetID != "" || cfg.CalendarID != "") && len(cfg.Credentials) == 0 {
		return nil, fmt.Errorf("config: GOOGLE_CREDENTIALS_JSON_B64 is required when a sheet or calendar is configured")
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
