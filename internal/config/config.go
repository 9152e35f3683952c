/*
Copyright (C) 2026 Polemicos

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int

	// Schedule extraction
	Employee     string // DZIN_EMPLOYEE: anchor marker, the employee's name as written in the sheet
	DayMarker    string // DZIN_DAY_MARKER: day-header cell below the anchor (default "dzień")
	Sheet        string // DZIN_SHEET: sheet/tab holding the plan; empty means first sheet
	EventSummary string // DZIN_EVENT_SUMMARY: summary applied to every calendar event
	Timezone     string // DZIN_TIMEZONE: IANA zone the schedule's wall clock lives in

	// Staging
	StagingDir       string
	RetentionMinutes int
	CleanupCron      string
	MaxUploadSizeMB  int

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("DZIN_ENV", "development"),
		HTTPBind:    getEnv("DZIN_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("DZIN_HTTP_PORT", 8080),

		Employee:     getEnv("DZIN_EMPLOYEE", ""),
		DayMarker:    getEnv("DZIN_DAY_MARKER", "dzień"),
		Sheet:        getEnv("DZIN_SHEET", "Plan"),
		EventSummary: getEnv("DZIN_EVENT_SUMMARY", "Работа"),
		Timezone:     getEnv("DZIN_TIMEZONE", "UTC"),

		StagingDir:       getEnv("DZIN_STAGING_DIR", filepath.Join(os.TempDir(), "dzin-schedule")),
		RetentionMinutes: getEnvInt("DZIN_RETENTION_MINUTES", 60),
		CleanupCron:      getEnv("DZIN_CLEANUP_CRON", "*/10 * * * *"),
		MaxUploadSizeMB:  getEnvInt("DZIN_MAX_UPLOAD_SIZE_MB", 16),

		TracingEnabled:    getEnvBool("DZIN_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("DZIN_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("DZIN_TRACING_SAMPLE_RATE", 0.1),
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("DZIN_TIMEZONE: unknown location %q", cfg.Timezone)
	}

	if cfg.RetentionMinutes <= 0 {
		return nil, fmt.Errorf("DZIN_RETENTION_MINUTES must be positive, got %d", cfg.RetentionMinutes)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(cfg.CleanupCron); err != nil {
		return nil, fmt.Errorf("DZIN_CLEANUP_CRON: invalid spec %q: %w", cfg.CleanupCron, err)
	}

	if cfg.MaxUploadSizeMB <= 0 {
		return nil, fmt.Errorf("DZIN_MAX_UPLOAD_SIZE_MB must be positive, got %d", cfg.MaxUploadSizeMB)
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Retention returns the staging retention window as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionMinutes) * time.Minute
}

// MaxUploadSizeBytes returns the configured upload limit in bytes.
func (c *Config) MaxUploadSizeBytes() int64 {
	return int64(c.MaxUploadSizeMB) * 1024 * 1024
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
