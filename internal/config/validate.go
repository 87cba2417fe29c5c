package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// The one secret this service cannot run without.
	if c.Gemini.APIKey == "" {
		errs = append(errs, "GEMINI_API_KEY is required")
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1–65535, got %d", c.Server.Port))
	}
	if c.RateLimit.Enabled && (c.Redis.Port < 1 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1–65535, got %d", c.Redis.Port))
	}

	if c.Quota.DailyLimit < 1 {
		errs = append(errs, fmt.Sprintf("QUOTA_DAILY_LIMIT must be positive, got %d", c.Quota.DailyLimit))
	}
	if c.Upload.MaxBytes < 1 {
		errs = append(errs, fmt.Sprintf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, "SESSION_TTL must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.MaxReqs < 1 {
		errs = append(errs, fmt.Sprintf("RATELIMIT_MAX_REQS must be positive, got %d", c.RateLimit.MaxReqs))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
