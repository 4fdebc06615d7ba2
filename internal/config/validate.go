package config

import (
	"fmt"
	"strings"
)

// maxCalendarDays mirrors recommend.MaxCalendarDays; config must not import
// the engine.
const maxCalendarDays = 366

// Validate performs business-rule validation on the loaded configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0 (got %d)", c.Server.MaxUploadBytes)
	}
	if c.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis.timeout must be > 0 (got %s)", c.Analysis.Timeout)
	}
	if c.Analysis.BreakerFailures == 0 {
		return fmt.Errorf("analysis.breaker_failures must be > 0")
	}
	if c.Calendar.DefaultDays < 1 {
		return fmt.Errorf("calendar.default_days must be >= 1 (got %d)", c.Calendar.DefaultDays)
	}
	if c.Calendar.MaxDays < c.Calendar.DefaultDays || c.Calendar.MaxDays > maxCalendarDays {
		return fmt.Errorf("calendar.max_days must be in %d..%d (got %d)", c.Calendar.DefaultDays, maxCalendarDays, c.Calendar.MaxDays)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test (got %q)", c.Server.Mode)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}

	return nil
}
