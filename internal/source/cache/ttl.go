package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL bounds and defaults.
const (
	// DefaultTTL is the default cache TTL.
	DefaultTTL = time.Hour

	// MinTTL is the smallest accepted TTL.
	MinTTL = time.Minute

	// MaxTTL is the largest accepted TTL (7 days).
	MaxTTL = 7 * 24 * time.Hour

	minutesPerHour = 60
	hoursPerDay    = 24
)

// ErrInvalidTTL is returned for TTLs outside [MinTTL, MaxTTL].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %s and %s", FormatDuration(MinTTL), FormatDuration(MaxTTL))

// ParseTTL parses a TTL given as integer seconds ("3600") or as a duration
// string ("1h", "30m", "1h30m").
func ParseTTL(s string) (time.Duration, error) {
	var ttl time.Duration
	if seconds, err := strconv.Atoi(s); err == nil {
		ttl = time.Duration(seconds) * time.Second
	} else {
		parsed, parseErr := time.ParseDuration(s)
		if parseErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", parseErr)
		}
		ttl = parsed
	}

	if err := ValidateTTL(ttl); err != nil {
		return 0, err
	}
	return ttl, nil
}

// ValidateTTL checks that ttl lies within [MinTTL, MaxTTL].
func ValidateTTL(ttl time.Duration) error {
	if ttl < MinTTL || ttl > MaxTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, ttl)
	}
	return nil
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "45s", "30m", "1h30m", "2d".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
