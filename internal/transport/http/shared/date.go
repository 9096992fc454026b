package shared

import (
	"fmt"
	"strings"
	"time"
)

func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse("2006-01-02", raw)
}

// ParseMonth validates a pay-period tag in YYYY-MM form.
func ParseMonth(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if _, err := time.Parse("2006-01", raw); err != nil {
		return "", fmt.Errorf("month must be in YYYY-MM format")
	}
	return raw, nil
}
