package service

import (
	"errors"
	"strings"
	"time"
)

var errBadDate = errors.New("unparseable date")

// parseDate accepts the wire formats clients send for transaction dates:
// plain calendar dates and full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errBadDate
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errBadDate
}
