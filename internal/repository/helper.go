package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a stored date column, accepting the "2006-01-02"
// form the repositories write and RFC3339 for rows the driver returns
// with a time component. Results are normalised to UTC.
func ParseTime(str string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return parsed.UTC(), nil
}
