package models

import (
	"fmt"
	"strings"
	"time"
)

// OutputDateLayout is the format start dates are listed in.
const OutputDateLayout = "2006-01-02 15:04:05"

var inputDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate reads a start date sent by the chart and truncates it to the calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDate renders a start date for listing.
func FormatDate(t time.Time) string {
	return t.Format(OutputDateLayout)
}
