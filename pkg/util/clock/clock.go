// Package clock parses the calendar dates and times of day that clients send
// as strings.
package clock

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time of day")
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"03:04 PM",
	"3:04PM",
	"03:04PM",
	"3 PM",
	"3PM",
}

// ParseDate accepts a bare day or a full timestamp and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseClock returns minutes since midnight for "15:04" or "3:04 PM" style
// input. 12 AM is midnight and 12 PM is noon.
func ParseClock(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, ErrInvalidTime
}

// Hour returns the 0-23 hour bucket of a time-of-day string.
func Hour(s string) (int, error) {
	m, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return m / 60, nil
}
