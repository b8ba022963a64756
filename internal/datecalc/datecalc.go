// Package datecalc handles the calendar dates records are bucketed by.
package datecalc

import (
	"fmt"
	"time"
)

// Layout is the wire format of a calendar date.
const Layout = "2006-01-02"

// Today returns the calendar date of now in its location.
func Today(now time.Time) string {
	return now.Format(Layout)
}

// Parse parses a YYYY-MM-DD date in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Day returns the calendar date part of an anchor value. The server may send
// either "2024-01-02" or a full timestamp such as "2024-01-02T00:00:00.000Z";
// the date part is returned unchanged in both cases.
func Day(anchor string) string {
	if len(anchor) >= len(Layout) {
		if _, err := time.Parse(Layout, anchor[:len(Layout)]); err == nil {
			return anchor[:len(Layout)]
		}
	}
	return anchor
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday dates of the ISO week containing t.
func WeekRange(t time.Time) (string, string) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(Layout), sunday.Format(Layout)
}

// InRange reports whether the anchor's day lies in [from, to]. Empty bounds
// are open.
func InRange(anchor, from, to string) bool {
	d := Day(anchor)
	if from != "" && d < from {
		return false
	}
	if to != "" && d > to {
		return false
	}
	return true
}
