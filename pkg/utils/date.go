package utils

import (
	"fmt"
	"time"
)

// TruncateToDay drops the time-of-day component, preserving the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from 'from' to 'to'. Same calendar
// day yields 0 regardless of the time-of-day of either argument.
func DaysBetween(from, to time.Time) int {
	fromDay := TruncateToDay(from)
	toDay := TruncateToDay(to.In(from.Location()))
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// SameDay reports whether both times fall on one calendar day.
func SameDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b.In(a.Location())))
}

// PrettyDate renders a timestamp for report subjects and bodies.
func PrettyDate(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d",
		date.Year(),
		date.Month(),
		date.Day(),
		date.Hour(),
		date.Minute(),
	)
}
