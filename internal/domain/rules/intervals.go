package rules

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
)

// RangesOverlap reports whether two inclusive calendar ranges share at
// least one day.
func RangesOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !DateOnly(aFrom).After(DateOnly(bTo)) && !DateOnly(aTo).Before(DateOnly(bFrom))
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BookingDisplay derives the display state of an approved booking and the
// number of days left in that state.
func BookingDisplay(today, fromDate, toDate time.Time) (enums.BookingDisplay, int) {
	today = DateOnly(today)
	from := DateOnly(fromDate)
	to := DateOnly(toDate)

	switch {
	case today.Before(from):
		return enums.BookingDisplayUpcoming, daysBetween(today, from)
	case !today.After(to):
		return enums.BookingDisplayActive, daysBetween(today, to)
	default:
		return enums.BookingDisplayExpired, 0
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
