// Package dates holds the calendar arithmetic shared by availability checks,
// pricing and the booking dashboards. All ranges are half-open: a stay
// occupies [check_in, check_out), so a checkout and a same-day check-in never
// collide.
package dates

import "time"

// Range is a [CheckIn, CheckOut) date pair.
type Range struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// NightsBetween returns the number of whole 24-hour periods between checkIn
// and checkOut. Checkout is exclusive: a one-night stay has
// checkOut = checkIn + 1 day. Zero or negative means the caller passed an
// invalid range and must reject it before quoting or booking.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// DaysUntil returns the whole calendar days from ref to target, measured
// between UTC midnights. Two instants on the same calendar day yield 0
// regardless of time of day.
func DaysUntil(ref, target time.Time) int {
	return int(midnightUTC(target).Sub(midnightUTC(ref)).Hours() / 24)
}

// RangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant. Back-to-back ranges (aEnd == bStart) do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	// b starts inside a, b ends inside a, or b contains a.
	if !bStart.Before(aStart) && bStart.Before(aEnd) {
		return true
	}
	if bEnd.After(aStart) && !bEnd.After(aEnd) {
		return true
	}
	return !bStart.After(aStart) && !bEnd.Before(aEnd)
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
