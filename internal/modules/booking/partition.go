package booking

import (
	"sort"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/dates"
)

// Buckets splits a guest's or host's bookings into the operational
// categories the dashboards render. Buckets are mutually exclusive: each
// booking lands in the first category it matches.
type Buckets struct {
	Arriving    []domain.Booking `json:"arriving"`
	CheckingOut []domain.Booking `json:"checking_out"`
	Current     []domain.Booking `json:"current"`
	Upcoming    []domain.Booking `json:"upcoming"`
	Cancelled   []domain.Booking `json:"cancelled"`
}

// Partition classifies bookings against today's date. Priority order:
// cancelled first (regardless of dates), then bookings whose checkout is
// already past are dropped entirely, then arriving, checking out, current,
// upcoming.
func Partition(bookings []domain.Booking, today time.Time) Buckets {
	b := Buckets{
		Arriving:    []domain.Booking{},
		CheckingOut: []domain.Booking{},
		Current:     []domain.Booking{},
		Upcoming:    []domain.Booking{},
		Cancelled:   []domain.Booking{},
	}

	for _, bk := range bookings {
		if bk.Status == domain.BookingCancelled {
			b.Cancelled = append(b.Cancelled, bk)
			continue
		}

		untilOut := dates.DaysUntil(today, bk.CheckOut)
		if untilOut < 0 {
			// Checked out before today: settled, nothing actionable.
			continue
		}

		untilIn := dates.DaysUntil(today, bk.CheckIn)
		switch {
		case untilIn == 0 || untilIn == 1:
			b.Arriving = append(b.Arriving, bk)
		case untilOut == 0 || untilOut == 1:
			b.CheckingOut = append(b.CheckingOut, bk)
		case untilIn < 0:
			// Guest is in the middle of the stay.
			b.Current = append(b.Current, bk)
		default:
			b.Upcoming = append(b.Upcoming, bk)
		}
	}

	sort.SliceStable(b.Arriving, func(i, j int) bool { return b.Arriving[i].CheckIn.Before(b.Arriving[j].CheckIn) })
	sort.SliceStable(b.Upcoming, func(i, j int) bool { return b.Upcoming[i].CheckIn.Before(b.Upcoming[j].CheckIn) })
	sort.SliceStable(b.CheckingOut, func(i, j int) bool { return b.CheckingOut[i].CheckOut.Before(b.CheckingOut[j].CheckOut) })

	return b
}
