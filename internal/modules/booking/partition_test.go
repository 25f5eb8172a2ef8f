package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(id int64, status domain.BookingStatus, checkIn, checkOut string) domain.Booking {
	return domain.Booking{
		ID:       id,
		Status:   status,
		CheckIn:  day(checkIn),
		CheckOut: day(checkOut),
	}
}

func TestPartition(t *testing.T) {
	today := day("2026-06-10")

	bookings := []domain.Booking{
		stay(1, domain.BookingConfirmed, "2026-06-10", "2026-06-14"), // arriving today
		stay(2, domain.BookingConfirmed, "2026-06-11", "2026-06-15"), // arriving tomorrow
		stay(3, domain.BookingConfirmed, "2026-06-05", "2026-06-10"), // checking out today
		stay(4, domain.BookingConfirmed, "2026-06-08", "2026-06-11"), // checking out tomorrow
		stay(5, domain.BookingConfirmed, "2026-06-07", "2026-06-13"), // mid-stay
		stay(6, domain.BookingConfirmed, "2026-06-20", "2026-06-25"), // upcoming
		stay(7, domain.BookingCancelled, "2026-06-10", "2026-06-14"), // cancelled beats arriving
		stay(8, domain.BookingConfirmed, "2026-06-01", "2026-06-05"), // past checkout, dropped
		stay(9, domain.BookingCancelled, "2026-06-01", "2026-06-05"), // cancelled beats past
	}

	b := Partition(bookings, today)

	ids := func(list []domain.Booking) []int64 {
		out := make([]int64, 0, len(list))
		for _, bk := range list {
			out = append(out, bk.ID)
		}
		return out
	}

	assert.Equal(t, []int64{1, 2}, ids(b.Arriving))
	assert.Equal(t, []int64{3, 4}, ids(b.CheckingOut))
	assert.Equal(t, []int64{5}, ids(b.Current))
	assert.Equal(t, []int64{6}, ids(b.Upcoming))
	assert.Equal(t, []int64{7, 9}, ids(b.Cancelled))
}

func TestPartitionArrivingBeatsCheckingOut(t *testing.T) {
	today := day("2026-06-10")

	// One-night stay arriving tomorrow and checking out the day after:
	// untilIn == 1 wins over untilOut proximity.
	b := Partition([]domain.Booking{
		stay(1, domain.BookingConfirmed, "2026-06-11", "2026-06-12"),
	}, today)

	assert.Len(t, b.Arriving, 1)
	assert.Empty(t, b.CheckingOut)
}

func TestPartitionSortsWithinBuckets(t *testing.T) {
	today := day("2026-06-10")

	b := Partition([]domain.Booking{
		stay(1, domain.BookingConfirmed, "2026-06-25", "2026-06-28"),
		stay(2, domain.BookingConfirmed, "2026-06-20", "2026-06-22"),
		stay(3, domain.BookingConfirmed, "2026-06-23", "2026-06-24"),
	}, today)

	assert.Equal(t, int64(2), b.Upcoming[0].ID)
	assert.Equal(t, int64(3), b.Upcoming[1].ID)
	assert.Equal(t, int64(1), b.Upcoming[2].ID)
}

func TestPartitionEmptyInput(t *testing.T) {
	b := Partition(nil, day("2026-06-10"))

	assert.NotNil(t, b.Arriving)
	assert.NotNil(t, b.CheckingOut)
	assert.NotNil(t, b.Current)
	assert.NotNil(t, b.Upcoming)
	assert.NotNil(t, b.Cancelled)
	assert.Empty(t, b.Arriving)
}

func TestPartitionPendingTreatedLikeConfirmed(t *testing.T) {
	today := day("2026-06-10")

	b := Partition([]domain.Booking{
		stay(1, domain.BookingPending, "2026-06-20", "2026-06-22"),
	}, today)

	assert.Len(t, b.Upcoming, 1)
}
