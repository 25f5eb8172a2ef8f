package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"four nights", "2025-08-01", "2025-08-05", 4},
		{"one night", "2025-08-01", "2025-08-02", 1},
		{"zero nights", "2025-08-01", "2025-08-01", 0},
		{"inverted range", "2025-08-05", "2025-08-01", -4},
		{"across month end", "2025-08-30", "2025-09-02", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NightsBetween(day(tt.checkIn), day(tt.checkOut)))
		})
	}
}

func TestDaysUntil_IgnoresTimeOfDay(t *testing.T) {
	ref := time.Date(2025, 8, 1, 23, 59, 0, 0, time.UTC)
	target := time.Date(2025, 8, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntil(ref, target))

	tomorrow := time.Date(2025, 8, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(ref, tomorrow))

	yesterday := time.Date(2025, 7, 31, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, DaysUntil(ref, yesterday))
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"partial overlap", "2025-08-01", "2025-08-05", "2025-08-03", "2025-08-06", true},
		{"back to back after", "2025-08-01", "2025-08-05", "2025-08-05", "2025-08-08", false},
		{"back to back before", "2025-08-05", "2025-08-08", "2025-08-01", "2025-08-05", false},
		{"identical", "2025-08-01", "2025-08-05", "2025-08-01", "2025-08-05", true},
		{"contained", "2025-08-01", "2025-08-10", "2025-08-03", "2025-08-05", true},
		{"containing", "2025-08-03", "2025-08-05", "2025-08-01", "2025-08-10", true},
		{"disjoint", "2025-08-01", "2025-08-05", "2025-08-10", "2025-08-12", false},
		{"one shared night", "2025-08-01", "2025-08-05", "2025-08-04", "2025-08-06", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			assert.Equal(t, tt.want, got)
			// Overlap is symmetric.
			assert.Equal(t, tt.want, RangesOverlap(day(tt.bStart), day(tt.bEnd), day(tt.aStart), day(tt.aEnd)))
		})
	}
}
