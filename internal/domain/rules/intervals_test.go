package rules

import (
	"math/rand"
	"testing"
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		aFrom, aTo, bFrom, bTo string
		want                   bool
	}{
		{name: "partial overlap", aFrom: "2024-03-01", aTo: "2024-03-10", bFrom: "2024-03-05", bTo: "2024-03-15", want: true},
		{name: "adjacent ranges do not overlap", aFrom: "2024-03-01", aTo: "2024-03-10", bFrom: "2024-03-11", bTo: "2024-03-20", want: false},
		{name: "shared boundary day overlaps", aFrom: "2024-03-01", aTo: "2024-03-10", bFrom: "2024-03-10", bTo: "2024-03-20", want: true},
		{name: "contained range", aFrom: "2024-03-01", aTo: "2024-03-31", bFrom: "2024-03-10", bTo: "2024-03-12", want: true},
		{name: "disjoint", aFrom: "2024-01-01", aTo: "2024-01-05", bFrom: "2024-02-01", bTo: "2024-02-05", want: false},
		{name: "single day equal", aFrom: "2024-03-05", aTo: "2024-03-05", bFrom: "2024-03-05", bTo: "2024-03-05", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(day(tt.aFrom), day(tt.aTo), day(tt.bFrom), day(tt.bTo))
			if got != tt.want {
				t.Fatalf("RangesOverlap = %v, want %v", got, tt.want)
			}
			// overlap is symmetric
			if rev := RangesOverlap(day(tt.bFrom), day(tt.bTo), day(tt.aFrom), day(tt.aTo)); rev != got {
				t.Fatalf("RangesOverlap is not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

// Brute-force reference: walk every day of range A and check membership
// in range B.
func overlapReference(aFrom, aTo, bFrom, bTo time.Time) bool {
	for d := DateOnly(aFrom); !d.After(DateOnly(aTo)); d = d.AddDate(0, 0, 1) {
		if !d.Before(DateOnly(bFrom)) && !d.After(DateOnly(bTo)) {
			return true
		}
	}
	return false
}

func TestRangesOverlapProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := day("2024-01-01")

	randomRange := func() (time.Time, time.Time) {
		start := base.AddDate(0, 0, rng.Intn(60))
		return start, start.AddDate(0, 0, rng.Intn(20))
	}

	for i := 0; i < 1000; i++ {
		aFrom, aTo := randomRange()
		bFrom, bTo := randomRange()

		got := RangesOverlap(aFrom, aTo, bFrom, bTo)
		want := overlapReference(aFrom, aTo, bFrom, bTo)
		if got != want {
			t.Fatalf("mismatch for [%s, %s] vs [%s, %s]: got %v, reference %v",
				aFrom.Format("2006-01-02"), aTo.Format("2006-01-02"),
				bFrom.Format("2006-01-02"), bTo.Format("2006-01-02"),
				got, want)
		}
	}
}

func TestBookingDisplay(t *testing.T) {
	from := day("2024-03-10")
	to := day("2024-03-20")

	tests := []struct {
		name     string
		today    string
		want     enums.BookingDisplay
		wantDays int
	}{
		{name: "before start is upcoming", today: "2024-03-05", want: enums.BookingDisplayUpcoming, wantDays: 5},
		{name: "first day is active", today: "2024-03-10", want: enums.BookingDisplayActive, wantDays: 10},
		{name: "last day is active", today: "2024-03-20", want: enums.BookingDisplayActive, wantDays: 0},
		{name: "after end is expired", today: "2024-03-21", want: enums.BookingDisplayExpired, wantDays: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, days := BookingDisplay(day(tt.today), from, to)
			if state != tt.want || days != tt.wantDays {
				t.Fatalf("BookingDisplay(%s) = %s/%d, want %s/%d", tt.today, state, days, tt.want, tt.wantDays)
			}
		})
	}
}
