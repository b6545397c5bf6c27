package domain

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) *time.Time {
	t := testNow.AddDate(0, 0, -d)
	return &t
}

func TestDaysSince(t *testing.T) {
	if got := DaysSince(nil, testNow); got != 0 {
		t.Fatalf("nil date: got %d, want 0", got)
	}
	if got := DaysSince(daysAgo(45), testNow); got != 45 {
		t.Fatalf("45 days ago: got %d, want 45", got)
	}
	future := testNow.AddDate(0, 0, 10)
	if got := DaysSince(&future, testNow); got != 0 {
		t.Fatalf("future date: got %d, want 0", got)
	}
}

func TestDaysSincePartialDay(t *testing.T) {
	// 23 hours is not yet a full day.
	t23 := testNow.Add(-23 * time.Hour)
	if got := DaysSince(&t23, testNow); got != 0 {
		t.Fatalf("23h ago: got %d, want 0", got)
	}
	t25 := testNow.Add(-25 * time.Hour)
	if got := DaysSince(&t25, testNow); got != 1 {
		t.Fatalf("25h ago: got %d, want 1", got)
	}
}

func TestDaysOverdue(t *testing.T) {
	if got := DaysOverdue(nil, testNow); got != 0 {
		t.Fatalf("nil expected date: got %d, want 0", got)
	}
	future := testNow.AddDate(0, 0, 7)
	if got := DaysOverdue(&future, testNow); got != 0 {
		t.Fatalf("future expected date: got %d, want 0", got)
	}
	if got := DaysOverdue(daysAgo(45), testNow); got != 45 {
		t.Fatalf("45 days overdue: got %d, want 45", got)
	}
}

func TestAgingBucketBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want AgingBucket
	}{
		{0, AgingBucketNone},
		{1, AgingBucket0To30},
		{30, AgingBucket0To30},
		{31, AgingBucket31To60},
		{45, AgingBucket31To60},
		{60, AgingBucket31To60},
		{61, AgingBucket61To90},
		{90, AgingBucket61To90},
		{91, AgingBucket91To180},
		{180, AgingBucket91To180},
		{181, AgingBucket181To365},
		{365, AgingBucket181To365},
		{366, AgingBucketOver365},
		{4000, AgingBucketOver365},
	}
	for _, tc := range cases {
		if got := AgingBucketFor(tc.days); got != tc.want {
			t.Errorf("AgingBucketFor(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestAgingBucketTotalAndMonotonic(t *testing.T) {
	order := map[AgingBucket]int{
		AgingBucketNone:     0,
		AgingBucket0To30:    1,
		AgingBucket31To60:   2,
		AgingBucket61To90:   3,
		AgingBucket91To180:  4,
		AgingBucket181To365: 5,
		AgingBucketOver365:  6,
	}
	prev := 0
	for d := 0; d <= 800; d++ {
		rank, ok := order[AgingBucketFor(d)]
		if !ok {
			t.Fatalf("AgingBucketFor(%d) returned unknown bucket %q", d, AgingBucketFor(d))
		}
		if rank < prev {
			t.Fatalf("bucket order regressed at %d days", d)
		}
		prev = rank
	}
}
