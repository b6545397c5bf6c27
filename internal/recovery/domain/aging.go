package domain

import "time"

const daySeconds = 86400

// DaysSince returns whole days elapsed between t and now, clamped at zero.
// A nil t means the bill was never submitted and ages from zero.
func DaysSince(t *time.Time, now time.Time) int {
	if t == nil {
		return 0
	}
	days := int(now.Sub(*t).Seconds()) / daySeconds
	if days < 0 {
		return 0
	}
	return days
}

// DaysOverdue returns whole days past the expected payment date, clamped at
// zero. A nil or future expected date means the bill is not yet due.
func DaysOverdue(expected *time.Time, now time.Time) int {
	if expected == nil {
		return 0
	}
	days := int(now.Sub(*expected).Seconds()) / daySeconds
	if days < 0 {
		return 0
	}
	return days
}

// AgingBucketFor maps an overdue-day count to its bucket label. The mapping
// is total over non-negative inputs and monotonic in days.
func AgingBucketFor(overdueDays int) AgingBucket {
	switch {
	case overdueDays <= 0:
		return AgingBucketNone
	case overdueDays <= 30:
		return AgingBucket0To30
	case overdueDays <= 60:
		return AgingBucket31To60
	case overdueDays <= 90:
		return AgingBucket61To90
	case overdueDays <= 180:
		return AgingBucket91To180
	case overdueDays <= 365:
		return AgingBucket181To365
	default:
		return AgingBucketOver365
	}
}
