package sync

import (
	"time"

	"example.com/serial-time/base/syncerr"
)

const DefaultMinLeadTime = 100 * time.Microsecond

// TruncateSecond drops the sub-second part of t, keeping its location.
func TruncateSecond(t time.Time) (time.Time, error) {
	b := t.Truncate(time.Second)
	y0, m0, d0 := t.Date()
	h0, mi0, s0 := t.Clock()
	y1, m1, d1 := b.Date()
	h1, mi1, s1 := b.Clock()
	if b.Nanosecond() != 0 ||
		y0 != y1 || m0 != m1 || d0 != d1 ||
		h0 != h1 || mi0 != mi1 || s0 != s1 {
		return time.Time{}, &syncerr.Error{Kind: syncerr.ClockConversionFailed, Time: t}
	}
	return b, nil
}

// NextTarget returns the first second boundary lying more than minLead after
// now, together with its distance from now.
func NextTarget(now time.Time, minLead time.Duration) (time.Time, time.Duration, error) {
	if minLead < 0 {
		panic("minimum lead time must be >= 0")
	}
	next := now
	for {
		next = next.Add(time.Second)
		target, err := TruncateSecond(next)
		if err != nil {
			return time.Time{}, 0, err
		}
		dist := target.Sub(now)
		if dist > minLead {
			return target, dist, nil
		}
	}
}
