package timemath

import (
	"math"
	"time"
)

// Duration converts seconds to a duration, rounding to the nearest nanosecond.
func Duration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
