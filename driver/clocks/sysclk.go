package clocks

import (
	"log/slog"
	"time"

	"example.com/serial-time/base/timebase"
)

type SystemClock struct {
	log *slog.Logger
}

var _ timebase.LocalClock = (*SystemClock)(nil)

func NewSystemClock(log *slog.Logger) *SystemClock {
	return &SystemClock{log: log}
}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}

func (c *SystemClock) Sleep(duration time.Duration) {
	if duration <= 0 {
		return
	}
	sleep(c.log, duration)
}
