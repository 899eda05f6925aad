//go:build !linux

package clocks

import (
	"log/slog"
	"time"
)

func sleep(_ *slog.Logger, duration time.Duration) {
	time.Sleep(duration)
}
