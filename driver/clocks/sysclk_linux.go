//go:build linux

package clocks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sys/unix"
)

func sleep(log *slog.Logger, duration time.Duration) {
	deadline := time.Now().Add(duration)
	req := unix.NsecToTimespec(duration.Nanoseconds())
	var rem unix.Timespec
	for {
		err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, 0, &req, &rem)
		if err == nil {
			return
		}
		if !errors.Is(err, unix.EINTR) {
			log.LogAttrs(context.Background(), slog.LevelError,
				"clock_nanosleep failed, falling back to runtime timer",
				slog.Any("error", err))
			time.Sleep(time.Until(deadline))
			return
		}
		req = rem
	}
}
