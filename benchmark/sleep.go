package benchmark

import (
	"context"
	"log/slog"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"example.com/serial-time/base/timebase"
	"example.com/serial-time/core/sync"
)

const maxLatenessMicros = 1_000_000

type SleepResult struct {
	// Lateness of each wake-up relative to its boundary, in microseconds.
	Histogram *hdrhistogram.Histogram
	Early     int
	Missed    int
}

// RunSleepBenchmark schedules n second boundaries the way a sync run does and
// measures how late the clock wakes up at each of them. Nothing is written to a
// device.
func RunSleepBenchmark(ctx context.Context, log *slog.Logger, clk timebase.LocalClock,
	n int, minLead time.Duration) (SleepResult, error) {
	r := SleepResult{Histogram: hdrhistogram.New(1, maxLatenessMicros, 3)}
	for range n {
		target, _, err := sync.NextTarget(clk.Now(), minLead)
		if err != nil {
			return r, err
		}
		remaining := target.Sub(clk.Now())
		if remaining < 0 {
			r.Missed++
			continue
		}
		clk.Sleep(remaining)
		lateness := clk.Now().Sub(target)
		if lateness < 0 {
			r.Early++
			lateness = 0
		}
		us := min(lateness.Microseconds(), maxLatenessMicros)
		err = r.Histogram.RecordValue(us)
		if err != nil {
			return r, err
		}
		log.LogAttrs(ctx, slog.LevelDebug, "woke up",
			slog.Time("target", target), slog.Duration("lateness", lateness))
	}
	return r, nil
}
