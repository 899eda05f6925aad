package benchmark

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

type lateClock struct {
	now      time.Time
	oversl   time.Duration
	nowCalls int
}

func (c *lateClock) Now() time.Time {
	c.nowCalls++
	return c.now
}

func (c *lateClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d + c.oversl)
}

func TestRunSleepBenchmark(t *testing.T) {
	clk := &lateClock{
		now:    time.Date(2024, time.January, 1, 0, 0, 0, 400_000_000, time.UTC),
		oversl: 250 * time.Microsecond,
	}
	r, err := RunSleepBenchmark(context.Background(), slog.New(slog.DiscardHandler),
		clk, 5, 100*time.Microsecond)
	if err != nil {
		t.Fatal(err)
	}
	if r.Histogram.TotalCount() != 5 {
		t.Errorf("recorded %d samples, want 5", r.Histogram.TotalCount())
	}
	if r.Early != 0 || r.Missed != 0 {
		t.Errorf("early = %d, missed = %d", r.Early, r.Missed)
	}
	if v := r.Histogram.ValueAtQuantile(50); !r.Histogram.ValuesAreEquivalent(v, 250) {
		t.Errorf("median lateness = %dµs, want 250µs", v)
	}
	want := time.Date(2024, time.January, 1, 0, 0, 5, 250_000, time.UTC)
	if !clk.now.Equal(want) {
		t.Errorf("clock at %v, want %v", clk.now, want)
	}
}

func TestRunSleepBenchmarkEarlyWakeup(t *testing.T) {
	clk := &lateClock{
		now:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		oversl: -10 * time.Microsecond,
	}
	r, err := RunSleepBenchmark(context.Background(), slog.New(slog.DiscardHandler),
		clk, 3, 100*time.Microsecond)
	if err != nil {
		t.Fatal(err)
	}
	if r.Early != 3 {
		t.Errorf("early = %d, want 3", r.Early)
	}
	if r.Histogram.Max() != 0 {
		t.Errorf("max = %d, want 0", r.Histogram.Max())
	}
}
