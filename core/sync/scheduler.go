package sync

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"example.com/serial-time/base/syncerr"
	"example.com/serial-time/base/timebase"
	"example.com/serial-time/net/frame"
)

type Config struct {
	MinLeadTime time.Duration
}

// Scheduler announces the next second boundary to the peripheral and commits
// it when the boundary arrives. A Scheduler performs at most one run per Run
// call and never retries.
type Scheduler struct {
	Log     *slog.Logger
	Clock   timebase.LocalClock
	Config  Config
	Metrics *Metrics

	// Device names the transport in errors and log records.
	Device string
}

func write(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}
	return err
}

// Run writes the frame for the selected target to w, sleeps until the target
// and writes the commit byte. The commit byte is never written if the target
// has already passed once the frame is out.
func (s *Scheduler) Run(ctx context.Context, w io.Writer) (time.Time, error) {
	now := s.Clock.Now()
	target, dist, err := NextTarget(now, s.Config.MinLeadTime)
	if err != nil {
		return time.Time{}, err
	}
	s.Metrics.observeTarget(dist)
	s.Log.LogAttrs(ctx, slog.LevelDebug, "selected sync target",
		slog.Time("now", now),
		slog.Time("target", target),
		slog.Duration("lead", dist),
	)

	buf := frame.Encode(target)
	err = write(w, buf)
	if err != nil {
		return time.Time{}, &syncerr.Error{
			Kind:   syncerr.TransportWriteFailed,
			Device: s.Device,
			Target: target,
			Err:    err,
		}
	}

	remaining := target.Sub(s.Clock.Now())
	s.Metrics.observeRemaining(remaining)
	if remaining < 0 {
		return time.Time{}, &syncerr.Error{
			Kind:      syncerr.DeadlineMissed,
			Device:    s.Device,
			Target:    target,
			Lead:      dist,
			Remaining: remaining,
		}
	}
	s.Log.LogAttrs(ctx, slog.LevelDebug, "frame written",
		slog.String("frame", hex.EncodeToString(buf)),
		slog.Duration("remaining", remaining),
	)

	s.Clock.Sleep(remaining)
	lateness := s.Clock.Now().Sub(target)
	s.Metrics.observeWakeLateness(lateness)

	err = write(w, []byte{frame.CommitByte})
	if err != nil {
		return time.Time{}, &syncerr.Error{
			Kind:   syncerr.TransportWriteFailed,
			Device: s.Device,
			Target: target,
			Err:    err,
		}
	}

	s.Metrics.observeCommit(target)
	s.Log.LogAttrs(ctx, slog.LevelInfo, "sync finished",
		slog.Time("target", target),
		slog.Duration("lateness", lateness),
	)
	return target, nil
}
