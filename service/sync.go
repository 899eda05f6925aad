package service

import (
	"context"
	"log/slog"
	"time"

	"example.com/serial-time/base/timebase"
	"example.com/serial-time/core/sync"
	"example.com/serial-time/driver/serial"
)

// Syncer performs a single synchronization of the peripheral.
type Syncer struct {
	Log     *slog.Logger
	Clock   timebase.LocalClock
	Lister  serial.Lister
	Open    func(device string, baud int) (serial.Port, error)
	Metrics *sync.Metrics
}

func (s *Syncer) resolve(ctx context.Context, cfg Config) (string, error) {
	if cfg.Device != "" {
		return cfg.Device, nil
	}
	r, err := serial.NewResolver(s.Log, s.Lister, cfg.DevicePattern)
	if err != nil {
		return "", err
	}
	return r.Resolve(ctx)
}

func (s *Syncer) Run(ctx context.Context, cfg Config) (target time.Time, err error) {
	defer func() {
		s.Metrics.RecordOutcome(err)
	}()

	dev, err := s.resolve(ctx, cfg)
	if err != nil {
		return time.Time{}, err
	}
	s.Log.LogAttrs(ctx, slog.LevelInfo, "serial device",
		slog.String("device", dev),
		slog.Int("baud", cfg.BaudRate),
	)

	port, err := s.Open(dev, cfg.BaudRate)
	if err != nil {
		return time.Time{}, err
	}
	defer func() {
		if cerr := port.Close(); cerr != nil {
			s.Log.LogAttrs(ctx, slog.LevelDebug, "failed to close serial device",
				slog.String("device", dev), slog.Any("error", cerr))
		}
	}()

	sched := &sync.Scheduler{
		Log:     s.Log,
		Clock:   s.Clock,
		Config:  sync.Config{MinLeadTime: cfg.MinLeadTime},
		Metrics: s.Metrics,
		Device:  dev,
	}
	return sched.Run(ctx, port)
}
