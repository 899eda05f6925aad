package sync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/serial-time/base/metrics"
	"example.com/serial-time/base/syncerr"
)

type Metrics struct {
	runs         *prometheus.CounterVec
	targetLead   prometheus.Gauge
	remaining    prometheus.Gauge
	wakeLateness prometheus.Gauge
	targetTime   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.SyncRunsN,
			Help: metrics.SyncRunsH,
		}, []string{metrics.OutcomeLabel}),
		targetLead: f.NewGauge(prometheus.GaugeOpts{
			Name: metrics.SyncTargetLeadN,
			Help: metrics.SyncTargetLeadH,
		}),
		remaining: f.NewGauge(prometheus.GaugeOpts{
			Name: metrics.SyncRemainingN,
			Help: metrics.SyncRemainingH,
		}),
		wakeLateness: f.NewGauge(prometheus.GaugeOpts{
			Name: metrics.SyncWakeLatenessN,
			Help: metrics.SyncWakeLatenessH,
		}),
		targetTime: f.NewGauge(prometheus.GaugeOpts{
			Name: metrics.SyncTargetTimeN,
			Help: metrics.SyncTargetTimeH,
		}),
	}
}

// RecordOutcome counts a finished run. A nil err counts as success.
func (m *Metrics) RecordOutcome(err error) {
	if m == nil {
		return
	}
	outcome := metrics.OutcomeOK
	if err != nil {
		if k, ok := syncerr.KindOf(err); ok {
			outcome = k.String()
		} else {
			outcome = "error"
		}
	}
	m.runs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeTarget(lead time.Duration) {
	if m == nil {
		return
	}
	m.targetLead.Set(lead.Seconds())
}

func (m *Metrics) observeCommit(target time.Time) {
	if m == nil {
		return
	}
	m.targetTime.Set(float64(target.Unix()))
}

func (m *Metrics) observeRemaining(remaining time.Duration) {
	if m == nil {
		return
	}
	m.remaining.Set(remaining.Seconds())
}

func (m *Metrics) observeWakeLateness(lateness time.Duration) {
	if m == nil {
		return
	}
	m.wakeLateness.Set(lateness.Seconds())
}
