// Package metrics contains Prometheus metrics infrastructure
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the video bot
type Metrics struct {
	// Session lifecycle metrics
	SessionsStarted    prometheus.Counter
	SessionsSuperseded prometheus.Counter
	StaleDecisions     prometheus.Counter

	// Delivery metrics, labeled by mode ("original" or "compressed")
	Deliveries *prometheus.CounterVec

	// Transcode metrics
	TranscodeFailures prometheus.Counter
	TranscodeDuration prometheus.Histogram

	// Ingest metrics
	DownloadErrors prometheus.Counter
}

// NewMetrics creates a Metrics instance registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "videobot_sessions_started_total",
			Help: "Total number of media sessions started by uploads",
		}),
		SessionsSuperseded: factory.NewCounter(prometheus.CounterOpts{
			Name: "videobot_sessions_superseded_total",
			Help: "Total number of pending sessions replaced by a newer upload",
		}),
		StaleDecisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "videobot_stale_decisions_total",
			Help: "Total number of decision clicks with no stored session",
		}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "videobot_deliveries_total",
			Help: "Total number of files delivered to users",
		}, []string{"mode"}),
		TranscodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "videobot_transcode_failures_total",
			Help: "Total number of failed ffmpeg runs",
		}),
		TranscodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "videobot_transcode_duration_seconds",
			Help:    "Duration of ffmpeg runs",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
		DownloadErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "videobot_download_errors_total",
			Help: "Total number of failed media downloads during ingest",
		}),
	}
}
