// ABOUTME: Prometheus instruments for the engine and control server
// ABOUTME: Registered on the default registry, served at /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	PlaybackRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binaural_playback_running",
		Help: "1 while a playback session is active, 0 when idle",
	})
	CarrierHz = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binaural_carrier_hz",
		Help: "Current carrier frequency in Hz",
	})
	BeatHz = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binaural_beat_hz",
		Help: "Current beat frequency in Hz",
	})
	VolumePercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binaural_volume_percent",
		Help: "Current master volume in percent",
	})
	MonitorListeners = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binaural_monitor_listeners",
		Help: "Connected live audio monitor streams",
	})
	EventClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "binaural_event_clients",
		Help: "Connected websocket event clients",
	})
)

// Counters
var (
	SessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_sessions_total",
		Help: "Total playback sessions started",
	})
	RetunesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_retunes_total",
		Help: "Total live parameter updates applied to a running graph",
	})
	FramesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_frames_rendered_total",
		Help: "Total stereo frames rendered to the output device",
	})
	ResumeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_resume_failures_total",
		Help: "Output device resume attempts that failed",
	})
	ReconcileDemotionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_reconcile_demotions_total",
		Help: "Sessions demoted to idle because the output line died",
	})
	WakeLockFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_wakelock_failures_total",
		Help: "Wake lock acquisitions that failed (non-fatal)",
	})
	EventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "binaural_events_dropped_total",
		Help: "Engine events dropped because a subscriber was slow",
	})
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binaural_http_requests_total",
		Help: "Control API requests by status code",
	}, []string{"code"})
)

// Histograms
var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "binaural_http_request_duration_seconds",
		Help:    "Control API request duration by route",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"route"})
)
