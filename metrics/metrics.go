// Package metrics exposes combat counters for the headless server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// stateWritesRejected counts unconditioned state writes that were refused.
	stateWritesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_state_writes_rejected_total",
		Help: "Total number of state writes refused by the lock or protection guard",
	}, []string{"reason"})

	detections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_detections_total",
		Help: "Total number of perception casts by result",
	}, []string{"result"})

	attackWindows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_attack_windows_total",
		Help: "Total number of attack window callbacks by phase",
	}, []string{"phase"})

	kills = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skirmish_kills_total",
		Help: "Total number of actor deaths by victim kind",
	}, []string{"kind"})

	cueFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skirmish_cue_fallbacks_total",
		Help: "Total number of cues completed by the fallback timer",
	})

	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skirmish_server_clients",
		Help: "Number of connected network clients",
	})

	commandsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skirmish_server_commands_dropped_total",
		Help: "Total number of client commands dropped because the queue was full",
	})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skirmish_server_tick_seconds",
		Help:    "Time spent stepping and syncing one server tick",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
)

// Rejection reasons
const (
	ReasonLocked    = "locked"
	ReasonProtected = "protected"
)

// Detection results
const (
	DetectAcquired = "acquired"
	DetectBlocked  = "blocked"
	DetectMissed   = "missed"
)

// Attack window phases
const (
	PhaseEnter    = "enter"
	PhaseExit     = "exit"
	PhaseResolved = "resolved"
	PhaseNoTarget = "no_target"
)

func RecordRejectedWrite(reason string) {
	stateWritesRejected.WithLabelValues(reason).Inc()
}

func RecordDetection(result string) {
	detections.WithLabelValues(result).Inc()
}

func RecordAttackWindow(phase string) {
	attackWindows.WithLabelValues(phase).Inc()
}

func RecordKill(kind string) {
	kills.WithLabelValues(kind).Inc()
}

func RecordCueFallback() {
	cueFallbacks.Inc()
}

func SetConnectedClients(n int) {
	connectedClients.Set(float64(n))
}

func RecordCommandDropped() {
	commandsDropped.Inc()
}

// ObserveTick records how long one server tick took, in seconds.
func ObserveTick(seconds float64) {
	tickDuration.Observe(seconds)
}
