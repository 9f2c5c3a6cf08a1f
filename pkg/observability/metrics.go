package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notesbridge",
			Subsystem: "tool",
			Name:      "calls_total",
			Help:      "Total tool invocations by outcome.",
		},
		[]string{"tool", "status"},
	)
	toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notesbridge",
			Subsystem: "tool",
			Name:      "call_duration_seconds",
			Help:      "Tool invocation duration in seconds, including validation.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"tool", "status"},
	)
	scriptRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notesbridge",
			Subsystem: "applescript",
			Name:      "runs_total",
			Help:      "AppleScript executions by outcome.",
		},
		[]string{"status"},
	)
	scriptDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notesbridge",
			Subsystem: "applescript",
			Name:      "run_duration_seconds",
			Help:      "AppleScript execution duration in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
		[]string{"status"},
	)
)

// Tool call statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusInvalid = "invalid"
	StatusTimeout = "timeout"
)

// RegisterMetrics registers all collectors with the default registry. It is
// safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(toolCalls, toolDuration, scriptRuns, scriptDuration)
	})
}

// RecordToolCall records one dispatcher invocation.
func RecordToolCall(tool, status string, duration time.Duration) {
	RegisterMetrics()
	toolCalls.WithLabelValues(tool, status).Inc()
	toolDuration.WithLabelValues(tool, status).Observe(duration.Seconds())
}

// RecordScriptRun records one osascript execution.
func RecordScriptRun(status string, duration time.Duration) {
	RegisterMetrics()
	scriptRuns.WithLabelValues(status).Inc()
	scriptDuration.WithLabelValues(status).Observe(duration.Seconds())
}
