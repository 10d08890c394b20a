// Package metrics defines and registers all custom Prometheus metrics for the
// order tracker. It is the single source of truth for metric names, labels,
// and help strings.
//
// Collectors are registered with the default Prometheus registry on import
// (promauto); Recorder adapts them to the poller's observer interface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

const namespace = "tracker"

// ── Poll metrics ──────────────────────────────────────────────────────────────

// PollCyclesTotal counts finished poll cycles.
// Label:
//   - result: "ok", "no_location" or "error"
var PollCyclesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_cycles_total",
		Help:      "Total number of location poll cycles, by result.",
	},
	[]string{"result"},
)

// PollSkippedTotal counts timer ticks dropped because a cycle was still in flight.
var PollSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_skipped_total",
		Help:      "Total number of poll ticks skipped while a previous cycle was running.",
	},
)

// FetchDuration measures a whole cycle, request to last render call.
var FetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of a poll cycle from request to render.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Render metrics ────────────────────────────────────────────────────────────

// RoutePoints tracks the number of accepted positions in the traveled route.
var RoutePoints = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "route_points",
		Help:      "Number of points in the traveled route polyline.",
	},
)

// StatusInfo is 1 for the currently displayed status and 0 for the others.
// Label:
//   - status: known status tag, "-" when none was reported, "other" otherwise
var StatusInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "status_info",
		Help:      "Currently displayed order status (1 = active).",
	},
	[]string{"status"},
)

// AnimationFramesTotal counts marker positions written by the animator.
var AnimationFramesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "animation_frames_total",
		Help:      "Total number of marker animation frames rendered.",
	},
)

// Recorder feeds poller events into the collectors above.
type Recorder struct {
	lastStatus string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CycleCompleted(result string, d time.Duration) {
	PollCyclesTotal.WithLabelValues(result).Inc()
	FetchDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (r *Recorder) TickSkipped() {
	PollSkippedTotal.Inc()
}

func (r *Recorder) RouteChanged(n int) {
	RoutePoints.Set(float64(n))
}

// StatusRendered is only called from the poll cycle, which never overlaps
// itself, so lastStatus needs no lock.
func (r *Recorder) StatusRendered(s domain.Status) {
	label := statusLabel(s)
	if r.lastStatus != "" && r.lastStatus != label {
		StatusInfo.WithLabelValues(r.lastStatus).Set(0)
	}
	StatusInfo.WithLabelValues(label).Set(1)
	r.lastStatus = label
}

// statusLabel bounds StatusInfo cardinality to the known vocabulary.
func statusLabel(s domain.Status) string {
	switch {
	case s == "":
		return domain.EmptyLabel
	case s.Known():
		return string(s)
	default:
		return "other"
	}
}

func (r *Recorder) FrameRendered() {
	AnimationFramesTotal.Inc()
}
