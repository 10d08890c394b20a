package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

func TestRecorder_CycleCompleted(t *testing.T) {
	r := NewRecorder()
	before := testutil.ToFloat64(PollCyclesTotal.WithLabelValues("ok"))

	r.CycleCompleted("ok", 20*time.Millisecond)
	r.CycleCompleted("ok", 30*time.Millisecond)

	if got := testutil.ToFloat64(PollCyclesTotal.WithLabelValues("ok")) - before; got != 2 {
		t.Errorf("expected 2 ok cycles, got %v", got)
	}
}

func TestRecorder_TickSkippedAndFrames(t *testing.T) {
	r := NewRecorder()
	skipped := testutil.ToFloat64(PollSkippedTotal)
	frames := testutil.ToFloat64(AnimationFramesTotal)

	r.TickSkipped()
	r.FrameRendered()
	r.FrameRendered()

	if got := testutil.ToFloat64(PollSkippedTotal) - skipped; got != 1 {
		t.Errorf("skipped: got %v", got)
	}
	if got := testutil.ToFloat64(AnimationFramesTotal) - frames; got != 2 {
		t.Errorf("frames: got %v", got)
	}
}

func TestRecorder_RouteChanged(t *testing.T) {
	NewRecorder().RouteChanged(7)
	if got := testutil.ToFloat64(RoutePoints); got != 7 {
		t.Errorf("route points: got %v", got)
	}
}

func TestRecorder_StatusRenderedKeepsOneActive(t *testing.T) {
	r := NewRecorder()

	r.StatusRendered(domain.StatusInTransit)
	r.StatusRendered(domain.StatusDelivered)

	if got := testutil.ToFloat64(StatusInfo.WithLabelValues("en_camino")); got != 0 {
		t.Errorf("previous status must be reset, got %v", got)
	}
	if got := testutil.ToFloat64(StatusInfo.WithLabelValues("entregado")); got != 1 {
		t.Errorf("current status must be active, got %v", got)
	}

	r.StatusRendered("")
	if got := testutil.ToFloat64(StatusInfo.WithLabelValues("-")); got != 1 {
		t.Errorf("empty status is tracked as -, got %v", got)
	}
}

func TestRecorder_StatusRenderedBucketsUnknownTags(t *testing.T) {
	r := NewRecorder()

	r.StatusRendered("in_orbit")
	if got := testutil.ToFloat64(StatusInfo.WithLabelValues("other")); got != 1 {
		t.Errorf("unknown status must be tracked as other, got %v", got)
	}
	r.StatusRendered("lost_at_sea")
	if got := testutil.ToFloat64(StatusInfo.WithLabelValues("other")); got != 1 {
		t.Errorf("other must stay active across unknown tags, got %v", got)
	}

	before := testutil.CollectAndCount(StatusInfo)
	r.StatusRendered("teleported")
	if got := testutil.CollectAndCount(StatusInfo); got != before {
		t.Errorf("unknown tags must not add series: %d -> %d", before, got)
	}

	r.StatusRendered(domain.StatusPending)
	if got := testutil.ToFloat64(StatusInfo.WithLabelValues("other")); got != 0 {
		t.Errorf("other must be reset once a known status shows, got %v", got)
	}
}
