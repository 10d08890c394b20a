package service

import (
	"context"
	"sync"
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/core/ports"
)

const (
	defaultAnimationDuration = 800 * time.Millisecond
	defaultFrameInterval     = 16 * time.Millisecond
)

// MarkerAnimator moves the map marker toward a target by linear
// interpolation, one frame per tick. Only one animation runs at a time: a new
// Animate call cancels the running one and starts from wherever the marker
// currently is.
type MarkerAnimator struct {
	renderer ports.MapRenderer
	duration time.Duration
	frame    time.Duration
	onFrame  func()
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	target domain.LatLng
}

// NewMarkerAnimator returns an animator for renderer. A non-positive duration
// disables interpolation and moves the marker in a single step.
func NewMarkerAnimator(renderer ports.MapRenderer, duration, frame time.Duration, onFrame func()) *MarkerAnimator {
	if frame <= 0 {
		frame = defaultFrameInterval
	}
	if onFrame == nil {
		onFrame = func() {}
	}
	return &MarkerAnimator{
		renderer: renderer,
		duration: duration,
		frame:    frame,
		onFrame:  onFrame,
		now:      time.Now,
	}
}

// Animate starts moving the marker to target and returns a channel that is
// closed when this animation ends, either on reaching target or on being
// superseded.
func (a *MarkerAnimator) Animate(ctx context.Context, target domain.LatLng) <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.haltLocked()
	a.target = target

	done := make(chan struct{})
	if a.duration <= 0 {
		a.renderer.SetMarker(target)
		a.onFrame()
		close(done)
		return done
	}

	from := a.renderer.Marker()
	animCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = done

	go a.run(animCtx, from, target, done)
	return done
}

// Stop cancels the running animation, if any, and places the marker on the
// last requested target.
func (a *MarkerAnimator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.done == nil {
		return
	}
	a.haltLocked()
	a.renderer.SetMarker(a.target)
}

// haltLocked cancels the current animation and waits for its goroutine so no
// stale frame can land after the caller proceeds.
func (a *MarkerAnimator) haltLocked() {
	if a.cancel != nil {
		a.cancel()
		<-a.done
	}
	a.cancel = nil
	a.done = nil
}

func (a *MarkerAnimator) run(ctx context.Context, from, to domain.LatLng, done chan struct{}) {
	defer close(done)

	start := a.now()
	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			progress := float64(a.now().Sub(start)) / float64(a.duration)
			if progress > 1 {
				progress = 1
			}
			a.renderer.SetMarker(domain.Interpolate(from, to, progress))
			a.onFrame()
			if progress >= 1 {
				return
			}
		}
	}
}
