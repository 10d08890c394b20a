package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/core/ports"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultFlyDuration  = 600 * time.Millisecond
)

var ErrPollerRunning = errors.New("poller already running")

// PollerConfig holds the tunables of a LocationPoller.
type PollerConfig struct {
	OrderID        string
	Interval       time.Duration
	FlyDuration    time.Duration
	StopOnTerminal bool
}

// LocationPoller periodically fetches one order's snapshot and renders it on
// a map and a display.
type LocationPoller struct {
	cfg      PollerConfig
	source   ports.LocationSource
	mapView  ports.MapRenderer
	display  ports.Display
	animator *MarkerAnimator
	observer Observer
	log      zerolog.Logger

	// inflight admits a single cycle at a time.
	inflight *semaphore.Weighted
	cycles   atomic.Uint64

	mu    sync.Mutex
	route []domain.LatLng

	runMu   sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewLocationPoller wires a poller. observer may be nil.
func NewLocationPoller(
	cfg PollerConfig,
	source ports.LocationSource,
	mapView ports.MapRenderer,
	display ports.Display,
	animator *MarkerAnimator,
	observer Observer,
	log zerolog.Logger,
) *LocationPoller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.FlyDuration < 0 {
		cfg.FlyDuration = defaultFlyDuration
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &LocationPoller{
		cfg:      cfg,
		source:   source,
		mapView:  mapView,
		display:  display,
		animator: animator,
		observer: observer,
		log:      log.With().Str("order_id", cfg.OrderID).Logger(),
		inflight: semaphore.NewWeighted(1),
	}
}

// FetchLocation runs exactly one poll cycle, waiting for any cycle already in
// flight to finish first.
func (p *LocationPoller) FetchLocation(ctx context.Context) error {
	if err := p.inflight.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.inflight.Release(1)

	_, err := p.cycle(ctx)
	return err
}

// Route returns a copy of the accepted positions in arrival order.
func (p *LocationPoller) Route() []domain.LatLng {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.LatLng, len(p.route))
	copy(out, p.route)
	return out
}

// Run renders the order id, polls immediately and then once per interval
// until ctx is cancelled or Stop is called. Cycle failures are logged and
// never end the loop. Ticks that fire while a cycle is still running are
// skipped.
func (p *LocationPoller) Run(ctx context.Context) error {
	p.runMu.Lock()
	if p.cancel != nil {
		p.runMu.Unlock()
		return ErrPollerRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	p.cancel = cancel
	p.stopped = stopped
	p.runMu.Unlock()

	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		if p.animator != nil {
			p.animator.Stop()
		}
		p.runMu.Lock()
		p.cancel = nil
		p.stopped = nil
		p.runMu.Unlock()
		close(stopped)
		p.log.Info().Uint64("cycles", p.cycles.Load()).Msg("poller stopped")
	}()

	p.display.SetOrderID(p.cfg.OrderID)
	p.log.Info().Dur("interval", p.cfg.Interval).Msg("poller started")

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.tick(ctx, cancel, &wg)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.tick(ctx, cancel, &wg)
		}
	}
}

// Stop ends a running Run loop and waits for it to return. Calling Stop on an
// idle poller is a no-op.
func (p *LocationPoller) Stop() {
	p.runMu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (p *LocationPoller) tick(ctx context.Context, stop context.CancelFunc, wg *sync.WaitGroup) {
	if ctx.Err() != nil {
		return
	}
	if !p.inflight.TryAcquire(1) {
		p.observer.TickSkipped()
		p.log.Warn().Msg("previous cycle still in flight, tick skipped")
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer p.inflight.Release(1)

		status, err := p.cycle(ctx)
		if err != nil {
			if ctx.Err() == nil {
				p.log.Error().Err(err).Msg("failed to fetch location")
			}
			return
		}
		if p.cfg.StopOnTerminal && status.IsTerminal() {
			p.log.Info().Str("status", string(status)).Msg("terminal status reached, stopping")
			stop()
		}
	}()
}

// cycle is one fetch-and-render pass. Callers must hold inflight.
func (p *LocationPoller) cycle(ctx context.Context) (domain.Status, error) {
	n := p.cycles.Add(1)
	start := time.Now()

	snap, err := p.source.Fetch(ctx, p.cfg.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrStatusUnavailable) {
			p.renderStatus("")
		}
		p.observer.CycleCompleted(ResultError, time.Since(start))
		return "", fmt.Errorf("cycle %d: %w", n, err)
	}

	p.renderStatus(snap.Status)

	if snap.Location == nil {
		p.log.Debug().Uint64("cycle", n).Str("status", string(snap.Status)).Msg("order not located yet")
		p.observer.CycleCompleted(ResultNoLocation, time.Since(start))
		return snap.Status, nil
	}

	point, err := snap.Location.Point()
	if err != nil {
		p.observer.CycleCompleted(ResultError, time.Since(start))
		return snap.Status, fmt.Errorf("cycle %d: %w", n, err)
	}

	if p.animator != nil {
		// The animation outlives the fetch; Run teardown and newer targets end it.
		p.animator.Animate(context.WithoutCancel(ctx), point)
	} else {
		p.mapView.SetMarker(point)
	}
	p.mapView.FlyTo(point, p.cfg.FlyDuration)

	p.mu.Lock()
	p.route = append(p.route, point)
	route := make([]domain.LatLng, len(p.route))
	copy(route, p.route)
	p.mu.Unlock()

	p.mapView.SetRoute(route)
	p.observer.RouteChanged(len(route))

	p.display.SetTimestamp(snap.Location.TimestampLabel())

	p.log.Debug().
		Uint64("cycle", n).
		Str("status", string(snap.Status)).
		Float64("lat", point.Lat).
		Float64("lng", point.Lng).
		Int("route_points", len(route)).
		Msg("location rendered")
	p.observer.CycleCompleted(ResultOK, time.Since(start))

	return snap.Status, nil
}

func (p *LocationPoller) renderStatus(s domain.Status) {
	p.display.SetStatus(s.Label(), s.Style())
	p.observer.StatusRendered(s)
}
