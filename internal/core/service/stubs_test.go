package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Scripted location source
// ---------------------------------------------------------------------------

type fetchResult struct {
	snap *domain.Snapshot
	err  error
}

// stubSource replays results in order and repeats the last one forever.
type stubSource struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
	orderID string
	// block, when set, makes Fetch wait until it is closed or ctx ends.
	block chan struct{}
}

func (s *stubSource) Fetch(ctx context.Context, orderID string) (*domain.Snapshot, error) {
	s.mu.Lock()
	s.calls++
	s.orderID = orderID
	i := s.calls - 1
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	r := s.results[i]
	block := s.block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.snap, r.err
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ---------------------------------------------------------------------------
// Recording map + display
// ---------------------------------------------------------------------------

type stubMap struct {
	mu      sync.Mutex
	marker  domain.LatLng
	moves   []domain.LatLng
	flights []domain.LatLng
	route   []domain.LatLng
}

func (m *stubMap) Marker() domain.LatLng {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marker
}

func (m *stubMap) SetMarker(p domain.LatLng) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marker = p
	m.moves = append(m.moves, p)
}

func (m *stubMap) FlyTo(p domain.LatLng, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flights = append(m.flights, p)
}

func (m *stubMap) SetRoute(points []domain.LatLng) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = points
}

func (m *stubMap) snapshot() (marker domain.LatLng, moves, flights, route []domain.LatLng) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marker, append([]domain.LatLng(nil), m.moves...), append([]domain.LatLng(nil), m.flights...), append([]domain.LatLng(nil), m.route...)
}

type stubDisplay struct {
	mu        sync.Mutex
	orderID   string
	status    string
	style     domain.StatusStyle
	timestamp string
	statusSet int
}

func newStubDisplay() *stubDisplay {
	return &stubDisplay{orderID: "-", status: "-", timestamp: "-"}
}

func (d *stubDisplay) SetOrderID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orderID = id
}

func (d *stubDisplay) SetStatus(text string, style domain.StatusStyle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = text
	d.style = style
	d.statusSet++
}

func (d *stubDisplay) SetTimestamp(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timestamp = text
}

func (d *stubDisplay) Timestamp() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timestamp
}

// ---------------------------------------------------------------------------
// Counting observer
// ---------------------------------------------------------------------------

type stubObserver struct {
	mu      sync.Mutex
	results []string
	skipped int
	frames  int
}

func (o *stubObserver) CycleCompleted(result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

func (o *stubObserver) TickSkipped() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped++
}

func (o *stubObserver) RouteChanged(int)             {}
func (o *stubObserver) StatusRendered(domain.Status) {}

func (o *stubObserver) FrameRendered() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frames++
}

func (o *stubObserver) Skipped() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.skipped
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errNetwork = errors.New("connection refused")

func located(status, lat, lng, ts string) fetchResult {
	return fetchResult{snap: &domain.Snapshot{
		Status:   domain.Status(status),
		Location: &domain.SnapshotLocation{Latitude: lat, Longitude: lng, Timestamp: ts},
	}}
}

func unlocated(status string) fetchResult {
	return fetchResult{snap: &domain.Snapshot{Status: domain.Status(status)}}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}
