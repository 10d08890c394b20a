package view

import (
	"sync"
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/core/ports"
)

// TileLayer describes the background tile source of the map.
type TileLayer struct {
	URL     string `json:"url"`
	MaxZoom int    `json:"max_zoom"`
}

// Viewport is the visible area of the map.
type Viewport struct {
	Center domain.LatLng `json:"center"`
	Zoom   int           `json:"zoom"`

	// TransitionMS is the duration of the last fly-to in milliseconds.
	TransitionMS int64 `json:"transition_ms"`
}

// MapConfig sets the initial map state.
type MapConfig struct {
	Center domain.LatLng
	Zoom   int
	Tile   TileLayer
}

// Map is an in-memory map surface: one marker, a viewport and the route
// polyline. It implements ports.MapRenderer and is safe for concurrent use.
type Map struct {
	mirror ports.ViewMirror

	mu        sync.RWMutex
	tile      TileLayer
	viewport  Viewport
	marker    domain.LatLng
	route     []domain.LatLng
	updatedAt time.Time
}

// NewMap creates a map centered on cfg.Center with the marker placed there.
// mirror may be nil.
func NewMap(cfg MapConfig, mirror ports.ViewMirror) *Map {
	return &Map{
		mirror:    mirror,
		tile:      cfg.Tile,
		viewport:  Viewport{Center: cfg.Center, Zoom: cfg.Zoom},
		marker:    cfg.Center,
		updatedAt: time.Now().UTC(),
	}
}

func (m *Map) Marker() domain.LatLng {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.marker
}

// SetMarker ignores invalid points so NaN can never be displayed.
func (m *Map) SetMarker(p domain.LatLng) {
	if !p.Valid() {
		return
	}
	m.mu.Lock()
	m.marker = p
	m.updatedAt = time.Now().UTC()
	m.mu.Unlock()
}

func (m *Map) FlyTo(p domain.LatLng, d time.Duration) {
	if !p.Valid() {
		return
	}
	m.mu.Lock()
	m.viewport.Center = p
	m.viewport.TransitionMS = d.Milliseconds()
	m.updatedAt = time.Now().UTC()
	m.mu.Unlock()

	m.publish(map[string]any{"lat": p.Lat, "lng": p.Lng})
}

func (m *Map) SetRoute(points []domain.LatLng) {
	route := make([]domain.LatLng, len(points))
	copy(route, points)

	m.mu.Lock()
	m.route = route
	m.updatedAt = time.Now().UTC()
	m.mu.Unlock()

	m.publish(map[string]any{"route_length": len(route)})
}

// MapState is a consistent copy of the map surface.
type MapState struct {
	Tile      TileLayer       `json:"tile"`
	Viewport  Viewport        `json:"viewport"`
	Marker    domain.LatLng   `json:"marker"`
	Route     []domain.LatLng `json:"route"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (m *Map) State() MapState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	route := make([]domain.LatLng, len(m.route))
	copy(route, m.route)
	return MapState{
		Tile:      m.tile,
		Viewport:  m.viewport,
		Marker:    m.marker,
		Route:     route,
		UpdatedAt: m.updatedAt,
	}
}

func (m *Map) publish(fields map[string]any) {
	if m.mirror != nil {
		m.mirror.Mirror(fields)
	}
}
