package handler

import (
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/infrastructure/view"
)

type statusResponse struct {
	Text       string `json:"text"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

type markerResponse struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Geohash string  `json:"geohash"`
}

type viewResponse struct {
	OrderID      string         `json:"order_id"`
	Status       statusResponse `json:"status"`
	Timestamp    string         `json:"timestamp"`
	Marker       markerResponse `json:"marker"`
	Viewport     view.Viewport  `json:"viewport"`
	Tile         view.TileLayer `json:"tile"`
	RouteLength  int            `json:"route_length"`
	RouteMeters  float64        `json:"route_length_m"`
	UpdatedAt    time.Time      `json:"updated_at"`
	LastPosition *domain.LatLng `json:"last_position,omitempty"`
}
