package ports

import (
	"time"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

// MapRenderer is the map surface the poller draws on: a single movable
// marker, a viewport and the traveled-route polyline.
type MapRenderer interface {
	// Marker returns the marker's current (possibly mid-animation) position.
	Marker() domain.LatLng
	SetMarker(p domain.LatLng)
	// FlyTo moves the viewport center to p over d, keeping the current zoom.
	FlyTo(p domain.LatLng, d time.Duration)
	// SetRoute replaces the polyline with points, in order.
	SetRoute(points []domain.LatLng)
}

// Display holds the text regions shown next to the map.
type Display interface {
	SetOrderID(id string)
	SetStatus(text string, style domain.StatusStyle)
	SetTimestamp(text string)
}
