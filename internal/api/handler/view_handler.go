package handler

import (
	"context"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/infrastructure/view"
)

const (
	geohashPrecision = 9
	routeColor       = "#3498db"
	routeWeight      = 4
)

// MapReader exposes the rendered map surface.
type MapReader interface {
	State() view.MapState
}

// BoardReader exposes the rendered text regions.
type BoardReader interface {
	State() view.BoardState
}

// MirrorReader reads the view back from the external mirror.
type MirrorReader interface {
	Load(ctx context.Context) (map[string]string, error)
}

// ViewHandler serves the current rendered view of the tracked order.
type ViewHandler struct {
	mapView MapReader
	board   BoardReader
	mirror  MirrorReader
}

// NewViewHandler creates a ViewHandler. mirror may be nil when the Redis
// mirror is disabled.
func NewViewHandler(mapView MapReader, board BoardReader, mirror MirrorReader) *ViewHandler {
	return &ViewHandler{mapView: mapView, board: board, mirror: mirror}
}

// Get handles GET /v1/view.
//
// @Summary      Current rendered view
// @Tags         view
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /v1/view [get]
func (h *ViewHandler) Get(c echo.Context) error {
	m := h.mapView.State()
	b := h.board.State()

	resp := viewResponse{
		OrderID: b.OrderID,
		Status: statusResponse{
			Text:       b.Status,
			Foreground: b.Style.Foreground,
			Background: b.Style.Background,
		},
		Timestamp: b.Timestamp,
		Marker: markerResponse{
			Lat:     m.Marker.Lat,
			Lng:     m.Marker.Lng,
			Geohash: geohash.EncodeWithPrecision(m.Marker.Lat, m.Marker.Lng, geohashPrecision),
		},
		Viewport:    m.Viewport,
		Tile:        m.Tile,
		RouteLength: len(m.Route),
		RouteMeters: math.Round(domain.RouteLength(m.Route)*10) / 10,
		UpdatedAt:   m.UpdatedAt,
	}
	if n := len(m.Route); n > 0 {
		last := m.Route[n-1]
		resp.LastPosition = &last
	}

	return c.JSON(http.StatusOK, resp)
}

// Route handles GET /v1/view/route.
//
// @Summary      Traveled route as a GeoJSON LineString feature
// @Tags         view
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/view/route [get]
func (h *ViewHandler) Route(c echo.Context) error {
	m := h.mapView.State()

	line := make(orb.LineString, 0, len(m.Route))
	for _, p := range m.Route {
		line = append(line, orb.Point{p.Lng, p.Lat})
	}

	f := geojson.NewFeature(line)
	f.Properties["order_id"] = h.board.State().OrderID
	f.Properties["color"] = routeColor
	f.Properties["weight"] = routeWeight
	f.Properties["points"] = len(m.Route)
	f.Properties["length_m"] = math.Round(domain.RouteLength(m.Route)*10) / 10

	c.Response().Header().Set(echo.HeaderContentType, "application/geo+json")
	return c.JSON(http.StatusOK, f)
}

// Mirror handles GET /v1/view/mirror.
//
// @Summary      View fields mirrored to Redis
// @Tags         view
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /v1/view/mirror [get]
func (h *ViewHandler) Mirror(c echo.Context) error {
	if h.mirror == nil {
		return echo.NewHTTPError(http.StatusNotFound, "view mirror disabled")
	}
	fields, err := h.mirror.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fields)
}
