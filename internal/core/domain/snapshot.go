package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")
var ErrOrderNotFound = errors.New("order not found")
var ErrUnexpectedStatus = errors.New("unexpected response status")
var ErrMalformedPayload = errors.New("malformed tracking payload")

// ErrStatusUnavailable marks a response whose JSON body carries no status,
// such as a {"detail": ...} error body. The status badge is cleared.
var ErrStatusUnavailable = errors.New("response carries no order status")

var validate = validator.New()

// LatLng is a geographic point in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether p is finite and inside the WGS84 range.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// SnapshotLocation is the optional position block of a Snapshot. The API
// serialises coordinates as decimal strings.
type SnapshotLocation struct {
	Latitude  string `json:"latitude"  validate:"required,latitude"`
	Longitude string `json:"longitude" validate:"required,longitude"`
	Timestamp string `json:"timestamp"`
}

// Point parses the coordinate strings. Any non-numeric or out of range value
// yields ErrInvalidCoordinates; the returned point is never NaN.
func (l SnapshotLocation) Point() (LatLng, error) {
	if err := validate.Struct(l); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return LatLng{}, fmt.Errorf("%w: %s", ErrInvalidCoordinates, fieldErrors(ve))
		}
		return LatLng{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}

	lat, err := parseCoordinate(l.Latitude)
	if err != nil {
		return LatLng{}, fmt.Errorf("latitude %q: %w", l.Latitude, err)
	}
	lng, err := parseCoordinate(l.Longitude)
	if err != nil {
		return LatLng{}, fmt.Errorf("longitude %q: %w", l.Longitude, err)
	}
	p := LatLng{Lat: lat, Lng: lng}
	if !p.Valid() {
		return LatLng{}, fmt.Errorf("(%s, %s) out of range: %w", l.Latitude, l.Longitude, ErrInvalidCoordinates)
	}
	return p, nil
}

// TimestampLabel returns the timestamp text or EmptyLabel.
func (l SnapshotLocation) TimestampLabel() string {
	if l.Timestamp == "" {
		return EmptyLabel
	}
	return l.Timestamp
}

// fieldErrors converts validation failures into a readable message.
func fieldErrors(ve validator.ValidationErrors) string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s must be a valid %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidCoordinates
	}
	return v, nil
}

// Snapshot is one poll result for an order. A nil Location means the order
// has not been located yet.
type Snapshot struct {
	OrderID  string            `json:"order_id,omitempty"`
	Status   Status            `json:"status"`
	Location *SnapshotLocation `json:"location,omitempty"`
}
