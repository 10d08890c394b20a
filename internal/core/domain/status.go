package domain

// Status is the order lifecycle tag reported by the tracking API.
type Status string

const (
	StatusPending   Status = "pendiente"
	StatusInTransit Status = "en_camino"
	StatusDelivered Status = "entregado"
	StatusCancelled Status = "cancelado"
)

const (
	// DefaultStatusColor is used for empty or unrecognised statuses.
	DefaultStatusColor = "#2e7d32"

	// backgroundAlpha is appended to a #rrggbb color to render the badge
	// background translucent (0x20 ≈ 12% opacity).
	backgroundAlpha = "20"

	// EmptyLabel is rendered in any display region with no value yet.
	EmptyLabel = "-"
)

// statusColors maps each known status to its badge color.
var statusColors = map[Status]string{
	StatusPending:   "#f39c12",
	StatusInTransit: "#2980b9",
	StatusDelivered: "#27ae60",
	StatusCancelled: "#c0392b",
}

// StatusStyle is the pair of colors applied to the status badge.
type StatusStyle struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// Label returns the text shown in the status badge.
func (s Status) Label() string {
	if s == "" {
		return EmptyLabel
	}
	return string(s)
}

// Known reports whether s belongs to the fixed status vocabulary.
func (s Status) Known() bool {
	_, ok := statusColors[s]
	return ok
}

// Color returns the badge color for s, falling back to DefaultStatusColor.
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return DefaultStatusColor
}

// Style returns the foreground/background pair for s.
func (s Status) Style() StatusStyle {
	c := s.Color()
	return StatusStyle{Foreground: c, Background: c + backgroundAlpha}
}

// Lifecycle codes stored by the tracking backend. They carry no badge color.
const (
	statusCodeDelivered Status = "DELIVERED"
	statusCodeCancelled Status = "CANCELLED"
)

// IsTerminal reports whether no further movement is expected for the order.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, statusCodeDelivered, statusCodeCancelled:
		return true
	}
	return false
}
