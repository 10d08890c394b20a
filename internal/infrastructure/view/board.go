package view

import (
	"sync"

	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/core/ports"
)

// Board holds the three text regions next to the map: order id, status
// badge and last-position timestamp. It implements ports.Display.
type Board struct {
	mirror ports.ViewMirror

	mu        sync.RWMutex
	orderID   string
	status    string
	style     domain.StatusStyle
	timestamp string
}

// NewBoard returns a board with every region showing the empty label.
func NewBoard(mirror ports.ViewMirror) *Board {
	return &Board{
		mirror:    mirror,
		orderID:   domain.EmptyLabel,
		status:    domain.EmptyLabel,
		style:     domain.Status("").Style(),
		timestamp: domain.EmptyLabel,
	}
}

func (b *Board) SetOrderID(id string) {
	b.mu.Lock()
	b.orderID = id
	b.mu.Unlock()
	b.publish(map[string]any{"order_id": id})
}

func (b *Board) SetStatus(text string, style domain.StatusStyle) {
	b.mu.Lock()
	b.status = text
	b.style = style
	b.mu.Unlock()
	b.publish(map[string]any{
		"status":     text,
		"foreground": style.Foreground,
		"background": style.Background,
	})
}

func (b *Board) SetTimestamp(text string) {
	b.mu.Lock()
	b.timestamp = text
	b.mu.Unlock()
	b.publish(map[string]any{"timestamp": text})
}

// BoardState is a consistent copy of the board regions.
type BoardState struct {
	OrderID   string             `json:"order_id"`
	Status    string             `json:"status"`
	Style     domain.StatusStyle `json:"style"`
	Timestamp string             `json:"timestamp"`
}

func (b *Board) State() BoardState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BoardState{
		OrderID:   b.orderID,
		Status:    b.status,
		Style:     b.style,
		Timestamp: b.timestamp,
	}
}

func (b *Board) publish(fields map[string]any) {
	if b.mirror != nil {
		b.mirror.Mirror(fields)
	}
}
