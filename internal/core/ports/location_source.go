package ports

import (
	"context"

	"github.com/99minutos/order-tracker/internal/core/domain"
)

// LocationSource returns the latest known snapshot for an order.
type LocationSource interface {
	// Fetch performs exactly one request. Transport, status and decoding
	// failures are returned as errors; a snapshot without location is not an error.
	Fetch(ctx context.Context, orderID string) (*domain.Snapshot, error)
}
