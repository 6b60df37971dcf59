package ports

import (
	"context"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
)

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and holds a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOldestReadyUnassigned locks the oldest ready order without a live assignment,
	// skipping rows locked by concurrent transactions.
	GetOldestReadyUnassigned(ctx context.Context) (*order.Order, error)
}
