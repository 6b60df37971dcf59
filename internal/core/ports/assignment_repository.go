package ports

import (
	"context"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
)

type AssignmentRepository interface {
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	Update(ctx context.Context, aggregate *assignment.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrder returns the live assignment of an order or an ObjectNotFoundError.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)
}
