package ports

import (
	"context"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
)

type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error

	Update(ctx context.Context, aggregate *rider.Rider) error

	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetAllFree locks and returns eligible riders that have no live assignment,
	// skipping riders locked by concurrent transactions.
	GetAllFree(ctx context.Context) ([]*rider.Rider, error)
}
