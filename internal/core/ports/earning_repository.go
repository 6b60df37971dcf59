package ports

import (
	"context"

	"mealdispatch/internal/core/domain/model/earning"
	"mealdispatch/internal/core/domain/model/kernel"
)

type EarningRepository interface {
	Add(ctx context.Context, aggregate *earning.Earning) error

	Update(ctx context.Context, aggregate *earning.Earning) error

	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetUnpaidByRestaurant locks and returns every unpaid earning of a restaurant.
	GetUnpaidByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*earning.Earning, error)
}
