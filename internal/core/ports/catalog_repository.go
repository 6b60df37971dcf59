package ports

import (
	"context"

	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
)

type RestaurantRepository interface {
	Add(ctx context.Context, aggregate *catalog.Restaurant) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error)
}

type MealRepository interface {
	Add(ctx context.Context, aggregate *catalog.Meal) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Meal, error)
}
