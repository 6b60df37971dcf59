package catalogrepo

import (
	"context"
	"errors"

	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type GormRestaurantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRestaurantRepository creates a repository for restaurant persistence.
func NewGormRestaurantRepository(db *gorm.DB, tracker aggregateTracker) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db, tracker: tracker}
}

// Add inserts a new restaurant.
func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *catalog.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := restaurantFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Meals").Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a restaurant by its identifier.
// Returns an ObjectNotFoundError if it does not exist.
func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, err
	}

	return restaurantToDomain(dto)
}

type GormMealRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormMealRepository creates a repository for meal persistence.
func NewGormMealRepository(db *gorm.DB, tracker aggregateTracker) *GormMealRepository {
	return &GormMealRepository{db: db, tracker: tracker}
}

// Add inserts a new meal.
func (r *GormMealRepository) Add(ctx context.Context, aggregate *catalog.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := mealFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormMealRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Meal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MealDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("meal", id.String())
		}
		return nil, err
	}

	return mealToDomain(dto)
}
