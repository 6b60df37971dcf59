package commands

import (
	"context"
	"time"

	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
)

type CreateRestaurantCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewCreateRestaurantCommandHandler creates a handler for create restaurant requests.
// Requires a CatalogUoWFactory for transactional persistence.
func NewCreateRestaurantCommandHandler(uowFactory CatalogUoWFactory) CreateRestaurantCommandHandler {
	return CreateRestaurantCommandHandler{uowFactory: uowFactory}
}

// Handle processes the restaurant creation command and stores the new restaurant.
func (h CreateRestaurantCommandHandler) Handle(
	ctx context.Context,
	command CreateRestaurantCommand,
) (*catalog.Restaurant, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	restaurant, err := catalog.NewRestaurant(
		kernel.NewUUID(),
		command.Name(),
		command.ContactEmail(),
		command.OwnerEmail(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RestaurantRepository().Add(ctx, restaurant); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// AddMealCommandHandler returns a not-found error for an unknown restaurant.
type AddMealCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewAddMealCommandHandler creates a handler for add meal requests.
// Requires a CatalogUoWFactory for transactional persistence.
func NewAddMealCommandHandler(uowFactory CatalogUoWFactory) AddMealCommandHandler {
	return AddMealCommandHandler{uowFactory: uowFactory}
}

// Handle processes the add meal command.
// The restaurant must exist. Returns an ObjectNotFoundError otherwise.
func (h AddMealCommandHandler) Handle(ctx context.Context, command AddMealCommand) (*catalog.Meal, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurant, err := uow.RestaurantRepository().Get(ctx, command.RestaurantID())
	if err != nil {
		return nil, err
	}

	meal, err := catalog.NewMeal(kernel.NewUUID(), restaurant.ID(), command.Name(), command.Price(), command.Available())
	if err != nil {
		return nil, err
	}

	if err = uow.MealRepository().Add(ctx, meal); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return meal, nil
}
