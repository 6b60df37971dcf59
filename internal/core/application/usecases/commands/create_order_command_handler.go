package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/pkg/errs"
)

// CreateOrderResult carries the stored order and what the customer pays for it.
type CreateOrderResult struct {
	OrderID       kernel.UUID
	Total         kernel.Money
	CustomerTotal services.Quote
}

// CreateOrderCommandHandler snapshots meal prices from the catalog and stores a pending order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	fees       FeeConfigurationProvider
}

// NewCreateOrderCommandHandler creates a handler for create order requests.
// Requires an OrderUoWFactory for transactional persistence and a FeeConfigurationProvider
// for the current delivery fee.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, fees FeeConfigurationProvider) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

// Handle returns a validation error when the restaurant is unknown or inactive, or when a
// meal is unknown, unavailable or served by another restaurant.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (CreateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurant, err := uow.RestaurantRepository().Get(ctx, command.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CreateOrderResult{}, errs.NewValueIsInvalidErrorWithCause("restaurant_id", err)
	}
	if err != nil {
		return CreateOrderResult{}, err
	}
	if !restaurant.IsActive() {
		return CreateOrderResult{}, errs.NewValueIsInvalidErrorWithCause("restaurant_id", catalog.ErrRestaurantInactive)
	}

	items, err := h.snapshotItems(ctx, uow, command)
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		command.CustomerID(),
		command.RestaurantID(),
		items,
		command.DeliveryAddress(),
		command.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	quote, err := services.NewFeeCalculator().CustomerTotal(o.Total(), h.fees.Get(ctx))
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		OrderID:       o.ID(),
		Total:         o.Total(),
		CustomerTotal: quote,
	}, nil
}

func (h CreateOrderCommandHandler) snapshotItems(ctx context.Context, uow OrderUoW, command CreateOrderCommand) ([]order.Item, error) {
	meals := uow.MealRepository()
	lines := command.Lines()
	items := make([]order.Item, 0, len(lines))

	for idx, line := range lines {
		param := fmt.Sprintf("items[%d].meal_id", idx)

		meal, err := meals.Get(ctx, line.MealID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
		}
		if err != nil {
			return nil, err
		}
		if err = meal.EnsureOrderable(command.RestaurantID()); err != nil {
			return nil, err
		}

		item, err := order.NewItem(meal.ID(), meal.Name(), line.Quantity, meal.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
