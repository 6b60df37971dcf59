package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrCreatePayoutCommandIsNotConstructed = errors.New(
	"CreatePayoutCommand must be created via NewCreatePayoutCommand constructor",
)

// CreatePayoutCommand pays out every unpaid earning of a restaurant as one batch.
type CreatePayoutCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePayoutCommand creates a command to settle a restaurant's unpaid earnings.
func NewCreatePayoutCommand(restaurantID kernel.UUID) (CreatePayoutCommand, error) {
	if err := restaurantID.Validate(); err != nil {
		return CreatePayoutCommand{}, err
	}

	return CreatePayoutCommand{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePayoutCommandIsNotConstructed if validation fails.
func (c CreatePayoutCommand) Validate() error {
	return c.guard.Validate(ErrCreatePayoutCommandIsNotConstructed)
}

// RestaurantID returns the identifier of the restaurant.
func (c CreatePayoutCommand) RestaurantID() kernel.UUID { return c.restaurantID }

type Payout struct {
	BatchID      kernel.UUID
	RestaurantID kernel.UUID
	Earnings     int
	Amount       kernel.Money
	PaidAt       time.Time
}

type CreatePayoutCommandHandler struct {
	uowFactory EarningUoWFactory
}

// NewCreatePayoutCommandHandler creates a handler for create payout requests.
// Requires an EarningUoWFactory for transactional persistence.
func NewCreatePayoutCommandHandler(uowFactory EarningUoWFactory) CreatePayoutCommandHandler {
	return CreatePayoutCommandHandler{uowFactory: uowFactory}
}

// Handle returns ErrNothingToPayOut when the restaurant has no unpaid earnings.
func (h CreatePayoutCommandHandler) Handle(ctx context.Context, command CreatePayoutCommand) (Payout, error) {
	if err := command.Validate(); err != nil {
		return Payout{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Payout{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EarningRepository()

	unpaid, err := repo.GetUnpaidByRestaurant(ctx, command.RestaurantID())
	if err != nil {
		return Payout{}, err
	}
	if len(unpaid) == 0 {
		return Payout{}, fmt.Errorf("%w: restaurant %s", ErrNothingToPayOut, command.RestaurantID())
	}

	payout := Payout{
		BatchID:      kernel.NewUUID(),
		RestaurantID: command.RestaurantID(),
		Amount:       kernel.ZeroMoney(),
		PaidAt:       time.Now().UTC(),
	}
	for _, e := range unpaid {
		if err = e.MarkPaid(payout.BatchID, payout.PaidAt); err != nil {
			return Payout{}, err
		}
		if err = repo.Update(ctx, e); err != nil {
			return Payout{}, err
		}
		payout.Earnings++
		payout.Amount = payout.Amount.Add(e.NetAmount())
	}

	if err = uow.Commit(ctx); err != nil {
		return Payout{}, err
	}

	return payout, nil
}
