// Package earning contains the restaurant Earning aggregate created when an order is
// delivered, and its payout state.
package earning

import (
	"errors"
	"fmt"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var (
	ErrEarningIsNotConstructed = errors.New("Earning must be created via NewEarning constructor")
	ErrAlreadyPaid             = errs.NewConflictError("earning is already paid out")
)

// Split is the division of an order amount between the restaurant and the platform.
type Split struct {
	Net        kernel.Money
	Commission kernel.Money
}

// Earning is what a restaurant is owed for one delivered order.
// Net plus commission always equals the order amount.
type Earning struct {
	id             kernel.UUID
	orderID        kernel.UUID
	restaurantID   kernel.UUID
	orderAmount    kernel.Money
	commissionRate kernel.Percent
	split          Split
	payoutBatchID  *kernel.UUID
	paidAt         *time.Time
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewEarning records what a restaurant is owed for a delivered order.
// The split must add up to orderAmount. Returns an error otherwise or if an identifier is empty.
func NewEarning(
	id, orderID, restaurantID kernel.UUID,
	orderAmount kernel.Money,
	commissionRate kernel.Percent,
	split Split,
	now time.Time,
) (*Earning, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), restaurantID.Validate()); err != nil {
		return nil, err
	}
	if !split.Net.Add(split.Commission).IsEqual(orderAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause("split", fmt.Errorf(
			"%s + %s does not add up to %s", split.Net, split.Commission, orderAmount))
	}

	return &Earning{
		id:             id,
		orderID:        orderID,
		restaurantID:   restaurantID,
		orderAmount:    orderAmount,
		commissionRate: commissionRate,
		split:          split,
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreEarning rebuilds an earning from storage.
func RestoreEarning(
	id, orderID, restaurantID kernel.UUID,
	orderAmount kernel.Money,
	commissionRate kernel.Percent,
	split Split,
	payoutBatchID *kernel.UUID,
	paidAt *time.Time,
	createdAt time.Time,
) (*Earning, error) {
	e, err := NewEarning(id, orderID, restaurantID, orderAmount, commissionRate, split, createdAt)
	if err != nil {
		return nil, err
	}
	e.payoutBatchID = payoutBatchID
	e.paidAt = paidAt
	return e, nil
}

// Validate ensures the earning was created through a constructor.
// Returns ErrEarningIsNotConstructed if validation fails.
func (e *Earning) Validate() error {
	if e == nil {
		return ErrEarningIsNotConstructed
	}
	return e.guard.Validate(ErrEarningIsNotConstructed)
}

// ID returns the earning's unique identifier.
func (e *Earning) ID() kernel.UUID { return e.id }

// OrderID returns the identifier of the order.
func (e *Earning) OrderID() kernel.UUID { return e.orderID }

// RestaurantID returns the identifier of the restaurant.
func (e *Earning) RestaurantID() kernel.UUID { return e.restaurantID }

// OrderAmount returns the order total the earning was computed from.
func (e *Earning) OrderAmount() kernel.Money { return e.orderAmount }

// CommissionRate returns the platform commission rate.
func (e *Earning) CommissionRate() kernel.Percent { return e.commissionRate }

// CommissionAmount returns the platform's share of the order amount.
func (e *Earning) CommissionAmount() kernel.Money { return e.split.Commission }

// NetAmount returns the amount owed to the restaurant.
func (e *Earning) NetAmount() kernel.Money { return e.split.Net }

// PayoutBatchID returns the payout batch the earning was settled in, or nil if unpaid.
func (e *Earning) PayoutBatchID() *kernel.UUID { return e.payoutBatchID }

// PaidAt returns when the earning was paid out, or nil if unpaid.
func (e *Earning) PaidAt() *time.Time { return e.paidAt }

// CreatedAt returns when the earning was created.
func (e *Earning) CreatedAt() time.Time { return e.createdAt }

// IsPaid reports whether the earning has been settled.
func (e *Earning) IsPaid() bool { return e.paidAt != nil }

// MarkPaid attaches the earning to a payout batch.
func (e *Earning) MarkPaid(batchID kernel.UUID, now time.Time) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if e.IsPaid() {
		return fmt.Errorf("%w: earning %s", ErrAlreadyPaid, e.id)
	}

	e.payoutBatchID = &batchID
	e.paidAt = &now
	return nil
}
