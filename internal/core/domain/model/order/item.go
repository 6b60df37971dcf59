package order

import (
	"errors"
	"fmt"
	"strings"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

// MaxItemQuantity caps a single order line.
const MaxItemQuantity = 1000

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an immutable order line. Name and unit price are snapshots of the meal taken
// when the order was placed.
type Item struct {
	mealID    kernel.UUID
	mealName  string
	quantity  int
	unitPrice kernel.Money
	guard     guard.ConstructorGuard
}

// NewItem validates one order line. Quantity must be within [1, MaxItemQuantity].
func NewItem(mealID kernel.UUID, mealName string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := mealID.Validate(); err != nil {
		return Item{}, err
	}
	if strings.TrimSpace(mealName) == "" {
		return Item{}, errs.NewValueIsRequiredError("meal name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}

	return Item{
		mealID:    mealID,
		mealName:  mealName,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// MealID returns the identifier of the ordered meal.
func (i Item) MealID() kernel.UUID { return i.mealID }

// MealName returns the meal name captured when the order was placed.
func (i Item) MealName() string { return i.mealName }

// Quantity returns the number of portions ordered.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the meal price captured when the order was placed.
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal is unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}
