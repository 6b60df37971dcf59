package catalog

import (
	"errors"
	"fmt"
	"strings"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var (
	ErrMealIsNotConstructed = errors.New("Meal must be created via NewMeal constructor")
	ErrMealUnavailable      = errs.NewConflictError("meal is not available")
)

type Meal struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        kernel.Money
	available    bool

	guard guard.ConstructorGuard
}

// NewMeal creates a menu item.
// Returns an error if an identifier or the name is empty.
func NewMeal(id, restaurantID kernel.UUID, name string, price kernel.Money, available bool) (*Meal, error) {
	name = strings.TrimSpace(name)

	var nameErr, priceErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if price.IsZero() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	if err := errors.Join(id.Validate(), restaurantID.Validate(), nameErr, priceErr); err != nil {
		return nil, err
	}

	return &Meal{
		id:           id,
		restaurantID: restaurantID,
		name:         name,
		price:        price,
		available:    available,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the meal was created through NewMeal.
func (m *Meal) Validate() error {
	if m == nil {
		return ErrMealIsNotConstructed
	}
	return m.guard.Validate(ErrMealIsNotConstructed)
}

// ID returns the meal's unique identifier.
func (m *Meal) ID() kernel.UUID { return m.id }

// RestaurantID returns the identifier of the restaurant.
func (m *Meal) RestaurantID() kernel.UUID { return m.restaurantID }

// Name returns the meal's display name.
func (m *Meal) Name() string { return m.name }

// Price returns the unit price of the meal.
func (m *Meal) Price() kernel.Money { return m.price }

// IsAvailable reports whether the meal can currently be ordered.
func (m *Meal) IsAvailable() bool { return m.available }

// EnsureOrderable checks the meal can be ordered from the given restaurant.
func (m *Meal) EnsureOrderable(restaurantID kernel.UUID) error {
	if !m.restaurantID.IsEqual(restaurantID) {
		return errs.NewValueIsInvalidErrorWithCause("meal", fmt.Errorf(
			"meal %s does not belong to restaurant %s", m.id, restaurantID))
	}
	if !m.available {
		return errs.NewValueIsInvalidErrorWithCause("meal", fmt.Errorf("%w: %s", ErrMealUnavailable, m.name))
	}
	return nil
}
