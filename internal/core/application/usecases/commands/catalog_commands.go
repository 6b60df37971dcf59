package commands

import (
	"errors"
	"strings"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var (
	ErrCreateRestaurantCommandIsNotConstructed = errors.New(
		"CreateRestaurantCommand must be created via NewCreateRestaurantCommand constructor",
	)
	ErrAddMealCommandIsNotConstructed = errors.New(
		"AddMealCommand must be created via NewAddMealCommand constructor",
	)
)

// CreateRestaurantCommand registers a restaurant. Notifications go to the contact email
// when present, otherwise to the owner's.
type CreateRestaurantCommand struct { //nolint:recvcheck //using for validation
	name         string
	contactEmail string
	ownerEmail   string

	guard guard.ConstructorGuard
}

// NewCreateRestaurantCommand creates a command to register a restaurant.
// Returns an error if the name is empty.
func NewCreateRestaurantCommand(name, contactEmail, ownerEmail string) (CreateRestaurantCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CreateRestaurantCommand{}, errs.NewValueIsRequiredError("name")
	}

	return CreateRestaurantCommand{
		name:         name,
		contactEmail: strings.TrimSpace(contactEmail),
		ownerEmail:   strings.TrimSpace(ownerEmail),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateRestaurantCommandIsNotConstructed if validation fails.
func (c CreateRestaurantCommand) Validate() error {
	return c.guard.Validate(ErrCreateRestaurantCommandIsNotConstructed)
}

// Name returns the requested name.
func (c CreateRestaurantCommand) Name() string { return c.name }

// ContactEmail returns the restaurant's contact address.
func (c CreateRestaurantCommand) ContactEmail() string { return c.contactEmail }

// OwnerEmail returns the owner's address, used when no contact address is given.
func (c CreateRestaurantCommand) OwnerEmail() string { return c.ownerEmail }

type AddMealCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	name         string
	price        kernel.Money
	available    bool

	guard guard.ConstructorGuard
}

// NewAddMealCommand creates a command to add a meal to a restaurant's menu.
// Returns an error if the restaurant id or the name is empty.
func NewAddMealCommand(restaurantID kernel.UUID, name string, price kernel.Money, available bool) (AddMealCommand, error) {
	var nameErr error
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(restaurantID.Validate(), nameErr); err != nil {
		return AddMealCommand{}, err
	}

	return AddMealCommand{
		restaurantID: restaurantID,
		name:         name,
		price:        price,
		available:    available,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddMealCommandIsNotConstructed if validation fails.
func (c AddMealCommand) Validate() error {
	return c.guard.Validate(ErrAddMealCommandIsNotConstructed)
}

// RestaurantID returns the identifier of the restaurant.
func (c AddMealCommand) RestaurantID() kernel.UUID { return c.restaurantID }

// Name returns the requested name.
func (c AddMealCommand) Name() string { return c.name }

// Price returns the unit price of the meal.
func (c AddMealCommand) Price() kernel.Money { return c.price }

// Available reports whether the meal starts out orderable.
func (c AddMealCommand) Available() bool { return c.available }
