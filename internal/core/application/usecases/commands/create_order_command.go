package commands

import (
	"errors"
	"fmt"
	"strings"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is a requested meal and quantity. Prices are taken from the catalog.
type OrderLine struct {
	MealID   kernel.UUID
	Quantity int
}

// CreateOrderCommand places a new order with a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, restaurantID,
//	    []OrderLine{{MealID: mealID, Quantity: 2}}, "12 Baker St", "ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	res, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	lines           []OrderLine
	deliveryAddress string
	notes           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates ids, line quantities and the address.
// Meal ownership and availability are checked by the handler.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lines []OrderLine,
	deliveryAddress string,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setLines(lines),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// RestaurantID returns the identifier of the restaurant.
func (c CreateOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }

// DeliveryAddress returns the requested delivery address.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

// Notes returns the customer's delivery notes.
func (c CreateOrderCommand) Notes() string { return c.notes }

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return append([]OrderLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant_id", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for idx, line := range lines {
		if err := line.MealID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].meal_id", idx), err)
		}
		if line.Quantity <= 0 || line.Quantity > order.MaxItemQuantity {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", idx), line.Quantity, 1, order.MaxItemQuantity)
		}
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	c.deliveryAddress = address
	return nil
}
