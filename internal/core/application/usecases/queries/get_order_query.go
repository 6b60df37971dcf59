package queries

import (
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
// Returns an error if orderID is empty.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type OrderItemResponse struct {
	MealID    kernel.UUID
	MealName  string
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

// LiveAssignmentResponse describes the rider currently carrying an order.
type LiveAssignmentResponse struct {
	ID         kernel.UUID
	RiderID    kernel.UUID
	Status     string
	AssignedAt time.Time
}

type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	RestaurantID       kernel.UUID
	Status             string
	Total              kernel.Money
	DeliveryAddress    string
	Notes              string
	CancellationReason string
	Items              []OrderItemResponse
	Assignment         *LiveAssignmentResponse
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
