package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for get order requests.
// Reads straight from the database, outside any unit of work.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle loads the order with its items and live assignment.
// Returns an ObjectNotFoundError if the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.loadOrder(db, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, err = h.loadItems(db, query); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Assignment, err = h.loadLiveAssignment(db, query); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(db *gorm.DB, query GetOrderQuery) (GetOrderQueryResponse, error) {
	var (
		resp                       GetOrderQueryResponse
		id, customerID, restaurant uuid.UUID
		status                     int
		total                      decimal.Decimal
	)

	row := db.Raw(`
		SELECT id, customer_id, restaurant_id, status, total,
			delivery_address, notes, cancellation_reason, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()
	err := row.Scan(&id, &customerID, &restaurant, &status, &total,
		&resp.DeliveryAddress, &resp.Notes, &resp.CancellationReason, &resp.CreatedAt, &resp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = toUUID(id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = toUUID(customerID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = toUUID(restaurant); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Total, err = toMoney(total); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status).String()
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(db *gorm.DB, query GetOrderQuery) ([]OrderItemResponse, error) {
	rows, err := db.Raw(`
		SELECT meal_id, meal_name, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item      OrderItemResponse
			mealID    uuid.UUID
			unitPrice decimal.Decimal
		)
		if err = rows.Scan(&mealID, &item.MealName, &item.Quantity, &unitPrice); err != nil {
			return nil, err
		}
		if item.MealID, err = toUUID(mealID); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = toMoney(unitPrice); err != nil {
			return nil, err
		}
		item.Subtotal = item.UnitPrice.Times(item.Quantity)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadLiveAssignment(db *gorm.DB, query GetOrderQuery) (*LiveAssignmentResponse, error) {
	var (
		id, riderID uuid.UUID
		status      int
		assignedAt  time.Time
	)

	err := db.Raw(`
		SELECT id, rider_id, status, assigned_at
		FROM assignments
		WHERE order_id = ? AND status IN ?
	`, query.OrderID().String(), activeAssignmentStatuses()).Row().Scan(&id, &riderID, &status, &assignedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	live := &LiveAssignmentResponse{Status: assignment.Status(status).String(), AssignedAt: assignedAt.UTC()}
	if live.ID, err = toUUID(id); err != nil {
		return nil, err
	}
	if live.RiderID, err = toUUID(riderID); err != nil {
		return nil, err
	}
	return live, nil
}

func activeAssignmentStatuses() []int {
	statuses := make([]int, 0, len(assignment.ActiveStatuses))
	for _, s := range assignment.ActiveStatuses {
		statuses = append(statuses, int(s))
	}
	return statuses
}
