package queries

import (
	"context"
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists ready orders nobody is carrying, as seen by a rider.
// Only eligible riders may look at the pool.
type GetAvailableOrdersQuery struct {
	riderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for the orders a rider may accept.
func NewGetAvailableOrdersQuery(riderID kernel.UUID) (GetAvailableOrdersQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}
	return GetAvailableOrdersQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableOrdersQueryIsNotConstructed if validation fails.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

type AvailableOrderResponse struct {
	ID              kernel.UUID
	RestaurantID    kernel.UUID
	Total           kernel.Money
	DeliveryAddress string
	Items           int
	CreatedAt       time.Time
}

type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for get available orders requests.
// Reads straight from the database, outside any unit of work.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns the pool oldest first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]AvailableOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	r, err := loadRider(db, query.riderID)
	if err != nil {
		return nil, err
	}
	if err = r.EnsureEligible(); err != nil {
		return nil, err
	}

	rows, err := db.Raw(`
		SELECT o.id, o.restaurant_id, o.total, o.delivery_address, o.created_at,
			(SELECT COALESCE(SUM(i.quantity), 0) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o
		WHERE o.status = ?
			AND NOT EXISTS (
				SELECT 1 FROM assignments a WHERE a.order_id = o.id AND a.status IN ?
			)
		ORDER BY o.created_at, o.id
	`, int(order.Ready), activeAssignmentStatuses()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]AvailableOrderResponse, 0)
	for rows.Next() {
		var (
			resp             AvailableOrderResponse
			id, restaurantID uuid.UUID
			total            decimal.Decimal
		)
		if err = rows.Scan(&id, &restaurantID, &total, &resp.DeliveryAddress, &resp.CreatedAt, &resp.Items); err != nil {
			return nil, err
		}
		if resp.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if resp.RestaurantID, err = toUUID(restaurantID); err != nil {
			return nil, err
		}
		if resp.Total, err = toMoney(total); err != nil {
			return nil, err
		}
		resp.CreatedAt = resp.CreatedAt.UTC()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
