package queries

import (
	"context"
	"errors"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetRestaurantEarningsQueryIsNotConstructed = errors.New(
	"GetRestaurantEarningsQuery must be created via NewGetRestaurantEarningsQuery constructor",
)

type GetRestaurantEarningsQuery struct {
	restaurantID kernel.UUID
	guard        guard.ConstructorGuard
}

// NewGetRestaurantEarningsQuery creates a query for a restaurant's earnings.
func NewGetRestaurantEarningsQuery(restaurantID kernel.UUID) (GetRestaurantEarningsQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetRestaurantEarningsQuery{}, err
	}
	return GetRestaurantEarningsQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRestaurantEarningsQueryIsNotConstructed if validation fails.
func (q GetRestaurantEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantEarningsQueryIsNotConstructed)
}

type GetRestaurantEarningsQueryResponse struct {
	RestaurantID    kernel.UUID
	TotalNet        kernel.Money
	UnpaidNet       kernel.Money
	TotalCommission kernel.Money
	Earnings        int
	UnpaidEarnings  int
}

type GetRestaurantEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetRestaurantEarningsQueryHandler creates a handler for get restaurant earnings requests.
// Reads straight from the database, outside any unit of work.
func NewGetRestaurantEarningsQueryHandler(db *gorm.DB) GetRestaurantEarningsQueryHandler {
	return GetRestaurantEarningsQueryHandler{db: db}
}

// Handle lists the restaurant's earnings and sums paid and unpaid amounts.
func (h GetRestaurantEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantEarningsQuery,
) (GetRestaurantEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRestaurantEarningsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var known bool
	err := db.Raw(`SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = ?)`, query.restaurantID.String()).
		Row().Scan(&known)
	if err != nil {
		return GetRestaurantEarningsQueryResponse{}, err
	}
	if !known {
		return GetRestaurantEarningsQueryResponse{}, errs.NewObjectNotFoundError("restaurant", query.restaurantID.String())
	}

	var (
		resp                          = GetRestaurantEarningsQueryResponse{RestaurantID: query.restaurantID}
		totalNet, unpaidNet, totalFee decimal.Decimal
	)
	err = db.Raw(`
		SELECT
			COALESCE(SUM(net_amount), 0),
			COALESCE(SUM(net_amount) FILTER (WHERE paid_at IS NULL), 0),
			COALESCE(SUM(commission_amount), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE paid_at IS NULL)
		FROM earnings
		WHERE restaurant_id = ?
	`, query.restaurantID.String()).Row().Scan(&totalNet, &unpaidNet, &totalFee, &resp.Earnings, &resp.UnpaidEarnings)
	if err != nil {
		return GetRestaurantEarningsQueryResponse{}, err
	}

	if resp.TotalNet, err = toMoney(totalNet); err != nil {
		return GetRestaurantEarningsQueryResponse{}, err
	}
	if resp.UnpaidNet, err = toMoney(unpaidNet); err != nil {
		return GetRestaurantEarningsQueryResponse{}, err
	}
	if resp.TotalCommission, err = toMoney(totalFee); err != nil {
		return GetRestaurantEarningsQueryResponse{}, err
	}

	return resp, nil
}
