package queries

import (
	"context"
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetRiderEarningsQueryIsNotConstructed = errors.New(
	"GetRiderEarningsQuery must be created via NewGetRiderEarningsQuery constructor",
)

// GetRiderEarningsQuery sums the delivery fees of a rider's delivered assignments.
// Periods are calendar periods in UTC relative to now; weeks start on Monday.
type GetRiderEarningsQuery struct {
	riderID kernel.UUID
	now     time.Time
	guard   guard.ConstructorGuard
}

// NewGetRiderEarningsQuery creates a query for a rider's delivery fees.
// now anchors the today, week and month windows.
func NewGetRiderEarningsQuery(riderID kernel.UUID, now time.Time) (GetRiderEarningsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	return GetRiderEarningsQuery{riderID: riderID, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRiderEarningsQueryIsNotConstructed if validation fails.
func (q GetRiderEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEarningsQueryIsNotConstructed)
}

type GetRiderEarningsQueryResponse struct {
	RiderID    kernel.UUID
	Total      kernel.Money
	Today      kernel.Money
	ThisWeek   kernel.Money
	ThisMonth  kernel.Money
	Deliveries int
	Average    kernel.Money
}

// periodStarts returns the start of the day, ISO week and month containing now.
func periodStarts(now time.Time) (day, week, month time.Time) {
	day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	week = day.AddDate(0, 0, -offset)
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return day, week, month
}

type GetRiderEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderEarningsQueryHandler creates a handler for get rider earnings requests.
// Reads straight from the database, outside any unit of work.
func NewGetRiderEarningsQueryHandler(db *gorm.DB) GetRiderEarningsQueryHandler {
	return GetRiderEarningsQueryHandler{db: db}
}

// Handle sums the fees of the rider's delivered assignments per window.
func (h GetRiderEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderEarningsQuery,
) (GetRiderEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	if _, err := loadRider(db, query.riderID); err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	day, week, month := periodStarts(query.now)

	var (
		total, today, thisWeek, thisMonth decimal.Decimal
		deliveries                        int
	)
	err := db.Raw(`
		SELECT
			COALESCE(SUM(delivery_fee), 0),
			COALESCE(SUM(delivery_fee) FILTER (WHERE delivered_at >= ?), 0),
			COALESCE(SUM(delivery_fee) FILTER (WHERE delivered_at >= ?), 0),
			COALESCE(SUM(delivery_fee) FILTER (WHERE delivered_at >= ?), 0),
			COUNT(*)
		FROM assignments
		WHERE rider_id = ? AND status = ?
	`, day, week, month, query.riderID.String(), int(assignment.Delivered)).Row().
		Scan(&total, &today, &thisWeek, &thisMonth, &deliveries)
	if err != nil {
		return GetRiderEarningsQueryResponse{}, err
	}

	average := decimal.Zero
	if deliveries > 0 {
		average = total.Div(decimal.NewFromInt(int64(deliveries)))
	}

	resp := GetRiderEarningsQueryResponse{RiderID: query.riderID, Deliveries: deliveries}
	for _, field := range []struct {
		dst *kernel.Money
		src decimal.Decimal
	}{
		{&resp.Total, total},
		{&resp.Today, today},
		{&resp.ThisWeek, thisWeek},
		{&resp.ThisMonth, thisMonth},
		{&resp.Average, average},
	} {
		if *field.dst, err = toMoney(field.src); err != nil {
			return GetRiderEarningsQueryResponse{}, err
		}
	}

	return resp, nil
}
