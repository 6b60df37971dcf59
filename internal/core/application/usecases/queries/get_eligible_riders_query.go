package queries

import (
	"context"
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetEligibleRidersQueryIsNotConstructed = errors.New(
	"GetEligibleRidersQuery must be created via NewGetEligibleRidersQuery constructor",
)

// GetEligibleRidersQuery lists approved, active and online riders in dispatch order:
// longest idle first, riders that were never active before everyone else.
type GetEligibleRidersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetEligibleRidersQuery creates a query for riders able to take work.
func NewGetEligibleRidersQuery() GetEligibleRidersQuery {
	return GetEligibleRidersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetEligibleRidersQueryIsNotConstructed if validation fails.
func (q GetEligibleRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibleRidersQueryIsNotConstructed)
}

type EligibleRiderResponse struct {
	ID              kernel.UUID
	Name            string
	LastActiveAt    *time.Time
	TotalDeliveries int
	// Busy riders hold a live assignment and are skipped by auto-assignment.
	Busy bool
}

type GetEligibleRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetEligibleRidersQueryHandler creates a handler for get eligible riders requests.
// Reads straight from the database, outside any unit of work.
func NewGetEligibleRidersQueryHandler(db *gorm.DB) GetEligibleRidersQueryHandler {
	return GetEligibleRidersQueryHandler{db: db}
}

// Handle lists eligible riders, longest idle first, flagging those already busy.
func (h GetEligibleRidersQueryHandler) Handle(
	ctx context.Context,
	query GetEligibleRidersQuery,
) ([]EligibleRiderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.id, r.name, r.last_active_at, r.total_deliveries,
			EXISTS (SELECT 1 FROM assignments a WHERE a.rider_id = r.id AND a.status IN ?)
		FROM riders r
		WHERE r.approval = ? AND r.active AND r.online
		ORDER BY r.last_active_at ASC NULLS FIRST, r.id
	`, activeAssignmentStatuses(), int(rider.Approved)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]EligibleRiderResponse, 0)
	for rows.Next() {
		var (
			resp         EligibleRiderResponse
			id           uuid.UUID
			lastActiveAt *time.Time
		)
		if err = rows.Scan(&id, &resp.Name, &lastActiveAt, &resp.TotalDeliveries, &resp.Busy); err != nil {
			return nil, err
		}
		if resp.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		resp.LastActiveAt = utcPtr(lastActiveAt)
		riders = append(riders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return riders, nil
}
