package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetRiderAssignmentsQueryIsNotConstructed = errors.New(
	"GetRiderAssignmentsQuery must be created via NewGetRiderAssignmentsQuery constructor",
)

// AssignmentScope selects live or finished assignments.
type AssignmentScope string

const (
	ScopeActive  AssignmentScope = "active"
	ScopeHistory AssignmentScope = "history"
)

// ParseAssignmentScope defaults to ScopeActive for an empty value.
func ParseAssignmentScope(s string) (AssignmentScope, error) {
	switch AssignmentScope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeActive:
		return ScopeActive, nil
	case ScopeHistory:
		return ScopeHistory, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is neither active nor history", s))
	}
}

type GetRiderAssignmentsQuery struct {
	riderID kernel.UUID
	scope   AssignmentScope
	guard   guard.ConstructorGuard
}

// NewGetRiderAssignmentsQuery creates a query for a rider's assignments in scope.
// Returns an error if the rider id is empty or scope is unknown.
func NewGetRiderAssignmentsQuery(riderID kernel.UUID, scope AssignmentScope) (GetRiderAssignmentsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderAssignmentsQuery{}, err
	}
	if scope != ScopeActive && scope != ScopeHistory {
		return GetRiderAssignmentsQuery{}, errs.NewValueIsInvalidError("scope")
	}
	return GetRiderAssignmentsQuery{riderID: riderID, scope: scope, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRiderAssignmentsQueryIsNotConstructed if validation fails.
func (q GetRiderAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderAssignmentsQueryIsNotConstructed)
}

type RiderAssignmentResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	Status          string
	DeliveryFee     kernel.Money
	DeliveryAddress string
	OrderTotal      kernel.Money
	Notes           string
	Reason          string
	AssignedAt      time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

type GetRiderAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderAssignmentsQueryHandler creates a handler for get rider assignments requests.
// Reads straight from the database, outside any unit of work.
func NewGetRiderAssignmentsQueryHandler(db *gorm.DB) GetRiderAssignmentsQueryHandler {
	return GetRiderAssignmentsQueryHandler{db: db}
}

// Handle lists live assignments oldest first, or finished ones newest first.
func (h GetRiderAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderAssignmentsQuery,
) ([]RiderAssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	if _, err := loadRider(db, query.riderID); err != nil {
		return nil, err
	}

	filter, order := "a.status IN ?", "a.assigned_at ASC, a.id"
	if query.scope == ScopeHistory {
		filter, order = "a.status NOT IN ?", "a.updated_at DESC, a.id"
	}

	rows, err := db.Raw(`
		SELECT a.id, a.order_id, a.status, a.delivery_fee, o.delivery_address, o.total,
			a.notes, a.reason, a.assigned_at, a.picked_up_at, a.delivered_at
		FROM assignments a
		JOIN orders o ON o.id = a.order_id
		WHERE a.rider_id = ? AND `+filter+`
		ORDER BY `+order,
		query.riderID.String(), activeAssignmentStatuses(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]RiderAssignmentResponse, 0)
	for rows.Next() {
		var (
			resp                    RiderAssignmentResponse
			id, orderID             uuid.UUID
			status                  int
			fee, total              decimal.Decimal
			pickedUpAt, deliveredAt *time.Time
		)
		err = rows.Scan(&id, &orderID, &status, &fee, &resp.DeliveryAddress, &total,
			&resp.Notes, &resp.Reason, &resp.AssignedAt, &pickedUpAt, &deliveredAt)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if resp.OrderID, err = toUUID(orderID); err != nil {
			return nil, err
		}
		if resp.DeliveryFee, err = toMoney(fee); err != nil {
			return nil, err
		}
		if resp.OrderTotal, err = toMoney(total); err != nil {
			return nil, err
		}
		resp.Status = assignment.Status(status).String()
		resp.AssignedAt = resp.AssignedAt.UTC()
		resp.PickedUpAt = utcPtr(pickedUpAt)
		resp.DeliveredAt = utcPtr(deliveredAt)
		assignments = append(assignments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}
