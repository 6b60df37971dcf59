package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetRiderEligibilityQueryIsNotConstructed = errors.New(
	"GetRiderEligibilityQuery must be created via NewGetRiderEligibilityQuery constructor",
)

type GetRiderEligibilityQuery struct {
	riderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetRiderEligibilityQuery creates a query explaining whether a rider can take work.
func NewGetRiderEligibilityQuery(riderID kernel.UUID) (GetRiderEligibilityQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderEligibilityQuery{}, err
	}
	return GetRiderEligibilityQuery{riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRiderEligibilityQueryIsNotConstructed if validation fails.
func (q GetRiderEligibilityQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEligibilityQueryIsNotConstructed)
}

// GetRiderEligibilityQueryResponse explains whether a rider may take assignments.
// Reason is empty for eligible riders.
type GetRiderEligibilityQueryResponse struct {
	RiderID  kernel.UUID
	Eligible bool
	Approval string
	Online   bool
	Active   bool
	Reason   string
}

type GetRiderEligibilityQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderEligibilityQueryHandler creates a handler for get rider eligibility requests.
// Reads straight from the database, outside any unit of work.
func NewGetRiderEligibilityQueryHandler(db *gorm.DB) GetRiderEligibilityQueryHandler {
	return GetRiderEligibilityQueryHandler{db: db}
}

// Handle reports the rider's eligibility and the reasons it is missing.
func (h GetRiderEligibilityQueryHandler) Handle(
	ctx context.Context,
	query GetRiderEligibilityQuery,
) (GetRiderEligibilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderEligibilityQueryResponse{}, err
	}

	r, err := loadRider(h.db.WithContext(ctx), query.riderID)
	if err != nil {
		return GetRiderEligibilityQueryResponse{}, err
	}

	resp := GetRiderEligibilityQueryResponse{
		RiderID:  r.ID(),
		Eligible: r.IsEligible(),
		Approval: r.Approval().String(),
		Online:   r.IsOnline(),
		Active:   r.IsActive(),
	}
	if err = r.EnsureEligible(); err != nil {
		resp.Reason = ineligibilityReason(err)
	}
	return resp, nil
}

func ineligibilityReason(err error) string {
	for _, reason := range []*errs.ConflictError{rider.ErrNotApproved, rider.ErrSuspended, rider.ErrRiderNotOnline} {
		if errors.Is(err, reason) {
			return reason.Reason
		}
	}
	return err.Error()
}

// loadRider restores the rider for read-only checks such as eligibility.
func loadRider(db *gorm.DB, riderID kernel.UUID) (*rider.Rider, error) {
	var (
		id              uuid.UUID
		name            string
		approval        int
		online, active  bool
		lastActiveAt    *time.Time
		totalDeliveries int
		createdAt       time.Time
		updatedAt       time.Time
	)

	err := db.Raw(`
		SELECT id, name, approval, online, active, last_active_at, total_deliveries, created_at, updated_at
		FROM riders
		WHERE id = ?
	`, riderID.String()).Row().Scan(
		&id, &name, &approval, &online, &active, &lastActiveAt, &totalDeliveries, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("rider", riderID.String())
	}
	if err != nil {
		return nil, err
	}

	restoredID, err := toUUID(id)
	if err != nil {
		return nil, err
	}
	return rider.RestoreRider(restoredID, name, rider.Approval(approval), online, active,
		utcPtr(lastActiveAt), totalDeliveries, createdAt.UTC(), updatedAt.UTC())
}
