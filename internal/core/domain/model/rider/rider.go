package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"
	"mealdispatch/internal/pkg/guard"
)

var (
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	ErrNotApproved     = errs.NewConflictError("rider is not approved")
	ErrSuspended       = errs.NewConflictError("rider is suspended")
	ErrRiderNotOnline  = errs.NewConflictError("rider is not online")
	ErrRiderIneligible = errs.NewConflictError("rider is not eligible for assignments")
)

// Rider is a delivery rider and its availability. A rider is eligible for new
// assignments only while approved, active and online.
type Rider struct {
	id              kernel.UUID
	name            string
	approval        Approval
	online          bool
	active          bool
	lastActiveAt    *time.Time
	totalDeliveries int
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewRider registers a rider awaiting approval. New riders are active and offline.
func NewRider(id kernel.UUID, name string, now time.Time) (*Rider, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(id.Validate(), validateName(name)); err != nil {
		return nil, err
	}

	return &Rider{
		id:        id,
		name:      name,
		approval:  ApprovalPending,
		active:    true,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreRider rebuilds a rider from storage.
// Returns an error if any stored field fails validation.
func RestoreRider(
	id kernel.UUID,
	name string,
	approval Approval,
	online bool,
	active bool,
	lastActiveAt *time.Time,
	totalDeliveries int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Rider, error) {
	if err := errors.Join(id.Validate(), validateName(name), approval.Validate()); err != nil {
		return nil, err
	}
	if totalDeliveries < 0 {
		return nil, errs.NewValueIsOutOfRangeError("total deliveries", totalDeliveries, 0, "unbounded")
	}

	return &Rider{
		id:              id,
		name:            name,
		approval:        approval,
		online:          online,
		active:          active,
		lastActiveAt:    lastActiveAt,
		totalDeliveries: totalDeliveries,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the rider was created through NewRider or RestoreRider.
// Returns ErrRiderIsNotConstructed if validation fails.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID { return r.id }

// Name returns the rider's display name.
func (r *Rider) Name() string { return r.name }

// Approval returns the rider's approval state.
func (r *Rider) Approval() Approval { return r.approval }

// IsOnline reports whether the rider is accepting work.
func (r *Rider) IsOnline() bool { return r.online }

// IsActive reports whether the rider account is enabled.
func (r *Rider) IsActive() bool { return r.active }

// LastActiveAt returns the last time the rider went online, or nil if never.
func (r *Rider) LastActiveAt() *time.Time { return r.lastActiveAt }

// TotalDeliveries returns the number of orders the rider has delivered.
func (r *Rider) TotalDeliveries() int { return r.totalDeliveries }

// CreatedAt returns when the rider was created.
func (r *Rider) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the time of the last change to the rider.
func (r *Rider) UpdatedAt() time.Time { return r.updatedAt }

// IsEligible reports whether the rider is approved, active and online.
func (r *Rider) IsEligible() bool {
	return r.approval == Approved && r.active && r.online
}

// EnsureEligible explains why a rider cannot take an assignment. The returned error
// matches ErrRiderIneligible and the specific reason (ErrNotApproved, ErrSuspended or
// ErrRiderNotOnline).
func (r *Rider) EnsureEligible() error {
	var reason error
	switch {
	case r.approval != Approved:
		reason = ErrNotApproved
	case !r.active:
		reason = ErrSuspended
	case !r.online:
		reason = ErrRiderNotOnline
	default:
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRiderIneligible, reason)
}

// SetOnline toggles presence. Only approved, active riders may change it.
func (r *Rider) SetOnline(online bool, now time.Time) error {
	if r.approval != Approved {
		return ErrNotApproved
	}
	if !r.active {
		return ErrSuspended
	}
	if r.online == online {
		return nil
	}

	r.online = online
	r.touch(now)
	return nil
}

// ChangeApproval records an admin review decision. Any status other than approved
// takes the rider offline.
func (r *Rider) ChangeApproval(approval Approval, now time.Time) error {
	if err := approval.Validate(); err != nil {
		return err
	}
	if r.approval == approval {
		return nil
	}

	r.approval = approval
	if approval != Approved && r.online {
		r.online = false
		r.touch(now)
	}
	r.updatedAt = now
	return nil
}

// SetActive enables or disables the account; disabling also takes the rider offline.
func (r *Rider) SetActive(active bool, now time.Time) {
	if r.active == active {
		return
	}

	r.active = active
	if !active && r.online {
		r.online = false
		r.touch(now)
	}
	r.updatedAt = now
}

// RecordDelivery is called once per delivered assignment.
func (r *Rider) RecordDelivery(now time.Time) {
	r.totalDeliveries++
	r.touch(now)
}

func (r *Rider) touch(now time.Time) {
	r.lastActiveAt = &now
	r.updatedAt = now
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
