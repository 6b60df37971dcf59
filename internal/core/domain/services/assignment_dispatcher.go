package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/pkg/errs"
)

var (
	ErrNoEligibleRiders = errors.New("no eligible riders found")
	ErrOrderNotReady    = errs.NewConflictError("order is not ready for delivery")
)

// AssignmentDispatcher matches ready orders with riders.
//
// Ranking: longest idle first. Riders are ordered by last activity ascending, riders
// that were never active come first and ties are broken by id so the order is stable.
type AssignmentDispatcher struct{}

// NewAssignmentDispatcher creates a dispatcher. It holds no state.
func NewAssignmentDispatcher() AssignmentDispatcher {
	return AssignmentDispatcher{}
}

// Rank filters out ineligible riders and sorts the rest.
func (d AssignmentDispatcher) Rank(riders []*rider.Rider) []*rider.Rider {
	ranked := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if r.Validate() == nil && r.IsEligible() {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].LastActiveAt(), ranked[j].LastActiveAt()
		switch {
		case a == nil && b != nil:
			return true
		case a != nil && b == nil:
			return false
		case a != nil && !a.Equal(*b):
			return a.Before(*b)
		default:
			return ranked[i].ID().String() < ranked[j].ID().String()
		}
	})
	return ranked
}

// Assign creates an assignment of o to r and moves the order to delivering.
// The caller must already hold the order lock and have checked that no live assignment
// exists.
func (d AssignmentDispatcher) Assign(
	o *order.Order,
	r *rider.Rider,
	deliveryFee kernel.Money,
	now time.Time,
) (*assignment.Assignment, error) {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return nil, err
	}
	if o.Status() != order.Ready {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotReady, o.ID(), o.Status())
	}
	if err := r.EnsureEligible(); err != nil {
		return nil, err
	}

	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), r.ID(), deliveryFee, now)
	if err != nil {
		return nil, err
	}

	if err = o.TransitionTo(order.Delivering, now); err != nil {
		return nil, err
	}

	return a, nil
}

// Dispatch assigns o to the best ranked rider among candidates.
func (d AssignmentDispatcher) Dispatch(
	o *order.Order,
	candidates []*rider.Rider,
	deliveryFee kernel.Money,
	now time.Time,
) (*assignment.Assignment, *rider.Rider, error) {
	ranked := d.Rank(candidates)
	if len(ranked) == 0 {
		return nil, nil, ErrNoEligibleRiders
	}

	best := ranked[0]
	a, err := d.Assign(o, best, deliveryFee, now)
	if err != nil {
		return nil, nil, err
	}
	return a, best, nil
}
