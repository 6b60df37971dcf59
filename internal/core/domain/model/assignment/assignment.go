package assignment

import (
	"errors"
	"strings"
	"time"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment binds a rider to an order. The delivery fee is a snapshot taken at
// creation and never changes; once terminal only notes may still be edited.
type Assignment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	riderID     kernel.UUID
	status      Status
	deliveryFee kernel.Money
	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	notes       string
	reason      string
	updatedAt   time.Time

	events events.Recorder
	guard  guard.ConstructorGuard
}

// NewAssignment creates an assignment in the Assigned status and records AssignmentCreated.
func NewAssignment(id, orderID, riderID kernel.UUID, deliveryFee kernel.Money, now time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), riderID.Validate()); err != nil {
		return nil, err
	}

	a := &Assignment{
		id:          id,
		orderID:     orderID,
		riderID:     riderID,
		status:      Assigned,
		deliveryFee: deliveryFee,
		assignedAt:  now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}
	a.events.Record(events.AssignmentCreated{
		AssignmentID: id,
		OrderID:      orderID,
		RiderID:      riderID,
		DeliveryFee:  deliveryFee,
		OccurredAt:   now,
	})
	return a, nil
}

// RestoreAssignment rebuilds an assignment from persistence.
func RestoreAssignment(
	id, orderID, riderID kernel.UUID,
	status Status,
	deliveryFee kernel.Money,
	assignedAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
	notes, reason string,
	updatedAt time.Time,
) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), riderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:          id,
		orderID:     orderID,
		riderID:     riderID,
		status:      status,
		deliveryFee: deliveryFee,
		assignedAt:  assignedAt,
		pickedUpAt:  pickedUpAt,
		deliveredAt: deliveredAt,
		notes:       notes,
		reason:      reason,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the assignment was created through NewAssignment or RestoreAssignment.
// Returns ErrAssignmentIsNotConstructed if validation fails.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID { return a.id }

// OrderID returns the identifier of the order.
func (a *Assignment) OrderID() kernel.UUID { return a.orderID }

// RiderID returns the identifier of the rider.
func (a *Assignment) RiderID() kernel.UUID { return a.riderID }

// Status returns the current status of the assignment.
func (a *Assignment) Status() Status { return a.status }

// DeliveryFee returns the fee charged for delivery.
func (a *Assignment) DeliveryFee() kernel.Money { return a.deliveryFee }

// AssignedAt returns when the rider was assigned.
func (a *Assignment) AssignedAt() time.Time { return a.assignedAt }

// PickedUpAt returns when the order was picked up, or nil before pickup.
func (a *Assignment) PickedUpAt() *time.Time { return a.pickedUpAt }

// DeliveredAt returns when the order was delivered, or nil before delivery.
func (a *Assignment) DeliveredAt() *time.Time { return a.deliveredAt }

// Notes returns the rider's notes for the delivery.
func (a *Assignment) Notes() string { return a.notes }

// Reason returns the reason recorded with the last cancellation or failure.
func (a *Assignment) Reason() string { return a.reason }

// UpdatedAt returns the time of the last change to the assignment.
func (a *Assignment) UpdatedAt() time.Time { return a.updatedAt }

// IsActive reports whether the assignment still binds its rider to the order.
func (a *Assignment) IsActive() bool { return a.status.IsActive() }

// BelongsTo reports whether the assignment was given to rider.
func (a *Assignment) BelongsTo(rider kernel.UUID) bool {
	return a.riderID.IsEqual(rider)
}

// Advance moves the assignment to target and reports whether anything changed.
// Asking for the current status is a no-op, which makes repeated delivered or
// cancelled calls safe. The reason is kept for cancelled and failed.
func (a *Assignment) Advance(target Status, reason string, now time.Time) (bool, error) {
	if target == a.status {
		return false, nil
	}

	next, err := a.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	switch next {
	case PickedUp:
		a.pickedUpAt = &now
	case Delivered:
		a.deliveredAt = &now
	case Cancelled, Failed:
		a.reason = strings.TrimSpace(reason)
	default:
	}

	a.status = next
	a.updatedAt = now
	return true, nil
}

// UpdateNotes is allowed in every status.
func (a *Assignment) UpdateNotes(notes string, now time.Time) {
	a.notes = strings.TrimSpace(notes)
	a.updatedAt = now
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (a *Assignment) DomainEvents() []events.Event {
	return a.events.Events()
}

func (a *Assignment) ClearDomainEvents() {
	a.events.Clear()
}
