package assignment

import (
	"fmt"
	"strings"

	"mealdispatch/internal/pkg/errs"
)

var (
	ErrInvalidTransition = errs.NewConflictError("assignment status transition is not allowed")

	// ErrAlreadyAssigned is returned when an order already has a live assignment.
	ErrAlreadyAssigned = errs.NewConflictError("order already has an active assignment")
)

// Status of an assignment.
//
//	assigned ─> picked_up ─> delivering ─> delivered
//	    └────────────┴────────────┴──────> cancelled | failed
type Status int

const (
	Unknown Status = iota
	Assigned
	PickedUp
	Delivering
	Delivered
	Cancelled
	Failed
)

// ActiveStatuses are the statuses covered by the single live assignment rule.
var ActiveStatuses = []Status{Assigned, PickedUp, Delivering}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Assigned:   "assigned",
		PickedUp:   "picked_up",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
		Failed:     "failed",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no successors
	return map[Status][]Status{
		Assigned:   {PickedUp, Cancelled, Failed},
		PickedUp:   {Delivering, Cancelled, Failed},
		Delivering: {Delivered, Cancelled, Failed},
	}
}

// ParseStatus converts a status name, ignoring case and surrounding space.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an assignment status", s))
}

// Validate returns an error for Unknown and out of range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether an assignment in this status still binds its rider.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == Delivering
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// TransitionTo returns target if the move from s is allowed.
// Otherwise the error wraps ErrInvalidTransition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	for _, next := range getTransitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
}
