package order

import (
	"fmt"
	"strings"

	"mealdispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned when the requested status is not reachable from the
// current one.
var ErrInvalidTransition = errs.NewConflictError("order status transition is not allowed")

// Status is a stage of the order lifecycle.
//
//	pending ─> confirmed ─> preparing ─> ready ─> delivering ─> delivered
//	   │           │            │          │  ^        │
//	   └───────────┴────────────┴──────────┴──┼────────┴──> cancelled
//	                                          └── assignment cancelled
//
// Delivered and Cancelled are terminal. The delivering -> ready edge is only taken by
// Order.ReturnToPool.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	Delivering
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Preparing:  "preparing",
		Ready:      "ready",
		Delivering: "delivering",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getForwardTransitions lists the successors of every non-terminal status, cancellation
// included.
func getForwardTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no successors
	return map[Status][]Status{
		Pending:    {Confirmed, Cancelled},
		Confirmed:  {Preparing, Cancelled},
		Preparing:  {Ready, Cancelled},
		Ready:      {Delivering, Cancelled},
		Delivering: {Delivered, Cancelled},
	}
}

// ParseStatus accepts the lowercase names used on the wire.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate returns an error for Unknown and out of range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
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

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is a direct successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getForwardTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
