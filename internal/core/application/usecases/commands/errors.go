package commands

import (
	"errors"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/pkg/errs"
)

var (
	ErrNoOrderFound       = errors.New("no order found")
	ErrNoEligibleRiders   = services.ErrNoEligibleRiders
	ErrOrderNotReady      = services.ErrOrderNotReady
	ErrAlreadyAssigned    = assignment.ErrAlreadyAssigned
	ErrNotAssignmentOwner = errs.NewConflictError("assignment belongs to another rider")
	ErrNothingToPayOut    = errs.NewConflictError("restaurant has no unpaid earnings")
)
