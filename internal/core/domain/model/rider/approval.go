package rider

import (
	"fmt"
	"strings"

	"mealdispatch/internal/pkg/errs"
)

// Approval is the administrative review state of a rider account.
type Approval int

const (
	ApprovalUnknown Approval = iota
	ApprovalPending
	Approved
	Rejected
	Suspended
)

func getApprovalStrings() map[Approval]string {
	return map[Approval]string{
		ApprovalUnknown: "unknown",
		ApprovalPending: "pending",
		Approved:        "approved",
		Rejected:        "rejected",
		Suspended:       "suspended",
	}
}

// ParseApproval converts an approval name, ignoring case and surrounding space.
func ParseApproval(s string) (Approval, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for approval, name := range getApprovalStrings() {
		if approval != ApprovalUnknown && name == normalized {
			return approval, nil
		}
	}
	return ApprovalUnknown, errs.NewValueIsInvalidErrorWithCause("approval", fmt.Errorf("%q is not an approval status", s))
}

func (a Approval) Validate() error {
	if a <= ApprovalUnknown || a > Suspended {
		return errs.NewValueIsInvalidErrorWithCause("approval", fmt.Errorf("%d is not a valid approval status", a))
	}
	return nil
}

func (a Approval) String() string {
	if str, ok := getApprovalStrings()[a]; ok {
		return str
	}
	return "unknown"
}
