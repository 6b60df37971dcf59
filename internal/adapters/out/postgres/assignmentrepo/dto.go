// Package assignmentrepo persists delivery assignments.
package assignmentrepo

import (
	"time"

	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiveOrderIndex enforces at most one live assignment per order. It is created by the
// migration because gorm tags cannot express the IN list.
const LiveOrderIndex = "idx_assignments_live_order"

type AssignmentDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	RiderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      int             `gorm:"type:smallint;not null;index"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AssignedAt  time.Time       `gorm:"not null"`
	PickedUpAt  *time.Time
	DeliveredAt *time.Time `gorm:"index"`
	Notes       string     `gorm:"type:text;not null;default:''"`
	Reason      string     `gorm:"type:text;not null;default:''"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID().Bytes(),
		OrderID:     a.OrderID().Bytes(),
		RiderID:     a.RiderID().Bytes(),
		Status:      int(a.Status()),
		DeliveryFee: a.DeliveryFee().Decimal(),
		AssignedAt:  a.AssignedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),
		Notes:       a.Notes(),
		Reason:      a.Reason(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.UUIDFromGoogle(dto.RiderID)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, riderID,
		assignment.Status(dto.Status),
		fee,
		dto.AssignedAt,
		dto.PickedUpAt, dto.DeliveredAt,
		dto.Notes, dto.Reason,
		dto.UpdatedAt,
	)
}

// ActiveStatuses returns the live statuses as stored in the status column.
func ActiveStatuses() []int {
	statuses := make([]int, 0, len(assignment.ActiveStatuses))
	for _, s := range assignment.ActiveStatuses {
		statuses = append(statuses, int(s))
	}
	return statuses
}
