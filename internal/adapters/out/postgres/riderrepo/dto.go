// Package riderrepo persists rider availability.
package riderrepo

import (
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

type RiderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Approval        int       `gorm:"type:smallint;not null;index:idx_riders_eligibility,priority:1"`
	Active          bool      `gorm:"not null;index:idx_riders_eligibility,priority:2"`
	Online          bool      `gorm:"not null;index:idx_riders_eligibility,priority:3"`
	LastActiveAt    *time.Time
	TotalDeliveries int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:              r.ID().Bytes(),
		Name:            r.Name(),
		Approval:        int(r.Approval()),
		Active:          r.IsActive(),
		Online:          r.IsOnline(),
		LastActiveAt:    r.LastActiveAt(),
		TotalDeliveries: r.TotalDeliveries(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(
		id,
		dto.Name,
		rider.Approval(dto.Approval),
		dto.Online,
		dto.Active,
		dto.LastActiveAt,
		dto.TotalDeliveries,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
