// Package earningrepo persists restaurant earnings. order_id is unique, which makes a
// second earning for the same delivered order impossible.
package earningrepo

import (
	"time"

	"mealdispatch/internal/core/domain/model/earning"
	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EarningDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	RestaurantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetAmount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PayoutBatchID    *uuid.UUID      `gorm:"type:uuid;index"`
	PaidAt           *time.Time
	CreatedAt        time.Time `gorm:"not null"`
}

func (EarningDTO) TableName() string {
	return "earnings"
}

func fromDomain(e *earning.Earning) EarningDTO {
	var batchID *uuid.UUID
	if id := e.PayoutBatchID(); id != nil {
		raw := id.Bytes()
		batchID = &raw
	}

	return EarningDTO{
		ID:               e.ID().Bytes(),
		OrderID:          e.OrderID().Bytes(),
		RestaurantID:     e.RestaurantID().Bytes(),
		OrderAmount:      e.OrderAmount().Decimal(),
		CommissionRate:   e.CommissionRate().Decimal(),
		CommissionAmount: e.CommissionAmount().Decimal(),
		NetAmount:        e.NetAmount().Decimal(),
		PayoutBatchID:    batchID,
		PaidAt:           e.PaidAt(),
		CreatedAt:        e.CreatedAt(),
	}
}

func toDomain(dto EarningDTO) (*earning.Earning, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromGoogle(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.OrderAmount)
	if err != nil {
		return nil, err
	}
	rate, err := kernel.NewPercent(dto.CommissionRate)
	if err != nil {
		return nil, err
	}
	commission, err := kernel.NewMoney(dto.CommissionAmount)
	if err != nil {
		return nil, err
	}
	net, err := kernel.NewMoney(dto.NetAmount)
	if err != nil {
		return nil, err
	}

	var batchID *kernel.UUID
	if dto.PayoutBatchID != nil {
		bID, batchErr := kernel.UUIDFromGoogle(*dto.PayoutBatchID)
		if batchErr != nil {
			return nil, batchErr
		}
		batchID = &bID
	}

	return earning.RestoreEarning(
		id, orderID, restaurantID,
		amount, rate,
		earning.Split{Net: net, Commission: commission},
		batchID, dto.PaidAt,
		dto.CreatedAt,
	)
}
