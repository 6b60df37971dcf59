// Package orderrepo persists the order aggregate: one row in orders plus its immutable
// line items in order_items.
package orderrepo

import (
	"time"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status             int             `gorm:"type:smallint;not null;index"`
	DeliveryAddress    string          `gorm:"type:text;not null"`
	Notes              string          `gorm:"type:text;not null;default:''"`
	CancellationReason string          `gorm:"type:text;not null;default:''"`
	CreatedAt          time.Time       `gorm:"not null;index"`
	UpdatedAt          time.Time       `gorm:"not null"`
	Items              []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO keeps the meal name and unit price as they were when the order was placed.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	MealID    uuid.UUID       `gorm:"type:uuid;not null"`
	MealName  string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := o.Items()

	dto := OrderDTO{
		ID:                 orderID,
		CustomerID:         o.CustomerID().Bytes(),
		RestaurantID:       o.RestaurantID().Bytes(),
		Total:              o.Total().Decimal(),
		Status:             int(o.Status()),
		DeliveryAddress:    o.DeliveryAddress(),
		Notes:              o.Notes(),
		CancellationReason: o.CancellationReason(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		Items:              make([]OrderItemDTO, 0, len(items)),
	}

	for idx, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   orderID,
			Position:  idx,
			MealID:    item.MealID().Bytes(),
			MealName:  item.MealName(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromGoogle(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		mealID, idErr := kernel.UUIDFromGoogle(itemDTO.MealID)
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(mealID, itemDTO.MealName, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		items,
		total,
		order.Status(dto.Status),
		dto.DeliveryAddress,
		dto.Notes,
		dto.CancellationReason,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
