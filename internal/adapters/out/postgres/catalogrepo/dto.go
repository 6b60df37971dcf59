// Package catalogrepo persists restaurants and their meals.
package catalogrepo

import (
	"time"

	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	NotificationEmail string    `gorm:"type:varchar(255);not null"`
	Active            bool      `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null"`
	Meals             []MealDTO `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MealDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (MealDTO) TableName() string {
	return "meals"
}

func restaurantFromDomain(r *catalog.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:                r.ID().Bytes(),
		Name:              r.Name(),
		NotificationEmail: r.NotificationEmail(),
		Active:            r.IsActive(),
		CreatedAt:         r.CreatedAt(),
	}
}

func restaurantToDomain(dto RestaurantDTO) (*catalog.Restaurant, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreRestaurant(id, dto.Name, dto.NotificationEmail, dto.Active, dto.CreatedAt)
}

func mealFromDomain(m *catalog.Meal) MealDTO {
	return MealDTO{
		ID:           m.ID().Bytes(),
		RestaurantID: m.RestaurantID().Bytes(),
		Name:         m.Name(),
		Price:        m.Price().Decimal(),
		Available:    m.IsAvailable(),
	}
}

func mealToDomain(dto MealDTO) (*catalog.Meal, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromGoogle(dto.RestaurantID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return catalog.NewMeal(id, restaurantID, dto.Name, price, dto.Available)
}
