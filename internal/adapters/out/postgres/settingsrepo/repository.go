// Package settingsrepo stores process-wide key/value settings such as the fee configuration.
package settingsrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingDTO struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (SettingDTO) TableName() string {
	return "system_settings"
}

// GormSettingsRepository implements ports.SettingsRepository. It works outside the
// unit of work; every call is its own statement.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a repository over the system_settings table.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetAll returns every stored setting keyed by name.
func (r *GormSettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var dtos []SettingDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(dtos))
	for _, dto := range dtos {
		values[dto.Key] = dto.Value
	}
	return values, nil
}

// Upsert writes all values in one statement.
func (r *GormSettingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	now := time.Now().UTC()
	dtos := make([]SettingDTO, 0, len(values))
	for key, value := range values {
		dtos = append(dtos, SettingDTO{Key: key, Value: value, UpdatedAt: now})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&dtos).Error
}
