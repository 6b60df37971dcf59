package earningrepo

import (
	"context"

	"mealdispatch/internal/core/domain/model/earning"
	"mealdispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormEarningRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEarningRepository creates a repository for earning persistence.
// Requires a database connection and an aggregate tracker for domain events.
func NewGormEarningRepository(db *gorm.DB, tracker aggregateTracker) *GormEarningRepository {
	return &GormEarningRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new earning.
func (r *GormEarningRepository) Add(ctx context.Context, aggregate *earning.Earning) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update records payout state; amounts are fixed at creation.
func (r *GormEarningRepository) Update(ctx context.Context, aggregate *earning.Earning) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&EarningDTO{}).
		Where("id = ?", dto.ID).
		Select("payout_batch_id", "paid_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ExistsForOrder reports whether an earning was already recorded for the order.
func (r *GormEarningRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&EarningDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetUnpaidByRestaurant locks and returns the unpaid earnings, oldest first.
func (r *GormEarningRepository) GetUnpaidByRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*earning.Earning, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EarningDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("restaurant_id = ? AND paid_at IS NULL", restaurantID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	earnings := make([]*earning.Earning, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		earnings = append(earnings, e)
	}

	return earnings, nil
}
