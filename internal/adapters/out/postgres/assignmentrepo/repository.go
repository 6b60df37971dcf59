package assignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"mealdispatch/internal/adapters/out/postgres/dberr"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a repository for assignment persistence.
// Requires a database connection and an aggregate tracker for domain events.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new assignment. A second live assignment for the same order violates
// the partial unique index and is reported as assignment.ErrAlreadyAssigned.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: order %s", assignment.ErrAlreadyAssigned, aggregate.OrderID())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the assignment's mutable fields and tracks it for event dispatch.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "picked_up_at", "delivered_at", "notes", "reason", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		if dberr.IsUniqueViolation(result.Error) {
			return fmt.Errorf("%w: order %s", assignment.ErrAlreadyAssigned, aggregate.OrderID())
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by its identifier.
// Returns an ObjectNotFoundError if it does not exist.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an assignment and locks its row until the transaction ends.
func (r *GormAssignmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetActiveByOrder returns the live assignment of an order or an ObjectNotFoundError.
func (r *GormAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID.Bytes(), ActiveStatuses()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("live assignment of order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) get(tx *gorm.DB, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := tx.Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
