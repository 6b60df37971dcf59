// Package postgres implements the unit of work on top of GORM.
//
// Repositories obtained from a unit of work run inside its transaction once Begin has been
// called and register every aggregate they write. On Commit the unit of work drains the
// domain events of those aggregates, hands them to the in-transaction EventDispatcher
// (which may write more aggregates, e.g. an earning for a delivered order), commits, and
// only then passes the events to the EventPublisher. A failed commit publishes nothing.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"errors"
	"fmt"

	"mealdispatch/internal/adapters/out/postgres/assignmentrepo"
	"mealdispatch/internal/adapters/out/postgres/catalogrepo"
	"mealdispatch/internal/adapters/out/postgres/earningrepo"
	"mealdispatch/internal/adapters/out/postgres/orderrepo"
	"mealdispatch/internal/adapters/out/postgres/riderrepo"
	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/ports"

	"gorm.io/gorm"
)

// maxDispatchRounds bounds event handlers that keep producing new events.
const maxDispatchRounds = 8

var ErrEventDispatchLoop = errors.New("domain events did not settle")

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type Option func(*GormUnitOfWorkFactory)

// WithEventDispatcher runs subscribers inside the transaction before commit.
func WithEventDispatcher(dispatcher ports.EventDispatcher) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.dispatcher = dispatcher
	}
}

// WithEventPublisher receives the events of every successful commit.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.publisher = publisher
	}
}

type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher ports.EventDispatcher
	publisher  ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory producing units of work over db.
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a fresh unit of work. Instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		dispatcher:        f.dispatcher,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	dispatcher        ports.EventDispatcher
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit dispatches pending domain events, commits and publishes the events.
// If a subscriber fails the transaction stays open so the caller's Rollback discards it.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	published, err := uow.dispatchEvents(ctx)
	if err != nil {
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return err
	}

	if uow.publisher != nil && len(published) > 0 {
		uow.publisher.Publish(ctx, published)
	}
	return nil
}

// Rollback aborts the transaction and drops tracked aggregates.
// Calling it after Commit returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// AssignmentRepository returns an assignment repository bound to the current transaction.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

// RiderRepository returns a rider repository bound to the current transaction.
func (uow *GormUnitOfWork) RiderRepository() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) EarningRepository() ports.EarningRepository {
	return earningrepo.NewGormEarningRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RestaurantRepository() ports.RestaurantRepository {
	return catalogrepo.NewGormRestaurantRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) MealRepository() ports.MealRepository {
	return catalogrepo.NewGormMealRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// dispatchEvents drains events round by round until subscribers stop producing new ones
// and returns everything that was drained, in order.
func (uow *GormUnitOfWork) dispatchEvents(ctx context.Context) ([]events.Event, error) {
	var all []events.Event

	for round := 0; ; round++ {
		pending := uow.drainEvents()
		if len(pending) == 0 {
			return all, nil
		}
		if round == maxDispatchRounds {
			return nil, fmt.Errorf("%w after %d rounds", ErrEventDispatchLoop, maxDispatchRounds)
		}

		all = append(all, pending...)
		if uow.dispatcher == nil {
			continue
		}

		for _, event := range pending {
			if err := uow.dispatcher.Dispatch(ctx, uow, event); err != nil {
				return nil, fmt.Errorf("handle %s: %w", event.EventName(), err)
			}
		}
	}
}

func (uow *GormUnitOfWork) drainEvents() []events.Event {
	var pending []events.Event
	seen := make(map[any]struct{}, len(uow.trackedAggregates))

	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(events.Source)
		if !ok {
			continue
		}
		if _, dup := seen[tracked.Aggregate]; dup {
			continue
		}
		seen[tracked.Aggregate] = struct{}{}

		pending = append(pending, source.DomainEvents()...)
		source.ClearDomainEvents()
	}

	return pending
}
