// Package commands contains the use cases that change state. Every handler validates its
// command, opens a unit of work, loads aggregates through the repositories of that unit of
// work, applies domain behavior and commits. The deferred rollback is a no-op after a
// successful commit.
package commands

import (
	"context"

	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	EarningRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	CatalogRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
		MealRepository() ports.MealRepository
	}

	// OrderUoW is used to place orders against the catalog.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	RiderUoWFactory interface {
		Create() RiderUoW
	}

	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	AssignmentUoW interface {
		TxManager
		AssignmentRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	EarningUoW interface {
		TxManager
		EarningRepoFactory
	}

	EarningUoWFactory interface {
		Create() EarningUoW
	}

	// UoW spans orders, assignments and riders. Used by every use case that moves an
	// order through the delivery flow.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... create the assignment
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		RiderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// FeeConfigurationProvider returns the current fee configuration, falling back to
// defaults when storage is unavailable.
type FeeConfigurationProvider interface {
	Get(ctx context.Context) fee.Configuration
}

type FeeConfigurationStore interface {
	Update(ctx context.Context, cfg fee.Configuration) error
}
