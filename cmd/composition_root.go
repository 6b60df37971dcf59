package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpin "mealdispatch/internal/adapters/in/http"
	"mealdispatch/internal/adapters/out/cache"
	"mealdispatch/internal/adapters/out/notify"
	"mealdispatch/internal/adapters/out/postgres"
	"mealdispatch/internal/adapters/out/postgres/settingsrepo"
	"mealdispatch/internal/core/application/eventhandlers"
	"mealdispatch/internal/core/application/feeconfig"
	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/application/usecases/queries"
	"mealdispatch/internal/core/ports"
	"mealdispatch/internal/jobs"

	"gorm.io/gorm"
)

const redisKeyPrefix = "mealdispatch:"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	fees       *feeconfig.Service
	notifier   *notify.Dispatcher
	logger     *slog.Logger
	closers    []io.Closer
}

// NewCompositionRoot connects the optional backends named in cfg and wires the unit of
// work with the in-transaction event registry and the post-commit notifier.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		logger: logger,
	}

	feeCache, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	c.fees = feeconfig.NewService(settingsrepo.NewGormSettingsRepository(gormDB), feeCache, cfg.FeeCacheTTL, logger)

	sinks, err := c.newSinks()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.notifier = notify.NewDispatcher(cfg.NotifyQueueSize, logger, sinks...)

	registry := eventhandlers.NewRegistry()
	eventhandlers.NewEarningHandler(c.fees, logger).Register(registry)

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB,
		postgres.WithEventDispatcher(registry),
		postgres.WithEventPublisher(c.notifier),
	)
	return c, nil
}

func (c *CompositionRoot) newCache(ctx context.Context) (ports.Cache, error) {
	if c.cfg.RedisAddr == "" {
		memory := cache.NewMemoryCache()
		memory.StartJanitor(ctx)
		return memory, nil
	}

	client, err := cache.NewRedisClient(ctx, c.cfg.RedisAddr, c.cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, client)
	return cache.NewRedisCache(client, redisKeyPrefix), nil
}

func (c *CompositionRoot) newSinks() ([]ports.NotificationSink, error) {
	sinks := []ports.NotificationSink{notify.NewLogSink(c.logger)}

	if len(c.cfg.KafkaBrokers) > 0 {
		kafkaSink := notify.NewKafkaSink(c.cfg.KafkaBrokers, c.cfg.KafkaTopic)
		c.closers = append(c.closers, kafkaSink)
		sinks = append(sinks, kafkaSink)
	}

	if c.cfg.AMQPURL != "" {
		amqpSink, err := notify.NewAMQPSink(c.cfg.AMQPURL)
		if err != nil {
			return nil, fmt.Errorf("amqp sink: %w", err)
		}
		c.closers = append(c.closers, amqpSink)
		sinks = append(sinks, amqpSink)
	}

	if c.cfg.TelegramToken != "" {
		telegramSink, err := notify.NewTelegramSink(c.cfg.TelegramToken, c.cfg.TelegramAdminChatID)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, telegramSink)
	}

	return sinks, nil
}

// Notifier must be run by the caller for post-commit events to leave the process.
func (c *CompositionRoot) Notifier() *notify.Dispatcher {
	return c.notifier
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoW() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoW() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) earningUoW() commands.EarningUoWFactory {
	return FuncEarningUoWFactory(func() commands.EarningUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoW(), c.fees)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.uow(), c.fees)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uow(), c.fees)
}

func (c *CompositionRoot) CreateAutoAssignCommandHandler() commands.AutoAssignCommandHandler {
	return commands.NewAutoAssignCommandHandler(c.uow(), c.fees)
}

func (c *CompositionRoot) CreateAdvanceAssignmentCommandHandler() commands.AdvanceAssignmentCommandHandler {
	return commands.NewAdvanceAssignmentCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateUpdateAssignmentNotesCommandHandler() commands.UpdateAssignmentNotesCommandHandler {
	return commands.NewUpdateAssignmentNotesCommandHandler(c.assignmentUoW())
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.riderUoW())
}

func (c *CompositionRoot) CreateSetRiderOnlineCommandHandler() commands.SetRiderOnlineCommandHandler {
	return commands.NewSetRiderOnlineCommandHandler(c.riderUoW())
}

func (c *CompositionRoot) CreateChangeRiderApprovalCommandHandler() commands.ChangeRiderApprovalCommandHandler {
	return commands.NewChangeRiderApprovalCommandHandler(c.riderUoW())
}

func (c *CompositionRoot) CreateSetRiderActiveCommandHandler() commands.SetRiderActiveCommandHandler {
	return commands.NewSetRiderActiveCommandHandler(c.riderUoW())
}

func (c *CompositionRoot) CreateCreateRestaurantCommandHandler() commands.CreateRestaurantCommandHandler {
	return commands.NewCreateRestaurantCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateAddMealCommandHandler() commands.AddMealCommandHandler {
	return commands.NewAddMealCommandHandler(c.catalogUoW())
}

func (c *CompositionRoot) CreateCreatePayoutCommandHandler() commands.CreatePayoutCommandHandler {
	return commands.NewCreatePayoutCommandHandler(c.earningUoW())
}

func (c *CompositionRoot) CreateUpdateFeeConfigurationCommandHandler() commands.UpdateFeeConfigurationCommandHandler {
	return commands.NewUpdateFeeConfigurationCommandHandler(c.fees)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderEligibilityQueryHandler() queries.GetRiderEligibilityQueryHandler {
	return queries.NewGetRiderEligibilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderAssignmentsQueryHandler() queries.GetRiderAssignmentsQueryHandler {
	return queries.NewGetRiderAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderEarningsQueryHandler() queries.GetRiderEarningsQueryHandler {
	return queries.NewGetRiderEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEligibleRidersQueryHandler() queries.GetEligibleRidersQueryHandler {
	return queries.NewGetEligibleRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantEarningsQueryHandler() queries.GetRestaurantEarningsQueryHandler {
	return queries.NewGetRestaurantEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFeeConfigurationQueryHandler() queries.GetFeeConfigurationQueryHandler {
	return queries.NewGetFeeConfigurationQueryHandler(c.fees)
}

func (c *CompositionRoot) CreateGetFeeQuoteQueryHandler() queries.GetFeeQuoteQueryHandler {
	return queries.NewGetFeeQuoteQueryHandler(c.fees)
}

// HTTPHandlers collects every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		TransitionOrder:   c.CreateTransitionOrderStatusCommandHandler(),
		AcceptOrder:       c.CreateAcceptOrderCommandHandler(),
		AdvanceAssignment: c.CreateAdvanceAssignmentCommandHandler(),
		UpdateNotes:       c.CreateUpdateAssignmentNotesCommandHandler(),
		AssignRider:       c.CreateAssignRiderCommandHandler(),
		RegisterRider:     c.CreateRegisterRiderCommandHandler(),
		SetRiderOnline:    c.CreateSetRiderOnlineCommandHandler(),
		ChangeApproval:    c.CreateChangeRiderApprovalCommandHandler(),
		SetRiderActive:    c.CreateSetRiderActiveCommandHandler(),
		CreateRestaurant:  c.CreateCreateRestaurantCommandHandler(),
		AddMeal:           c.CreateAddMealCommandHandler(),
		CreatePayout:      c.CreateCreatePayoutCommandHandler(),
		UpdateFees:        c.CreateUpdateFeeConfigurationCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetAvailableOrders:    c.CreateGetAvailableOrdersQueryHandler(),
		GetRiderEligibility:   c.CreateGetRiderEligibilityQueryHandler(),
		GetRiderAssignments:   c.CreateGetRiderAssignmentsQueryHandler(),
		GetRiderEarnings:      c.CreateGetRiderEarningsQueryHandler(),
		GetEligibleRiders:     c.CreateGetEligibleRidersQueryHandler(),
		GetRestaurantEarnings: c.CreateGetRestaurantEarningsQueryHandler(),
		GetFees:               c.CreateGetFeeConfigurationQueryHandler(),
		GetFeeQuote:           c.CreateGetFeeQuoteQueryHandler(),
	}
}

// JobManager returns the scheduled jobs enabled by the configuration.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	var enabled []jobs.Job
	if c.cfg.AutoAssignEnabled {
		enabled = append(enabled, jobs.NewAutoAssignJob(c.CreateAutoAssignCommandHandler(), c.cfg.AutoAssignSchedule, c.logger))
	}
	return jobs.NewJobManager(c.logger, enabled...)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncEarningUoWFactory func() commands.EarningUoW

func (f FuncEarningUoWFactory) Create() commands.EarningUoW {
	return f()
}
