package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"mealdispatch/internal/core/domain/events"
	"mealdispatch/internal/core/domain/model/earning"
	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/core/ports"
)

type FeeConfigurationProvider interface {
	Get(ctx context.Context) fee.Configuration
}

// EarningHandler records the restaurant earning of a delivered order. The commission rate
// is snapshotted from the configuration at delivery time. A second OrderDelivered for the
// same order is ignored.
type EarningHandler struct {
	fees       FeeConfigurationProvider
	calculator services.FeeCalculator
	logger     *slog.Logger
}

// NewEarningHandler creates the handler that books restaurant earnings.
func NewEarningHandler(fees FeeConfigurationProvider, logger *slog.Logger) *EarningHandler {
	return &EarningHandler{
		fees:       fees,
		calculator: services.NewFeeCalculator(),
		logger:     logger.With("component", "earning_handler"),
	}
}

// Register subscribes the handler to OrderDelivered.
func (h *EarningHandler) Register(r *Registry) {
	Subscribe(r, h.HandleOrderDelivered)
}

// HandleOrderDelivered records the restaurant's earning for a delivered order
// using the current commission rate. Repeated deliveries of the same event are ignored.
func (h *EarningHandler) HandleOrderDelivered(ctx context.Context, uow ports.UnitOfWork, event events.OrderDelivered) error {
	repo := uow.EarningRepository()

	exists, err := repo.ExistsForOrder(ctx, event.OrderID)
	if err != nil {
		return err
	}
	if exists {
		h.logger.InfoContext(ctx, "Earning already recorded", "order_id", event.OrderID.String())
		return nil
	}

	rate := h.fees.Get(ctx).CommissionRate()
	split, err := h.calculator.RestaurantEarning(event.Total, rate)
	if err != nil {
		return fmt.Errorf("split order %s: %w", event.OrderID, err)
	}

	e, err := earning.NewEarning(kernel.NewUUID(), event.OrderID, event.RestaurantID, event.Total, rate, split, event.OccurredAt)
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, e); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Restaurant earning recorded",
		"order_id", event.OrderID.String(),
		"net", split.Net.String(),
		"commission", split.Commission.String(),
	)
	return nil
}
