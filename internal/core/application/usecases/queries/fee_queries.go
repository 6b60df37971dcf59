package queries

import (
	"context"
	"errors"

	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/pkg/guard"
)

var (
	ErrGetFeeConfigurationQueryIsNotConstructed = errors.New(
		"GetFeeConfigurationQuery must be created via NewGetFeeConfigurationQuery constructor",
	)
	ErrGetFeeQuoteQueryIsNotConstructed = errors.New("GetFeeQuoteQuery must be created via NewGetFeeQuoteQuery constructor")
)

// FeeConfigurationProvider is satisfied by the cached fee configuration service.
type FeeConfigurationProvider interface {
	Get(ctx context.Context) fee.Configuration
}

type GetFeeConfigurationQuery struct {
	guard guard.ConstructorGuard
}

// NewGetFeeConfigurationQuery creates a query for the current fee configuration.
func NewGetFeeConfigurationQuery() GetFeeConfigurationQuery {
	return GetFeeConfigurationQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFeeConfigurationQueryIsNotConstructed if validation fails.
func (q GetFeeConfigurationQuery) Validate() error {
	return q.guard.Validate(ErrGetFeeConfigurationQueryIsNotConstructed)
}

type GetFeeConfigurationQueryResponse struct {
	DeliveryFee    kernel.Money
	CommissionRate kernel.Percent
	TaxRate        kernel.Percent
}

type GetFeeConfigurationQueryHandler struct {
	fees FeeConfigurationProvider
}

// NewGetFeeConfigurationQueryHandler creates a handler for get fee configuration requests.
func NewGetFeeConfigurationQueryHandler(fees FeeConfigurationProvider) GetFeeConfigurationQueryHandler {
	return GetFeeConfigurationQueryHandler{fees: fees}
}

// Handle returns the cached or stored fee configuration.
func (h GetFeeConfigurationQueryHandler) Handle(
	ctx context.Context,
	query GetFeeConfigurationQuery,
) (GetFeeConfigurationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFeeConfigurationQueryResponse{}, err
	}

	cfg := h.fees.Get(ctx)
	return GetFeeConfigurationQueryResponse{
		DeliveryFee:    cfg.DeliveryFee(),
		CommissionRate: cfg.CommissionRate(),
		TaxRate:        cfg.TaxRate(),
	}, nil
}

// GetFeeQuoteQuery prices a cart subtotal with the current delivery fee and tax.
type GetFeeQuoteQuery struct {
	subtotal kernel.Money
	guard    guard.ConstructorGuard
}

// NewGetFeeQuoteQuery creates a query pricing an order subtotal.
func NewGetFeeQuoteQuery(subtotal kernel.Money) GetFeeQuoteQuery {
	return GetFeeQuoteQuery{subtotal: subtotal, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFeeQuoteQueryIsNotConstructed if validation fails.
func (q GetFeeQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetFeeQuoteQueryIsNotConstructed)
}

type GetFeeQuoteQueryHandler struct {
	fees       FeeConfigurationProvider
	calculator services.FeeCalculator
}

// NewGetFeeQuoteQueryHandler creates a handler for get fee quote requests.
func NewGetFeeQuoteQueryHandler(fees FeeConfigurationProvider) GetFeeQuoteQueryHandler {
	return GetFeeQuoteQueryHandler{fees: fees, calculator: services.NewFeeCalculator()}
}

// Handle prices the subtotal with the current configuration.
func (h GetFeeQuoteQueryHandler) Handle(ctx context.Context, query GetFeeQuoteQuery) (services.Quote, error) {
	if err := query.Validate(); err != nil {
		return services.Quote{}, err
	}
	return h.calculator.CustomerTotal(query.subtotal, h.fees.Get(ctx))
}
