package services

import (
	"mealdispatch/internal/core/domain/model/earning"
	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Quote is the breakdown of what a customer pays for an order.
type Quote struct {
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Tax         kernel.Money
	Total       kernel.Money
}

type FeeCalculator struct{}

// NewFeeCalculator creates a calculator. It holds no state.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// CustomerTotal computes (subtotal + delivery_fee) × (1 + tax_rate/100), rounded to cents.
// Tax is applied on top of the delivery fee.
func (FeeCalculator) CustomerTotal(subtotal kernel.Money, cfg fee.Configuration) (Quote, error) {
	if err := cfg.Validate(); err != nil {
		return Quote{}, err
	}

	taxable := subtotal.Add(cfg.DeliveryFee())
	tax, err := taxable.Scale(cfg.TaxRate().Fraction())
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: cfg.DeliveryFee(),
		Tax:         tax,
		Total:       taxable.Add(tax),
	}, nil
}

// RestaurantEarning splits an order amount into the restaurant's net earning,
// amount × (1 − rate/100), and the platform commission. The commission is derived as
// the remainder so both parts always add up to the amount after rounding.
func (FeeCalculator) RestaurantEarning(amount kernel.Money, commissionRate kernel.Percent) (earning.Split, error) {
	net, err := amount.Scale(decimal.NewFromInt(1).Sub(commissionRate.Fraction()))
	if err != nil {
		return earning.Split{}, err
	}

	commission, err := amount.Sub(net)
	if err != nil {
		return earning.Split{}, err
	}

	return earning.Split{Net: net, Commission: commission}, nil
}
