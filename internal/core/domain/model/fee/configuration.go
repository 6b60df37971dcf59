// Package fee holds the process-wide fee configuration: the flat delivery fee charged to
// customers and paid to riders, the platform commission taken from restaurants and the
// tax rate applied to customer totals.
package fee

import (
	"errors"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Setting keys as stored in the system settings table.
const (
	KeyDeliveryFee    = "delivery_fee"
	KeyCommissionRate = "commission_rate"
	KeyTaxRate        = "tax_rate"
)

var ErrConfigurationIsNotConstructed = errors.New("Configuration must be created via NewConfiguration constructor")

type Configuration struct {
	deliveryFee    kernel.Money
	commissionRate kernel.Percent
	taxRate        kernel.Percent
	guard          guard.ConstructorGuard
}

// NewConfiguration creates a fee configuration from already validated amounts.
func NewConfiguration(deliveryFee kernel.Money, commissionRate, taxRate kernel.Percent) Configuration {
	return Configuration{
		deliveryFee:    deliveryFee,
		commissionRate: commissionRate,
		taxRate:        taxRate,
		guard:          guard.NewConstructorGuard(),
	}
}

// Defaults is used whenever a setting is missing or cannot be parsed.
func Defaults() Configuration {
	deliveryFee, _ := kernel.NewMoney(decimal.NewFromInt(50))
	commission, _ := kernel.NewPercent(decimal.NewFromInt(10))
	tax, _ := kernel.NewPercent(decimal.NewFromInt(8))
	return NewConfiguration(deliveryFee, commission, tax)
}

// DefaultValue returns the default raw value of a setting key.
func DefaultValue(key string) string {
	d := Defaults()
	switch key {
	case KeyDeliveryFee:
		return d.deliveryFee.String()
	case KeyCommissionRate:
		return d.commissionRate.String()
	case KeyTaxRate:
		return d.taxRate.String()
	default:
		return ""
	}
}

func (c Configuration) Validate() error {
	return c.guard.Validate(ErrConfigurationIsNotConstructed)
}

// DeliveryFee returns the fee charged for delivery.
func (c Configuration) DeliveryFee() kernel.Money { return c.deliveryFee }

// CommissionRate returns the platform commission rate.
func (c Configuration) CommissionRate() kernel.Percent { return c.commissionRate }

// TaxRate returns the tax rate applied to order subtotals.
func (c Configuration) TaxRate() kernel.Percent { return c.taxRate }

// Values flattens the configuration into setting rows.
func (c Configuration) Values() map[string]string {
	return map[string]string{
		KeyDeliveryFee:    c.deliveryFee.String(),
		KeyCommissionRate: c.commissionRate.String(),
		KeyTaxRate:        c.taxRate.String(),
	}
}
