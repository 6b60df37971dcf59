package services_test

import (
	"testing"

	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func percent(t *testing.T, s string) kernel.Percent {
	t.Helper()
	p, err := kernel.PercentFromString(s)
	require.NoError(t, err)
	return p
}

func TestFeeCalculator_CustomerTotal(t *testing.T) {
	calc := services.NewFeeCalculator()

	t.Run("tax applies on top of the delivery fee", func(t *testing.T) {
		cfg := fee.NewConfiguration(money(t, "50"), percent(t, "10"), percent(t, "8"))

		quote, err := calc.CustomerTotal(money(t, "1000"), cfg)

		require.NoError(t, err)
		assert.Equal(t, "1134.00", quote.Total.String())
		assert.Equal(t, "84.00", quote.Tax.String())
		assert.Equal(t, "50.00", quote.DeliveryFee.String())
	})

	t.Run("rounds to cents", func(t *testing.T) {
		cfg := fee.NewConfiguration(money(t, "2.99"), percent(t, "10"), percent(t, "7.25"))

		quote, err := calc.CustomerTotal(money(t, "10.01"), cfg)

		require.NoError(t, err)
		// (10.01 + 2.99) * 0.0725 = 0.9425
		assert.Equal(t, "0.94", quote.Tax.String())
		assert.Equal(t, "13.94", quote.Total.String())
	})

	t.Run("zero configuration is rejected", func(t *testing.T) {
		_, err := calc.CustomerTotal(money(t, "10"), fee.Configuration{})

		require.ErrorIs(t, err, fee.ErrConfigurationIsNotConstructed)
	})
}

func TestFeeCalculator_RestaurantEarning(t *testing.T) {
	calc := services.NewFeeCalculator()

	tests := []struct {
		amount, rate, net, commission string
	}{
		{"1000", "15", "850.00", "150.00"},
		{"1000", "10", "900.00", "100.00"},
		{"33.33", "10", "30.00", "3.33"},
		{"19.99", "0", "19.99", "0.00"},
		{"19.99", "100", "0.00", "19.99"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+"@"+tt.rate, func(t *testing.T) {
			amount := money(t, tt.amount)

			split, err := calc.RestaurantEarning(amount, percent(t, tt.rate))

			require.NoError(t, err)
			assert.Equal(t, tt.net, split.Net.String())
			assert.Equal(t, tt.commission, split.Commission.String())
			assert.True(t, split.Net.Add(split.Commission).IsEqual(amount))
		})
	}
}
