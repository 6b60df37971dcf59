package catalog_test

import (
	"testing"
	"time"

	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestaurant_NotificationEmail(t *testing.T) {
	tests := []struct {
		name    string
		contact string
		owner   string
		want    string
		wantErr error
	}{
		{"contact preferred", "kitchen@pizza.test", "owner@pizza.test", "kitchen@pizza.test", nil},
		{"owner fallback", "", "owner@pizza.test", "owner@pizza.test", nil},
		{"invalid contact", "not-an-email", "owner@pizza.test", "", errs.ErrValueIsInvalid},
		{"none", " ", "", "", errs.ErrValueIsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := catalog.NewRestaurant(kernel.NewUUID(), "Pizza Place", tt.contact, tt.owner, time.Now())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.NotificationEmail())
			assert.True(t, r.IsActive())
		})
	}
}

func TestMeal_EnsureOrderable(t *testing.T) {
	restaurantID := kernel.NewUUID()
	price, err := kernel.MoneyFromString("9.90")
	require.NoError(t, err)

	meal, err := catalog.NewMeal(kernel.NewUUID(), restaurantID, "Ramen", price, true)
	require.NoError(t, err)
	require.NoError(t, meal.EnsureOrderable(restaurantID))

	err = meal.EnsureOrderable(kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	unavailable, err := catalog.NewMeal(kernel.NewUUID(), restaurantID, "Udon", price, false)
	require.NoError(t, err)
	err = unavailable.EnsureOrderable(restaurantID)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "meal is not available")
}

func TestNewMeal_Validation(t *testing.T) {
	_, err := catalog.NewMeal(kernel.NewUUID(), kernel.NewUUID(), "", kernel.ZeroMoney(), true)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
