package earning_test

import (
	"testing"
	"time"

	"mealdispatch/internal/core/domain/model/earning"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newEarning(t *testing.T) *earning.Earning {
	t.Helper()
	rate, err := kernel.PercentFromString("15")
	require.NoError(t, err)

	e, err := earning.NewEarning(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		money(t, "1000"), rate,
		earning.Split{Net: money(t, "850"), Commission: money(t, "150")},
		time.Now())
	require.NoError(t, err)
	return e
}

func TestNewEarning(t *testing.T) {
	e := newEarning(t)

	assert.Equal(t, "850.00", e.NetAmount().String())
	assert.Equal(t, "150.00", e.CommissionAmount().String())
	assert.False(t, e.IsPaid())
}

func TestNewEarning_SplitMustAddUp(t *testing.T) {
	rate, err := kernel.PercentFromString("15")
	require.NoError(t, err)

	_, err = earning.NewEarning(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		money(t, "1000"), rate,
		earning.Split{Net: money(t, "850"), Commission: money(t, "149.99")},
		time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestEarning_MarkPaid(t *testing.T) {
	e := newEarning(t)
	batch := kernel.NewUUID()

	require.NoError(t, e.MarkPaid(batch, time.Now()))
	assert.True(t, e.IsPaid())
	assert.True(t, e.PayoutBatchID().IsEqual(batch))

	err := e.MarkPaid(kernel.NewUUID(), time.Now())
	require.ErrorIs(t, err, earning.ErrAlreadyPaid)
}
