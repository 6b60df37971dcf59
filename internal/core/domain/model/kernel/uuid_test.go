package kernel_test

import (
	"encoding/json"
	"testing"

	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsEqual(id2))
	assert.True(t, id1.IsEqual(id1))
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name  string
		input string
	}{
		{"canonical", canonical},
		{"braces", "{550e8400-e29b-41d4-a716-446655440000}"},
		{"urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000"},
		{"no hyphens", "550e8400e29b41d4a716446655440000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)

			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}

	t.Run("garbage is invalid", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	source := uuid.New()

	id, err := kernel.UUIDFromBytes(source[:])
	require.NoError(t, err)
	assert.Equal(t, source, id.Bytes())

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUUID_ZeroValueIsInvalid(t *testing.T) {
	var id kernel.UUID

	require.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		OrderID kernel.UUID `json:"order_id"`
	}
	id := kernel.NewUUID()

	raw, err := json.Marshal(payload{OrderID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":"`+id.String()+`"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, id.IsEqual(decoded.OrderID))
}

func TestUUID_JSON_ZeroValueRejectedBothWays(t *testing.T) {
	type payload struct {
		OrderID kernel.UUID `json:"order_id"`
	}

	_, err := json.Marshal(payload{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var decoded payload
	err = json.Unmarshal([]byte(`{"order_id":"`+uuid.Nil.String()+`"}`), &decoded)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
