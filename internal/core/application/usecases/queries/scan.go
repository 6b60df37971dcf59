// Package queries holds the read side. Handlers run plain SQL through gorm and return
// read models shaped for the HTTP layer; they never load aggregates for writing.
package queries

import (
	"time"

	"mealdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func toUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(id)
}

func toMoney(d decimal.Decimal) (kernel.Money, error) {
	return kernel.NewMoney(d)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
