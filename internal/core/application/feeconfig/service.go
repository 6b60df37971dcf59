// Package feeconfig serves the fee configuration to use cases. Settings are read from the
// settings repository, cached for a TTL and invalidated explicitly when an admin writes
// new values. Broken or missing settings never fail a caller: the default is used and
// the problem is logged.
package feeconfig

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"mealdispatch/internal/core/domain/model/fee"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/ports"
	"mealdispatch/internal/pkg/errs"
)

const (
	cacheKey   = "fee_configuration"
	DefaultTTL = time.Hour
)

type Service struct {
	repo   ports.SettingsRepository
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewService creates the fee configuration service.
// A non-positive ttl falls back to DefaultTTL.
func NewService(repo ports.SettingsRepository, cache ports.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "fee_configuration"),
	}
}

// Get returns the current configuration. Values may be stale by up to the TTL.
func (s *Service) Get(ctx context.Context) fee.Configuration {
	raw, err := s.load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Falling back to default fee configuration", "error", err)
		return fee.Defaults()
	}

	deliveryFee, err := kernel.MoneyFromString(s.value(ctx, raw, fee.KeyDeliveryFee))
	if err != nil {
		deliveryFee = s.fallbackMoney(ctx, raw, fee.KeyDeliveryFee, err)
	}
	commission, err := kernel.PercentFromString(s.value(ctx, raw, fee.KeyCommissionRate))
	if err != nil {
		commission = s.fallbackPercent(ctx, raw, fee.KeyCommissionRate, err)
	}
	tax, err := kernel.PercentFromString(s.value(ctx, raw, fee.KeyTaxRate))
	if err != nil {
		tax = s.fallbackPercent(ctx, raw, fee.KeyTaxRate, err)
	}

	return fee.NewConfiguration(deliveryFee, commission, tax)
}

// Update stores every value of cfg and drops the cached copy so the next Get reads them.
func (s *Service) Update(ctx context.Context, cfg fee.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, cfg.Values()); err != nil {
		return err
	}
	return s.Invalidate(ctx)
}

// Invalidate drops the cached configuration so the next Get reloads it.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, cacheKey)
}

func (s *Service) load(ctx context.Context) (map[string]string, error) {
	if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.logger.WarnContext(ctx, "Fee configuration cache read failed", "error", err)
	} else if ok {
		var raw map[string]string
		if err = json.Unmarshal(cached, &raw); err == nil {
			return raw, nil
		}
		s.logger.WarnContext(ctx, "Dropping undecodable cached fee configuration", "error", err)
	}

	raw, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if err = s.cache.Set(ctx, cacheKey, encoded, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "Fee configuration cache write failed", "error", err)
	}
	return raw, nil
}

func (s *Service) value(ctx context.Context, raw map[string]string, key string) string {
	v, ok := raw[key]
	if !ok {
		s.logger.DebugContext(ctx, "Setting is not stored, using default", "key", key)
		return fee.DefaultValue(key)
	}
	return v
}

func (s *Service) fallbackMoney(ctx context.Context, raw map[string]string, key string, cause error) kernel.Money {
	s.report(ctx, raw, key, cause)
	m, _ := kernel.MoneyFromString(fee.DefaultValue(key))
	return m
}

func (s *Service) fallbackPercent(ctx context.Context, raw map[string]string, key string, cause error) kernel.Percent {
	s.report(ctx, raw, key, cause)
	p, _ := kernel.PercentFromString(fee.DefaultValue(key))
	return p
}

func (s *Service) report(ctx context.Context, raw map[string]string, key string, cause error) {
	s.logger.WarnContext(ctx, "Invalid fee setting, using default",
		"key", key, "error", errs.NewConfigurationError(key, raw[key], cause))
}
