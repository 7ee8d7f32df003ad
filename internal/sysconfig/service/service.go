// Package service implements configuration reads and writes.
package service

import (
	"context"
	"log/slog"
	"strconv"

	"govassist/internal/audit"
	"govassist/internal/sysconfig"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/requestcontext"
)

// Invalidator drops a cached configuration entry after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, key string)
}

// Service owns configuration settings. Writes invalidate the read-through
// cache so strategies observe the new value within one request.
type Service struct {
	store sysconfig.Store
	cache Invalidator
	audit audit.Publisher
	log   *slog.Logger
}

// New constructs a configuration service. cache may be nil.
func New(store sysconfig.Store, cache Invalidator, auditPublisher audit.Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, audit: auditPublisher, log: logger}
}

// List returns every stored setting merged over the compiled defaults, so
// operators see effective values for keys that were never written.
func (s *Service) List(ctx context.Context) ([]sysconfig.Setting, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list configurations")
	}

	seen := make(map[string]bool, len(stored))
	for _, setting := range stored {
		seen[setting.Key] = true
	}
	for key, value := range sysconfig.Defaults {
		if !seen[key] {
			stored = append(stored, sysconfig.Setting{Key: key, Value: value})
		}
	}
	return stored, nil
}

// Set writes one setting. Keys carrying numeric thresholds reject values
// that do not parse as integers.
func (s *Service) Set(ctx context.Context, key, value string) (*sysconfig.Setting, error) {
	if key == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "configuration key is required")
	}
	if value == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "configuration value is required")
	}
	if isNumericKey(key) {
		if _, err := strconv.Atoi(value); err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "configuration value must be an integer")
		}
	}

	setting := sysconfig.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Upsert(ctx, setting); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store configuration")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, key)
	}

	audit.Log(ctx, s.log, s.audit, audit.ActionConfigurationUpdated, requestcontext.RequestID(ctx),
		"subject", key,
	)
	s.log.InfoContext(ctx, "configuration updated",
		"request_id", requestcontext.RequestID(ctx),
		"key", key,
	)
	return &setting, nil
}

func isNumericKey(key string) bool {
	switch key {
	case sysconfig.KeyRetrenchmentPeriodMonths,
		sysconfig.KeyPrimarySchoolAgeMin,
		sysconfig.KeyPrimarySchoolAgeMax,
		sysconfig.KeyElderlyAgeThreshold:
		return true
	}
	return false
}
