// Package sysconfig exposes externally tunable thresholds as a key-value
// provider. Strategies that keep their rules outside scheme rows receive a
// Provider via constructor injection; nothing reads ambient globals.
package sysconfig

import (
	"context"
	"strconv"
)

// Configuration keys consumed by the eligibility engine.
const (
	KeyRetrenchmentEmploymentStatus = "RetrenchmentAssistance_EmploymentStatus"
	KeyRetrenchmentPeriodMonths     = "RetrenchmentAssistance_PeriodMonths"
	KeyPrimarySchoolAgeMin          = "PrimarySchoolAgeMin"
	KeyPrimarySchoolAgeMax          = "PrimarySchoolAgeMax"
	KeyElderlyAgeThreshold          = "ElderlyAgeThreshold"
)

// Defaults are the compiled fallback values. A missing or malformed stored
// value falls back here so the engine never fails on configuration.
var Defaults = map[string]string{
	KeyRetrenchmentEmploymentStatus: "unemployed",
	KeyRetrenchmentPeriodMonths:     "6",
	KeyPrimarySchoolAgeMin:          "6",
	KeyPrimarySchoolAgeMax:          "11",
	KeyElderlyAgeThreshold:          "65",
}

// Provider looks up one configuration value. Implementations must be cheap
// and must not fail: a miss returns ok=false and the caller falls back to
// the compiled default.
type Provider interface {
	Value(ctx context.Context, key string) (string, bool)
}

// StringValue returns the provider's value for key, or the compiled default.
func StringValue(ctx context.Context, p Provider, key string) string {
	if p != nil {
		if v, ok := p.Value(ctx, key); ok && v != "" {
			return v
		}
	}
	return Defaults[key]
}

// IntValue returns the provider's value for key parsed as int, falling back
// to the compiled default when missing or malformed.
func IntValue(ctx context.Context, p Provider, key string) int {
	raw := StringValue(ctx, p, key)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	fallback, _ := strconv.Atoi(Defaults[key])
	return fallback
}

// Static is a map-backed Provider for tests.
type Static map[string]string

func (s Static) Value(ctx context.Context, key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}
