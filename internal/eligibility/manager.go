package eligibility

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	applicantModels "govassist/internal/applicant/models"
	"govassist/internal/audit"
	"govassist/internal/eligibility/metrics"
	schemeModels "govassist/internal/scheme/models"
	schemeStore "govassist/internal/scheme/store"
	dErrors "govassist/pkg/domain-errors"
	"govassist/pkg/requestcontext"
)

// SchemeStore is the slice of the scheme catalog the manager reads.
//
//go:generate mockgen -source=manager.go -destination=mocks/scheme_store_mock.go -package=mocks SchemeStore
type SchemeStore interface {
	ListAll(ctx context.Context, filter schemeStore.ListFilter) ([]schemeModels.Scheme, error)
}

// SchemesManager is the facade the rest of the system evaluates schemes
// through. Single-scheme checks and catalog-wide fan-out both land in the
// same instrumented evaluation path.
type SchemesManager struct {
	checker *Checker
	schemes SchemeStore
	metrics *metrics.Metrics
	tracer  trace.Tracer
	audit   audit.Publisher
	logger  *slog.Logger
}

// NewSchemesManager constructs the manager. metrics and auditPublisher may be
// nil; evaluation works without observability.
func NewSchemesManager(
	checker *Checker,
	schemes SchemeStore,
	m *metrics.Metrics,
	auditPublisher audit.Publisher,
	logger *slog.Logger,
) *SchemesManager {
	return &SchemesManager{
		checker: checker,
		schemes: schemes,
		metrics: m,
		tracer:  otel.Tracer("govassist/eligibility"),
		audit:   auditPublisher,
		logger:  logger,
	}
}

// CheckEligibility evaluates one scheme for one applicant. The result always
// carries the full scheme header fields, on both verdicts.
func (m *SchemesManager) CheckEligibility(ctx context.Context, scheme *schemeModels.Scheme, applicant *applicantModels.Applicant) (*Result, error) {
	ctx, span := m.tracer.Start(ctx, "eligibility.evaluate",
		trace.WithAttributes(
			attribute.String("scheme.code", scheme.Code),
			attribute.String("applicant.id", applicant.ID.String()),
		))
	defer span.End()

	start := time.Now()
	eligible, reason, awards, err := m.checker.Evaluate(ctx, scheme, applicant)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "eligibility evaluation failed")
	}
	m.metrics.ObserveEvaluation(scheme.Code, eligible, time.Since(start))
	span.SetAttributes(attribute.Bool("eligibility.eligible", eligible))

	decision := "ineligible"
	if eligible {
		decision = "eligible"
	}
	audit.Log(ctx, m.logger, m.audit, audit.ActionEligibilityEvaluated, requestcontext.RequestID(ctx),
		"subject", applicant.ID.String(),
		"decision", decision,
		"reason", reason,
		"scheme_code", scheme.Code,
	)

	return &Result{
		SchemeID:          scheme.ID,
		SchemeCode:        scheme.Code,
		SchemeName:        scheme.Name,
		SchemeDescription: scheme.Description,
		SchemeStartDate:   scheme.ValidityStartDate,
		SchemeEndDate:     scheme.ValidityEndDate,
		IsEligible:        eligible,
		Reason:            reason,
		EligibleBenefits:  awards,
		EvaluatedAt:       requestcontext.Now(ctx),
	}, nil
}

// CheckSchemesEligibility evaluates every candidate scheme for the applicant
// and returns one result per scheme, eligible or not, in catalog order.
// validOnly narrows the candidates to schemes whose validity window contains
// the evaluation time. Callers wanting only the eligible subset project it
// from the returned results.
func (m *SchemesManager) CheckSchemesEligibility(ctx context.Context, filter schemeStore.ListFilter, validOnly bool, applicant *applicantModels.Applicant) ([]Result, error) {
	if validOnly {
		now := requestcontext.Now(ctx)
		filter.ValidAt = &now
	}
	schemes, err := m.schemes.ListAll(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scheme catalog")
	}

	results := make([]Result, 0, len(schemes))
	for i := range schemes {
		result, err := m.CheckEligibility(ctx, &schemes[i], applicant)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
