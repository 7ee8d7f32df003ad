package eligibility

import (
	"context"

	applicantModels "govassist/internal/applicant/models"
)

// Strategy evaluates one scheme family. Strategies are pure with respect to
// storage: everything arrives via the applicant snapshot, the scheme's parsed
// documents, and the injected configuration provider. Evaluation time comes
// from the request clock on the context.
type Strategy interface {
	// CheckEligibility returns the verdict and a human-readable reason.
	CheckEligibility(ctx context.Context, applicant *applicantModels.Applicant) (bool, string)
	// Benefits computes the awards for an applicant already established as
	// eligible. Callers go through the checker, which enforces that pairing.
	Benefits(ctx context.Context, applicant *applicantModels.Applicant) ([]BenefitAward, error)
}

// fallbackReason is returned for scheme codes no strategy is registered for.
const fallbackReason = "Scheme Eligibility Checker Not Configured for!"

// FallbackStrategy handles unknown scheme codes: never eligible, no benefits,
// no error. Keeping the factory total means a new scheme row added before its
// strategy ships degrades to a clean rejection instead of a failure.
type FallbackStrategy struct{}

func (FallbackStrategy) CheckEligibility(ctx context.Context, applicant *applicantModels.Applicant) (bool, string) {
	return false, fallbackReason
}

func (FallbackStrategy) Benefits(ctx context.Context, applicant *applicantModels.Applicant) ([]BenefitAward, error) {
	return nil, nil
}
