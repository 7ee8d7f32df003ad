package eligibility

import (
	"context"

	applicantModels "govassist/internal/applicant/models"
	schemeModels "govassist/internal/scheme/models"
)

// Checker pairs a strategy with the gating rule: eligibility first, benefits
// only on a positive verdict. Ineligible applicants get zero awards no matter
// what the benefits routine would produce.
type Checker struct {
	factory *Factory
}

// NewChecker constructs a checker over the given factory.
func NewChecker(factory *Factory) *Checker {
	return &Checker{factory: factory}
}

// Evaluate runs one scheme against one applicant and returns the verdict,
// reason, and awards triple.
func (c *Checker) Evaluate(ctx context.Context, scheme *schemeModels.Scheme, applicant *applicantModels.Applicant) (bool, string, []BenefitAward, error) {
	strategy := c.factory.StrategyFor(scheme)

	eligible, reason := strategy.CheckEligibility(ctx, applicant)
	if !eligible {
		return false, reason, nil, nil
	}

	awards, err := strategy.Benefits(ctx, applicant)
	if err != nil {
		return false, reason, nil, err
	}
	return true, reason, awards, nil
}
