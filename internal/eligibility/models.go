// Package eligibility implements the strategy-per-scheme evaluation engine.
// Each scheme family has a strategy; a code-keyed factory picks it, a checker
// enforces that benefits are only computed for eligible applicants, and the
// manager folds everything into a uniform result.
package eligibility

import (
	"time"

	"github.com/shopspring/decimal"

	id "govassist/pkg/domain"
)

// Disbursement frequencies as they appear on the wire and in scheme documents.
const (
	FrequencyOneOff   = "One-Off"
	FrequencyMonthly  = "Monthly"
	FrequencyAnnually = "Annually"
)

// BenefitAward is one benefit an eligible applicant would receive.
// Beneficiary is the display name of the person receiving it, which for
// household-derived awards differs from the applicant.
type BenefitAward struct {
	BenefitName string          `json:"benefit_name"`
	Description string          `json:"description"`
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"disbursment_amount"`
	Frequency   string          `json:"disbursment_frequency"`
	// DurationMonths is 0 for one-off disbursements.
	DurationMonths int `json:"disbursment_duration_month"`
}

// Result is the uniform verdict shape every evaluation produces. The scheme
// header fields are filled on both verdicts so callers never need a second
// lookup.
type Result struct {
	SchemeID          id.SchemeID    `json:"scheme_id"`
	SchemeCode        string         `json:"scheme_code"`
	SchemeName        string         `json:"scheme_name"`
	SchemeDescription string         `json:"scheme_description"`
	SchemeStartDate   time.Time      `json:"scheme_start_date"`
	SchemeEndDate     *time.Time     `json:"scheme_end_date,omitempty"`
	IsEligible        bool           `json:"is_eligible"`
	Reason            string         `json:"reason"`
	EligibleBenefits  []BenefitAward `json:"eligible_benefits"`
	EvaluatedAt       time.Time      `json:"evaluated_at"`
}
