package eligibility

import (
	"context"

	"github.com/shopspring/decimal"

	applicantModels "govassist/internal/applicant/models"
	schemeModels "govassist/internal/scheme/models"
	id "govassist/pkg/domain"
	"govassist/pkg/requestcontext"
)

const (
	reskillingEligible    = "Eligible for Middle-aged Reskilling Assistance Scheme."
	reskillingNotEligible = "Not eligible for Middle-aged Reskilling Assistance Scheme."

	defaultReskillingAgeThreshold = 40
)

type reskillingCriteria struct {
	AgeThreshold     *int    `json:"age_threshold"`
	EmploymentStatus *string `json:"employment_status"`
}

// ReskillingStrategy awards unemployed applicants at or above the middle-age
// threshold. Both thresholds default per field when the criteria document
// omits them.
type ReskillingStrategy struct {
	criteria reskillingCriteria
	benefits benefitDocs
}

// NewReskilling builds the strategy from the scheme's stored documents.
func NewReskilling(scheme *schemeModels.Scheme) *ReskillingStrategy {
	return &ReskillingStrategy{
		criteria: decodeCriteria[reskillingCriteria](scheme.Criteria),
		benefits: decodeBenefits(scheme.Benefits),
	}
}

func (s *ReskillingStrategy) ageThreshold() int {
	if s.criteria.AgeThreshold != nil {
		return *s.criteria.AgeThreshold
	}
	return defaultReskillingAgeThreshold
}

func (s *ReskillingStrategy) employmentStatus() id.EmploymentStatus {
	if s.criteria.EmploymentStatus != nil {
		if v, err := id.ParseEmploymentStatus(*s.criteria.EmploymentStatus); err == nil {
			return v
		}
	}
	return id.Unemployed
}

func (s *ReskillingStrategy) CheckEligibility(ctx context.Context, applicant *applicantModels.Applicant) (bool, string) {
	if applicant.AgeAt(requestcontext.Now(ctx)) >= s.ageThreshold() &&
		applicant.EmploymentStatus == s.employmentStatus() {
		return true, reskillingEligible
	}
	return false, reskillingNotEligible
}

func (s *ReskillingStrategy) Benefits(ctx context.Context, applicant *applicantModels.Applicant) ([]BenefitAward, error) {
	return []BenefitAward{
		s.benefits.award("skillsfuture_credit_top_up", applicant.Name, benefitDoc{
			Amount:      decimal.NewFromInt(1000),
			Frequency:   FrequencyOneOff,
			Description: "Additional SkillsFuture credits",
		}),
		s.benefits.award("study_allowance", applicant.Name, benefitDoc{
			Amount:         decimal.NewFromInt(2000),
			Frequency:      FrequencyMonthly,
			DurationMonths: months(6),
			Description:    "Monthly allowance while reskilling",
		}),
	}, nil
}
