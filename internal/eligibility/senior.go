package eligibility

import (
	"context"

	"github.com/shopspring/decimal"

	applicantModels "govassist/internal/applicant/models"
	schemeModels "govassist/internal/scheme/models"
	"govassist/pkg/requestcontext"
)

const (
	seniorEligible    = "Eligible for Senior Citizen Assistance Scheme."
	seniorNotEligible = "Not eligible for Senior Citizen Assistance Scheme."

	defaultSeniorAgeThreshold = 65
)

type seniorCriteria struct {
	AgeThreshold *int `json:"age_threshold"`
}

// SeniorCitizenStrategy awards seniors at or above the criteria document's
// age threshold.
type SeniorCitizenStrategy struct {
	criteria seniorCriteria
	benefits benefitDocs
}

// NewSeniorCitizen builds the strategy from the scheme's stored documents.
func NewSeniorCitizen(scheme *schemeModels.Scheme) *SeniorCitizenStrategy {
	return &SeniorCitizenStrategy{
		criteria: decodeCriteria[seniorCriteria](scheme.Criteria),
		benefits: decodeBenefits(scheme.Benefits),
	}
}

func (s *SeniorCitizenStrategy) ageThreshold() int {
	if s.criteria.AgeThreshold != nil {
		return *s.criteria.AgeThreshold
	}
	return defaultSeniorAgeThreshold
}

func (s *SeniorCitizenStrategy) CheckEligibility(ctx context.Context, applicant *applicantModels.Applicant) (bool, string) {
	if applicant.AgeAt(requestcontext.Now(ctx)) >= s.ageThreshold() {
		return true, seniorEligible
	}
	return false, seniorNotEligible
}

func (s *SeniorCitizenStrategy) Benefits(ctx context.Context, applicant *applicantModels.Applicant) ([]BenefitAward, error) {
	return []BenefitAward{
		s.benefits.award("cpf_top_up", applicant.Name, benefitDoc{
			Amount:      decimal.NewFromInt(200),
			Frequency:   FrequencyOneOff,
			Description: "CPF top-up for seniors",
		}),
		s.benefits.award("cdc_voucher", applicant.Name, benefitDoc{
			Amount:      decimal.NewFromInt(200),
			Frequency:   FrequencyOneOff,
			Description: "CDC vouchers for daily essentials",
		}),
	}, nil
}
