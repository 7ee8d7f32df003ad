package eligibility

import (
	"context"

	"github.com/shopspring/decimal"

	applicantModels "govassist/internal/applicant/models"
	schemeModels "govassist/internal/scheme/models"
	"govassist/internal/sysconfig"
	"govassist/pkg/requestcontext"
)

const (
	retrenchmentEligible    = "Eligible for Retrenchment Assistance Scheme."
	retrenchmentNotEligible = "Not eligible for Retrenchment Assistance Scheme."
)

// RetrenchmentStrategy awards recently retrenched workers. Its thresholds
// live in the system configuration store rather than the scheme row, so
// operators can retune the window without touching the catalog.
type RetrenchmentStrategy struct {
	config   sysconfig.Provider
	benefits benefitDocs
}

// NewRetrenchment builds the strategy from the scheme's benefit document and
// the injected configuration provider.
func NewRetrenchment(scheme *schemeModels.Scheme, config sysconfig.Provider) *RetrenchmentStrategy {
	return &RetrenchmentStrategy{
		config:   config,
		benefits: decodeBenefits(scheme.Benefits),
	}
}

// CheckEligibility requires the configured employment status, a recorded
// status change date, and that change falling within the last N calendar
// months of now, boundary inclusive. A change exactly N months ago is still
// eligible.
func (s *RetrenchmentStrategy) CheckEligibility(ctx context.Context, applicant *applicantModels.Applicant) (bool, string) {
	wantStatus := sysconfig.StringValue(ctx, s.config, sysconfig.KeyRetrenchmentEmploymentStatus)
	if applicant.EmploymentStatus.String() != wantStatus {
		return false, retrenchmentNotEligible
	}
	if applicant.EmploymentStatusChangeDate == nil {
		return false, retrenchmentNotEligible
	}

	periodMonths := sysconfig.IntValue(ctx, s.config, sysconfig.KeyRetrenchmentPeriodMonths)
	cutoff := requestcontext.Now(ctx).AddDate(0, -periodMonths, 0)
	if applicant.EmploymentStatusChangeDate.Before(cutoff) {
		return false, retrenchmentNotEligible
	}
	return true, retrenchmentEligible
}

// Benefits awards cash assistance to the applicant, meal vouchers per
// primary-school-aged child, and extra CDC vouchers per parent older than
// the elderly threshold (strict).
func (s *RetrenchmentStrategy) Benefits(ctx context.Context, applicant *applicantModels.Applicant) ([]BenefitAward, error) {
	now := requestcontext.Now(ctx)
	schoolAgeMin := sysconfig.IntValue(ctx, s.config, sysconfig.KeyPrimarySchoolAgeMin)
	schoolAgeMax := sysconfig.IntValue(ctx, s.config, sysconfig.KeyPrimarySchoolAgeMax)
	elderlyAge := sysconfig.IntValue(ctx, s.config, sysconfig.KeyElderlyAgeThreshold)

	awards := []BenefitAward{
		s.benefits.award("cash_assistance", applicant.Name, benefitDoc{
			Amount:      decimal.NewFromInt(1000),
			Frequency:   FrequencyOneOff,
			Description: "Cash assistance for retrenched workers",
		}),
	}

	for _, member := range applicant.HouseholdMembers {
		switch member.Relation {
		case applicantModels.RelationChild:
			age := member.AgeAt(now)
			if age >= schoolAgeMin && age <= schoolAgeMax {
				awards = append(awards, s.benefits.award("school_meal_vouchers", member.Name, benefitDoc{
					Amount:         decimal.NewFromInt(100),
					Frequency:      FrequencyMonthly,
					DurationMonths: months(12),
					Description:    "Meal vouchers for primary school children",
				}))
			}
		case applicantModels.RelationParent:
			if member.AgeAt(now) > elderlyAge {
				awards = append(awards, s.benefits.award("extra_cdc_vouchers", member.Name, benefitDoc{
					Amount:      decimal.NewFromInt(200),
					Frequency:   FrequencyOneOff,
					Description: "Extra CDC vouchers for elderly parents",
				}))
			}
		}
	}
	return awards, nil
}
