package store

import (
	"context"
	"fmt"
	"time"

	"govassist/internal/scheme/models"
	id "govassist/pkg/domain"
)

// SeedSchemes inserts the four launch schemes when their codes are absent.
// Criteria and benefit documents here are the canonical defaults;
// administrators tune them by editing the rows, not this code.
func SeedSchemes(ctx context.Context, s Store, now time.Time) error {
	for _, seed := range CanonicalSchemes(now) {
		count, err := s.CountByCode(ctx, seed.Code)
		if err != nil {
			return fmt.Errorf("check scheme %s: %w", seed.Code, err)
		}
		if count > 0 {
			continue
		}
		scheme := seed
		if err := s.Create(ctx, &scheme); err != nil {
			return fmt.Errorf("seed scheme %s: %w", seed.Code, err)
		}
	}
	return nil
}

// CanonicalSchemes returns the launch scheme catalog. Exported so tests can
// evaluate strategies against the same documents production seeds.
func CanonicalSchemes(now time.Time) []models.Scheme {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	return []models.Scheme{
		{
			ID:          id.NewSchemeID(),
			Code:        models.CodeSeniorCitizen,
			Name:        "Senior Citizen Assistance Scheme",
			Description: "Financial support and benefits for individuals aged 65 and above.",
			Criteria:    []byte(`{"age_threshold": 65}`),
			Benefits: []byte(`{
				"cpf_top_up": {
					"disbursment_amount": 200,
					"disbursment_frequency": "One-Off",
					"disbursment_duration_months": null,
					"description": "One-time CPF top-up of $200."
				},
				"cdc_voucher": {
					"disbursment_amount": 200,
					"disbursment_frequency": "One-Off",
					"disbursment_duration_months": null,
					"description": "One-time CDC voucher of $200."
				}
			}`),
			ValidityStartDate: start,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:          id.NewSchemeID(),
			Code:        models.CodeReskilling,
			Name:        "Middle-aged Reskilling Assistance Scheme",
			Description: "Support for unemployed individuals aged 40 and above to reskill and upskill.",
			Criteria:    []byte(`{"age_threshold": 40, "employment_status": "unemployed"}`),
			Benefits: []byte(`{
				"skillsfuture_credit_top_up": {
					"disbursment_amount": 1000,
					"disbursment_frequency": "One-Off",
					"disbursment_duration_months": null,
					"description": "One-time SkillsFuture Credit top-up of $1000."
				},
				"study_allowance": {
					"disbursment_amount": 2000,
					"disbursment_frequency": "Monthly",
					"disbursment_duration_months": 6,
					"description": "Monthly study allowance of $2000 for up to 6 months."
				}
			}`),
			ValidityStartDate: start,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:          id.NewSchemeID(),
			Code:        models.CodeRetrenchment,
			Name:        "Retrenchment Assistance Scheme",
			Description: "Support for recently retrenched workers and their dependents.",
			// Thresholds for this scheme come from the system configuration
			// store; the row carries only the benefit documents.
			Criteria: []byte(`{}`),
			Benefits: []byte(`{
				"cash_assistance": {
					"disbursment_amount": 1000,
					"disbursment_frequency": "One-Off",
					"disbursment_duration_months": null,
					"description": "Cash assistance for retrenched workers."
				},
				"school_meal_vouchers": {
					"disbursment_amount": 100,
					"disbursment_frequency": "Monthly",
					"disbursment_duration_months": 12,
					"description": "Meal vouchers for primary school children."
				},
				"extra_cdc_vouchers": {
					"disbursment_amount": 200,
					"disbursment_frequency": "One-Off",
					"disbursment_duration_months": null,
					"description": "Extra CDC vouchers for elderly parents."
				}
			}`),
			ValidityStartDate: start,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:          id.NewSchemeID(),
			Code:        models.CodeSingleWorkingMother,
			Name:        "Single Working Mothers Support Scheme",
			Description: "Financial support for single working mothers with children aged 18 and below.",
			Criteria: []byte(`{
				"sex": "F",
				"marital_status": ["single", "divorced", "widowed"],
				"employment_status": "employed",
				"household_composition": {
					"relation": "child",
					"age_range": {"age_threshold": 18}
				}
			}`),
			Benefits: []byte(`{
				"cash_assistance": {
					"disbursment_amount": 1000,
					"disbursment_frequency": "One-Off",
					"disbursment_duration_months": null,
					"description": "Cash assistance for single working mothers."
				},
				"income_tax_rebates": {
					"disbursment_amount": 1000,
					"disbursment_frequency": "Annually",
					"disbursment_duration_months": 60,
					"description": "Income tax rebates for every eligible child in the household."
				}
			}`),
			ValidityStartDate: start,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}
