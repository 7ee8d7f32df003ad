package eligibility

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	applicantModels "govassist/internal/applicant/models"
	schemeModels "govassist/internal/scheme/models"
	id "govassist/pkg/domain"
	platformstrings "govassist/pkg/platform/strings"
	"govassist/pkg/requestcontext"
)

const (
	singleMotherEligible   = "Eligible for Single Working Mothers Support Scheme."
	rejectNotFemale        = "Not eligible: Applicant is not female."
	rejectNotSingleMother  = "Not eligible: Applicant is not a single mother."
	rejectNotEmployed      = "Not eligible: Applicant is not employed."
	rejectNoYoungChildren  = "Not eligible: Applicant has no dependent children aged 18 or below."
	defaultDependentMaxAge = 18
)

var defaultSingleMotherStatuses = []id.MaritalStatus{id.Single, id.Divorced, id.Widowed}

type singleMotherCriteria struct {
	Sex              *string  `json:"sex"`
	MaritalStatus    []string `json:"marital_status"`
	EmploymentStatus *string  `json:"employment_status"`
	Household        *struct {
		Relation string `json:"relation"`
		AgeRange *struct {
			AgeThreshold *int `json:"age_threshold"`
		} `json:"age_range"`
	} `json:"household_composition"`
}

// SingleMotherStrategy evaluates its predicates in a fixed order so each
// rejection carries the first failing condition's message.
type SingleMotherStrategy struct {
	criteria singleMotherCriteria
	benefits benefitDocs
}

// NewSingleMother builds the strategy from the scheme's stored documents.
func NewSingleMother(scheme *schemeModels.Scheme) *SingleMotherStrategy {
	return &SingleMotherStrategy{
		criteria: decodeCriteria[singleMotherCriteria](scheme.Criteria),
		benefits: decodeBenefits(scheme.Benefits),
	}
}

func (s *SingleMotherStrategy) maritalStatuses() []id.MaritalStatus {
	cleaned := platformstrings.DedupeAndTrimLower(s.criteria.MaritalStatus)
	var out []id.MaritalStatus
	for _, raw := range cleaned {
		if status, err := id.ParseMaritalStatus(raw); err == nil {
			out = append(out, status)
		}
	}
	if len(out) == 0 {
		return defaultSingleMotherStatuses
	}
	return out
}

func (s *SingleMotherStrategy) requiredSex() id.Sex {
	if s.criteria.Sex != nil {
		if sex, err := id.ParseSex(*s.criteria.Sex); err == nil {
			return sex
		}
	}
	return id.Female
}

func (s *SingleMotherStrategy) requiredEmployment() id.EmploymentStatus {
	if s.criteria.EmploymentStatus != nil {
		if status, err := id.ParseEmploymentStatus(*s.criteria.EmploymentStatus); err == nil {
			return status
		}
	}
	return id.Employed
}

func (s *SingleMotherStrategy) dependentRelation() string {
	if s.criteria.Household != nil && s.criteria.Household.Relation != "" {
		return s.criteria.Household.Relation
	}
	return applicantModels.RelationChild
}

func (s *SingleMotherStrategy) dependentMaxAge() int {
	if s.criteria.Household != nil && s.criteria.Household.AgeRange != nil &&
		s.criteria.Household.AgeRange.AgeThreshold != nil {
		return *s.criteria.Household.AgeRange.AgeThreshold
	}
	return defaultDependentMaxAge
}

func (s *SingleMotherStrategy) dependents(applicant *applicantModels.Applicant, now time.Time) []applicantModels.HouseholdMember {
	return applicant.MembersAtMost(s.dependentRelation(), s.dependentMaxAge(), now)
}

func (s *SingleMotherStrategy) CheckEligibility(ctx context.Context, applicant *applicantModels.Applicant) (bool, string) {
	if applicant.Sex != s.requiredSex() {
		return false, rejectNotFemale
	}

	single := false
	for _, status := range s.maritalStatuses() {
		if applicant.MaritalStatus == status {
			single = true
			break
		}
	}
	if !single {
		return false, rejectNotSingleMother
	}

	if applicant.EmploymentStatus != s.requiredEmployment() {
		return false, rejectNotEmployed
	}

	if len(s.dependents(applicant, requestcontext.Now(ctx))) == 0 {
		return false, rejectNoYoungChildren
	}
	return true, singleMotherEligible
}

// Benefits awards one cash assistance plus one tax rebate entry per
// qualifying child. The applicant stays the beneficiary of every rebate
// entry; the per-child fan-out sizes the award, not its recipient.
func (s *SingleMotherStrategy) Benefits(ctx context.Context, applicant *applicantModels.Applicant) ([]BenefitAward, error) {
	awards := []BenefitAward{
		s.benefits.award("cash_assistance", applicant.Name, benefitDoc{
			Amount:      decimal.NewFromInt(1000),
			Frequency:   FrequencyOneOff,
			Description: "Cash assistance for single working mothers",
		}),
	}

	for range s.dependents(applicant, requestcontext.Now(ctx)) {
		awards = append(awards, s.benefits.award("income_tax_rebates", applicant.Name, benefitDoc{
			Amount:         decimal.NewFromInt(1000),
			Frequency:      FrequencyAnnually,
			DurationMonths: months(60),
			Description:    "Income tax rebates for working mothers",
		}))
	}
	return awards, nil
}
