package eligibility

import (
	"context"
	"time"

	applicantModels "govassist/internal/applicant/models"
	schemeModels "govassist/internal/scheme/models"
	"govassist/internal/scheme/store"
	id "govassist/pkg/domain"
	"govassist/pkg/requestcontext"
)

// evaluationTime is the fixed clock every test evaluates at.
var evaluationTime = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	return requestcontext.WithTime(context.Background(), evaluationTime)
}

// bornYearsAgo returns a date of birth for someone exactly this old at the
// evaluation time (birthday falls on the evaluation day).
func bornYearsAgo(years int) time.Time {
	return evaluationTime.AddDate(-years, 0, 0)
}

func schemeByCode(code string) *schemeModels.Scheme {
	for _, s := range store.CanonicalSchemes(evaluationTime) {
		if s.Code == code {
			scheme := s
			return &scheme
		}
	}
	return nil
}

func child(name string, age int) applicantModels.HouseholdMember {
	return applicantModels.HouseholdMember{
		ID:          id.NewMemberID(),
		Name:        name,
		Relation:    applicantModels.RelationChild,
		DateOfBirth: bornYearsAgo(age),
	}
}

func parent(name string, age int) applicantModels.HouseholdMember {
	return applicantModels.HouseholdMember{
		ID:          id.NewMemberID(),
		Name:        name,
		Relation:    applicantModels.RelationParent,
		DateOfBirth: bornYearsAgo(age),
	}
}

func newApplicant(age int) *applicantModels.Applicant {
	return &applicantModels.Applicant{
		ID:               id.NewApplicantID(),
		Name:             "Tan Mei Ling",
		Sex:              id.Female,
		DateOfBirth:      bornYearsAgo(age),
		EmploymentStatus: id.Employed,
		MaritalStatus:    id.Single,
	}
}
