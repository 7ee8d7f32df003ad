package handler

import (
	"govassist/internal/applicant/models"
)

type householdMemberResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Relation         string `json:"relation"`
	DateOfBirth      string `json:"date_of_birth"`
	EmploymentStatus string `json:"employment_status"`
	Sex              string `json:"sex"`
}

type applicantResponse struct {
	ID                         string                    `json:"id"`
	Name                       string                    `json:"name"`
	EmploymentStatus           string                    `json:"employment_status"`
	Sex                        string                    `json:"sex"`
	DateOfBirth                string                    `json:"date_of_birth"`
	MaritalStatus              string                    `json:"marital_status"`
	EmploymentStatusChangeDate *string                   `json:"employment_status_change_date"`
	MarriageDate               *string                   `json:"marriage_date"`
	HouseholdMembers           []householdMemberResponse `json:"household_members"`
	CreatedAt                  string                    `json:"created_at"`
	UpdatedAt                  string                    `json:"updated_at"`
}

func toResponse(applicant *models.Applicant) applicantResponse {
	out := applicantResponse{
		ID:               applicant.ID.String(),
		Name:             applicant.Name,
		EmploymentStatus: applicant.EmploymentStatus.String(),
		Sex:              applicant.Sex.String(),
		DateOfBirth:      applicant.DateOfBirth.Format(dateLayout),
		MaritalStatus:    applicant.MaritalStatus.String(),
		HouseholdMembers: make([]householdMemberResponse, 0, len(applicant.HouseholdMembers)),
		CreatedAt:        applicant.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        applicant.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if applicant.EmploymentStatusChangeDate != nil {
		formatted := applicant.EmploymentStatusChangeDate.Format(dateLayout)
		out.EmploymentStatusChangeDate = &formatted
	}
	if applicant.MarriageDate != nil {
		formatted := applicant.MarriageDate.Format(dateLayout)
		out.MarriageDate = &formatted
	}
	for _, member := range applicant.HouseholdMembers {
		out.HouseholdMembers = append(out.HouseholdMembers, householdMemberResponse{
			ID:               member.ID.String(),
			Name:             member.Name,
			Relation:         member.Relation,
			DateOfBirth:      member.DateOfBirth.Format(dateLayout),
			EmploymentStatus: member.EmploymentStatus.String(),
			Sex:              member.Sex.String(),
		})
	}
	return out
}
