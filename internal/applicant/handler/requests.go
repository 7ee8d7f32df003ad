package handler

import (
	"time"

	"github.com/asaskevich/govalidator"

	"govassist/internal/applicant/models"
	id "govassist/pkg/domain"
	dErrors "govassist/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// householdMemberRequest is one household member in an applicant payload.
type householdMemberRequest struct {
	Name             string `json:"name"`
	Relation         string `json:"relation"`
	DateOfBirth      string `json:"date_of_birth"`
	EmploymentStatus string `json:"employment_status"`
	Sex              string `json:"sex"`
}

// applicantRequest is the create/update payload. Validate parses it into the
// domain model so handlers never touch raw strings twice.
type applicantRequest struct {
	Name                       string                   `json:"name"`
	EmploymentStatus           string                   `json:"employment_status"`
	Sex                        string                   `json:"sex"`
	DateOfBirth                string                   `json:"date_of_birth"`
	MaritalStatus              string                   `json:"marital_status"`
	EmploymentStatusChangeDate *string                  `json:"employment_status_change_date"`
	MarriageDate               *string                  `json:"marriage_date"`
	HouseholdMembers           []householdMemberRequest `json:"household_members"`

	parsed models.Applicant
}

func (r *applicantRequest) Validate() error {
	if !govalidator.StringLength(r.Name, "1", "255") {
		return dErrors.New(dErrors.CodeValidation, "name must be between 1 and 255 characters")
	}

	employmentStatus, err := id.ParseEmploymentStatus(r.EmploymentStatus)
	if err != nil {
		return err
	}
	sex, err := id.ParseSex(r.Sex)
	if err != nil {
		return err
	}
	maritalStatus, err := id.ParseMaritalStatus(r.MaritalStatus)
	if err != nil {
		return err
	}
	dateOfBirth, err := parseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return err
	}

	r.parsed = models.Applicant{
		Name:             r.Name,
		EmploymentStatus: employmentStatus,
		Sex:              sex,
		DateOfBirth:      dateOfBirth,
		MaritalStatus:    maritalStatus,
	}

	if r.EmploymentStatusChangeDate != nil {
		changeDate, err := parseDate("employment_status_change_date", *r.EmploymentStatusChangeDate)
		if err != nil {
			return err
		}
		r.parsed.EmploymentStatusChangeDate = &changeDate
	}
	if r.MarriageDate != nil {
		marriageDate, err := parseDate("marriage_date", *r.MarriageDate)
		if err != nil {
			return err
		}
		r.parsed.MarriageDate = &marriageDate
	}

	for _, member := range r.HouseholdMembers {
		parsed, err := member.toModel()
		if err != nil {
			return err
		}
		r.parsed.HouseholdMembers = append(r.parsed.HouseholdMembers, parsed)
	}
	return nil
}

func (r *householdMemberRequest) toModel() (models.HouseholdMember, error) {
	if !govalidator.StringLength(r.Name, "1", "255") {
		return models.HouseholdMember{}, dErrors.New(dErrors.CodeValidation, "household member name must be between 1 and 255 characters")
	}
	if !models.ValidRelations[r.Relation] {
		return models.HouseholdMember{}, dErrors.New(dErrors.CodeValidation, "relation must be one of parent, child, spouse, sibling, or other")
	}

	employmentStatus, err := id.ParseEmploymentStatus(r.EmploymentStatus)
	if err != nil {
		return models.HouseholdMember{}, err
	}
	sex, err := id.ParseSex(r.Sex)
	if err != nil {
		return models.HouseholdMember{}, err
	}
	dateOfBirth, err := parseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return models.HouseholdMember{}, err
	}

	return models.HouseholdMember{
		Name:             r.Name,
		Relation:         r.Relation,
		DateOfBirth:      dateOfBirth,
		EmploymentStatus: employmentStatus,
		Sex:              sex,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "%s must be a date in YYYY-MM-DD format", field)
	}
	return parsed, nil
}
