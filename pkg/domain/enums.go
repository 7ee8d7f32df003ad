package domain

import dErrors "govassist/pkg/domain-errors"

// EmploymentStatus is a domain value for an applicant's employment state.
// Invariant: the value must be one of the supported statuses.
//
// Usage: construct via ParseEmploymentStatus at trust boundaries to enforce
// the allowlist; direct casting bypasses validation.
type EmploymentStatus string

const (
	Employed   EmploymentStatus = "employed"
	Unemployed EmploymentStatus = "unemployed"
)

var validEmploymentStatuses = map[EmploymentStatus]bool{
	Employed:   true,
	Unemployed: true,
}

// ParseEmploymentStatus constructs an EmploymentStatus from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported; no
// other errors are expected.
func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "employment_status cannot be empty")
	}
	v := EmploymentStatus(s)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid employment_status")
	}
	return v, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s EmploymentStatus) IsValid() bool { return validEmploymentStatuses[s] }

// String returns the string representation of the status.
func (s EmploymentStatus) String() string { return string(s) }

// Sex is a domain value for an applicant's registered sex.
type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

var validSexes = map[Sex]bool{
	Male:   true,
	Female: true,
}

// ParseSex constructs a Sex from external input.
func ParseSex(s string) (Sex, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "sex cannot be empty")
	}
	v := Sex(s)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "sex must be M or F")
	}
	return v, nil
}

func (s Sex) IsValid() bool  { return validSexes[s] }
func (s Sex) String() string { return string(s) }

// MaritalStatus is a domain value for an applicant's marital state.
type MaritalStatus string

const (
	Single   MaritalStatus = "single"
	Married  MaritalStatus = "married"
	Widowed  MaritalStatus = "widowed"
	Divorced MaritalStatus = "divorced"
)

var validMaritalStatuses = map[MaritalStatus]bool{
	Single:   true,
	Married:  true,
	Widowed:  true,
	Divorced: true,
}

// ParseMaritalStatus constructs a MaritalStatus from external input.
func ParseMaritalStatus(s string) (MaritalStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "marital_status cannot be empty")
	}
	v := MaritalStatus(s)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid marital_status")
	}
	return v, nil
}

func (s MaritalStatus) IsValid() bool  { return validMaritalStatuses[s] }
func (s MaritalStatus) String() string { return string(s) }

// ApplicationStatus tracks an application's review state.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

var validApplicationStatuses = map[ApplicationStatus]bool{
	ApplicationPending:  true,
	ApplicationApproved: true,
	ApplicationRejected: true,
}

// ParseApplicationStatus constructs an ApplicationStatus from external input.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	v := ApplicationStatus(s)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid application status")
	}
	return v, nil
}

func (s ApplicationStatus) IsValid() bool  { return validApplicationStatuses[s] }
func (s ApplicationStatus) String() string { return string(s) }
