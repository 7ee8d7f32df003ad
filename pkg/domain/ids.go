// Package domain holds shared identifier types used across bounded contexts.
//
// IDs are distinct named types over uuid.UUID so the compiler rejects passing
// a SchemeID where an ApplicantID is expected. Construct them with the Parse
// functions at trust boundaries; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "govassist/pkg/domain-errors"
)

type (
	// ApplicantID identifies a scheme applicant.
	ApplicantID uuid.UUID
	// MemberID identifies a household member of an applicant.
	MemberID uuid.UUID
	// SchemeID identifies an assistance scheme.
	SchemeID uuid.UUID
	// ApplicationID identifies a submitted application.
	ApplicationID uuid.UUID
	// AdminID identifies an administrator account.
	AdminID uuid.UUID
)

func parseUUID(value, field string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", field)
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a valid UUID", field)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must not be the nil UUID", field)
	}
	return parsed, nil
}

// ParseApplicantID validates and converts a string into an ApplicantID.
func ParseApplicantID(value string) (ApplicantID, error) {
	parsed, err := parseUUID(value, "applicant_id")
	return ApplicantID(parsed), err
}

// ParseMemberID validates and converts a string into a MemberID.
func ParseMemberID(value string) (MemberID, error) {
	parsed, err := parseUUID(value, "member_id")
	return MemberID(parsed), err
}

// ParseSchemeID validates and converts a string into a SchemeID.
func ParseSchemeID(value string) (SchemeID, error) {
	parsed, err := parseUUID(value, "scheme_id")
	return SchemeID(parsed), err
}

// ParseApplicationID validates and converts a string into an ApplicationID.
func ParseApplicationID(value string) (ApplicationID, error) {
	parsed, err := parseUUID(value, "application_id")
	return ApplicationID(parsed), err
}

// ParseAdminID validates and converts a string into an AdminID.
func ParseAdminID(value string) (AdminID, error) {
	parsed, err := parseUUID(value, "admin_id")
	return AdminID(parsed), err
}

func (id ApplicantID) String() string   { return uuid.UUID(id).String() }
func (id MemberID) String() string      { return uuid.UUID(id).String() }
func (id SchemeID) String() string      { return uuid.UUID(id).String() }
func (id ApplicationID) String() string { return uuid.UUID(id).String() }
func (id AdminID) String() string       { return uuid.UUID(id).String() }

func (id ApplicantID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id MemberID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id SchemeID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id AdminID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }

// NewApplicantID returns a fresh random ApplicantID.
func NewApplicantID() ApplicantID { return ApplicantID(uuid.New()) }

// NewMemberID returns a fresh random MemberID.
func NewMemberID() MemberID { return MemberID(uuid.New()) }

// NewSchemeID returns a fresh random SchemeID.
func NewSchemeID() SchemeID { return SchemeID(uuid.New()) }

// NewApplicationID returns a fresh random ApplicationID.
func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

// NewAdminID returns a fresh random AdminID.
func NewAdminID() AdminID { return AdminID(uuid.New()) }
