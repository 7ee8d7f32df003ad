// Package models defines the scheme application record: one applicant
// applying to one scheme, with the eligibility verdict and award snapshot
// frozen at submission time.
package models

import (
	"encoding/json"
	"time"

	id "govassist/pkg/domain"
)

// Application is a submitted request for one scheme. The verdict and award
// snapshot are persisted with the row so later scheme edits never rewrite
// the history of what was offered.
type Application struct {
	ID                 id.ApplicationID
	ApplicantID        id.ApplicantID
	SchemeID           id.SchemeID
	Status             id.ApplicationStatus
	EligibilityVerdict bool
	EligibilityReason  string
	// AwardedBenefits is the JSON snapshot of the benefit awards computed at
	// submission. Empty array for ineligible applications.
	AwardedBenefits json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
