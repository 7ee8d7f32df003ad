// Package models defines the assistance scheme catalog record.
package models

import (
	"encoding/json"
	"time"

	id "govassist/pkg/domain"
)

// Scheme codes are the stable machine identifiers the eligibility factory
// dispatches on. Display names are free to change; codes are not.
const (
	CodeSeniorCitizen       = "senior_citizen_assistance"
	CodeReskilling          = "middle_aged_reskilling"
	CodeRetrenchment        = "retrenchment_assistance"
	CodeSingleWorkingMother = "single_working_mothers"
)

// Document is a scheme-owned JSON document (criteria or benefits). Stored
// and served verbatim; the eligibility strategies decode it into typed
// per-family structs at their boundary.
type Document = json.RawMessage

// Scheme is a named assistance program with eligibility rules, benefit
// definitions, and a validity window.
type Scheme struct {
	ID                id.SchemeID
	Code              string
	Name              string
	Description       string
	Criteria          Document
	Benefits          Document
	ValidityStartDate time.Time
	// ValidityEndDate nil means open-ended.
	ValidityEndDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidAt reports whether the scheme's validity window contains t.
func (s *Scheme) ValidAt(t time.Time) bool {
	if t.Before(s.ValidityStartDate) {
		return false
	}
	return s.ValidityEndDate == nil || !t.After(*s.ValidityEndDate)
}
