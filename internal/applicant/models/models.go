// Package models defines the applicant aggregate: the person being evaluated
// for scheme eligibility together with their household members.
package models

import (
	"time"

	id "govassist/pkg/domain"
)

// Household member relations. The eligibility strategies key on child and
// parent; the rest are recorded for the household picture.
const (
	RelationChild   = "child"
	RelationParent  = "parent"
	RelationSpouse  = "spouse"
	RelationSibling = "sibling"
	RelationOther   = "other"
)

// ValidRelations is the allowlist for household member relations.
var ValidRelations = map[string]bool{
	RelationChild:   true,
	RelationParent:  true,
	RelationSpouse:  true,
	RelationSibling: true,
	RelationOther:   true,
}

// Applicant is the aggregate the eligibility engine evaluates. The engine
// only reads it; all writes go through the applicant service.
type Applicant struct {
	ID               id.ApplicantID
	Name             string
	EmploymentStatus id.EmploymentStatus
	Sex              id.Sex
	DateOfBirth      time.Time
	MaritalStatus    id.MaritalStatus
	// EmploymentStatusChangeDate is when the current employment status began.
	// Nil when never recorded; the retrenchment strategy treats that as
	// ineligible rather than guessing.
	EmploymentStatusChangeDate *time.Time
	MarriageDate               *time.Time
	HouseholdMembers           []HouseholdMember
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// HouseholdMember is a relative of the applicant. Lifetime-bound to the
// applicant: deleting the applicant deletes the household.
type HouseholdMember struct {
	ID               id.MemberID
	ApplicantID      id.ApplicantID
	Name             string
	Relation         string
	DateOfBirth      time.Time
	EmploymentStatus id.EmploymentStatus
	Sex              id.Sex
}

// AgeAt returns the whole-year, birthday-aware age at t: the year difference
// minus one when t's (month, day) precedes the birthday's (month, day).
func AgeAt(dateOfBirth, t time.Time) int {
	age := t.Year() - dateOfBirth.Year()
	if t.Month() < dateOfBirth.Month() ||
		(t.Month() == dateOfBirth.Month() && t.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// AgeAt returns the applicant's age at t.
func (a *Applicant) AgeAt(t time.Time) int {
	return AgeAt(a.DateOfBirth, t)
}

// AgeAt returns the household member's age at t.
func (m *HouseholdMember) AgeAt(t time.Time) int {
	return AgeAt(m.DateOfBirth, t)
}

// MembersAtMost returns household members with the given relation aged at
// most maxAge at t, preserving household order. The bound is inclusive.
func (a *Applicant) MembersAtMost(relation string, maxAge int, t time.Time) []HouseholdMember {
	var out []HouseholdMember
	for _, m := range a.HouseholdMembers {
		if m.Relation == relation && m.AgeAt(t) <= maxAge {
			out = append(out, m)
		}
	}
	return out
}

// ChildrenAtMost returns household children aged at most maxAge at t.
func (a *Applicant) ChildrenAtMost(maxAge int, t time.Time) []HouseholdMember {
	return a.MembersAtMost(RelationChild, maxAge, t)
}
