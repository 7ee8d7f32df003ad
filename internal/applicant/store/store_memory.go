package store

import (
	"context"
	"sort"
	"sync"

	"govassist/internal/applicant/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
)

// Memory is an in-memory Store for unit tests and local development.
type Memory struct {
	mu         sync.RWMutex
	applicants map[id.ApplicantID]*models.Applicant
}

// NewMemory constructs an empty in-memory applicant store.
func NewMemory() *Memory {
	return &Memory{applicants: make(map[id.ApplicantID]*models.Applicant)}
}

func (s *Memory) Create(ctx context.Context, applicant *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applicants[applicant.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := cloneApplicant(applicant)
	s.applicants[applicant.ID] = clone
	return nil
}

func (s *Memory) Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	applicant, ok := s.applicants[applicantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneApplicant(applicant), nil
}

func (s *Memory) Update(ctx context.Context, applicant *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applicants[applicant.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.applicants[applicant.ID] = cloneApplicant(applicant)
	return nil
}

func (s *Memory) Delete(ctx context.Context, applicantID id.ApplicantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.applicants[applicantID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.applicants, applicantID)
	return nil
}

func (s *Memory) List(ctx context.Context, page pagination.Params) ([]models.Applicant, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Applicant, 0, len(s.applicants))
	for _, a := range s.applicants {
		all = append(all, *cloneApplicant(a))
	}
	// Newest first, matching the Postgres store's ORDER BY created_at DESC.
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := min(page.Offset(), total)
	end := min(start+page.Limit(), total)
	return all[start:end], total, nil
}

func cloneApplicant(a *models.Applicant) *models.Applicant {
	clone := *a
	clone.HouseholdMembers = make([]models.HouseholdMember, len(a.HouseholdMembers))
	copy(clone.HouseholdMembers, a.HouseholdMembers)
	if a.EmploymentStatusChangeDate != nil {
		d := *a.EmploymentStatusChangeDate
		clone.EmploymentStatusChangeDate = &d
	}
	if a.MarriageDate != nil {
		d := *a.MarriageDate
		clone.MarriageDate = &d
	}
	return &clone
}
