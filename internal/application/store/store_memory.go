package store

import (
	"context"
	"sort"
	"sync"

	"govassist/internal/application/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
)

// Memory is an in-memory Store for unit tests.
type Memory struct {
	mu           sync.RWMutex
	applications map[id.ApplicationID]models.Application
}

// NewMemory constructs an empty in-memory application store.
func NewMemory() *Memory {
	return &Memory{applications: make(map[id.ApplicationID]models.Application)}
}

func (s *Memory) Create(ctx context.Context, application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applications[application.ID]; exists {
		return sentinel.ErrConflict
	}
	s.applications[application.ID] = clone(application)
	return nil
}

func (s *Memory) Get(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	application, ok := s.applications[applicationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := clone(&application)
	return &out, nil
}

func (s *Memory) List(ctx context.Context, opts ListOptions, page pagination.Params) ([]models.Application, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Application
	for _, application := range s.applications {
		if len(opts.Statuses) > 0 && !containsStatus(opts.Statuses, application.Status) {
			continue
		}
		all = append(all, clone(&application))
	}

	asc := opts.SortOrder == SortOrderAsc
	sort.Slice(all, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case SortByStatus:
			if all[i].Status != all[j].Status {
				less = all[i].Status < all[j].Status
			} else {
				less = all[i].CreatedAt.Before(all[j].CreatedAt)
			}
		default:
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := len(all)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *Memory) HasPending(ctx context.Context, applicantID id.ApplicantID, schemeID id.SchemeID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, application := range s.applications {
		if application.ApplicantID == applicantID &&
			application.SchemeID == schemeID &&
			application.Status == id.ApplicationPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *Memory) UpdateStatus(ctx context.Context, application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.applications[application.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored.Status = application.Status
	stored.UpdatedAt = application.UpdatedAt
	s.applications[application.ID] = stored
	return nil
}

func containsStatus(statuses []id.ApplicationStatus, status id.ApplicationStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func clone(a *models.Application) models.Application {
	out := *a
	out.AwardedBenefits = append([]byte(nil), a.AwardedBenefits...)
	return out
}
