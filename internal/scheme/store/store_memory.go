package store

import (
	"context"
	"sort"
	"sync"

	"govassist/internal/scheme/models"
	id "govassist/pkg/domain"
	"govassist/pkg/platform/pagination"
	"govassist/pkg/platform/sentinel"
)

// Memory is an in-memory Store for unit tests and local development.
type Memory struct {
	mu      sync.RWMutex
	schemes map[id.SchemeID]*models.Scheme
}

// NewMemory constructs an empty in-memory scheme store.
func NewMemory() *Memory {
	return &Memory{schemes: make(map[id.SchemeID]*models.Scheme)}
}

func (s *Memory) Get(ctx context.Context, schemeID id.SchemeID) (*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scheme, ok := s.schemes[schemeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *scheme
	return &clone, nil
}

func (s *Memory) ListAll(ctx context.Context, filter ListFilter) ([]models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered(filter), nil
}

func (s *Memory) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Scheme, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.filtered(filter)
	total := len(all)
	start := min(page.Offset(), total)
	end := min(start+page.Limit(), total)
	return all[start:end], total, nil
}

func (s *Memory) Create(ctx context.Context, scheme *models.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schemes[scheme.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := *scheme
	s.schemes[scheme.ID] = &clone
	return nil
}

func (s *Memory) CountByCode(ctx context.Context, code string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, scheme := range s.schemes {
		if scheme.Code == code {
			count++
		}
	}
	return count, nil
}

func (s *Memory) filtered(filter ListFilter) []models.Scheme {
	var out []models.Scheme
	for _, scheme := range s.schemes {
		if filter.ValidAt != nil && !scheme.ValidAt(*filter.ValidAt) {
			continue
		}
		out = append(out, *scheme)
	}
	// Catalog order: validity start, then name, matching the Postgres store.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ValidityStartDate.Equal(out[j].ValidityStartDate) {
			return out[i].ValidityStartDate.Before(out[j].ValidityStartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
