package directory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/qrcontact/internal/common"
	"github.com/dmitrijs2005/qrcontact/internal/server/models"
)

// MemoryStore keeps the whole directory under one mutex. It implements the
// same contract as PostgresStore and backs tests and the "mem" DSN dev mode.
// It does not survive restarts, so it is not a production store.
type MemoryStore struct {
	mu              sync.Mutex
	profiles        map[string]*models.Profile
	totalScans      int64
	disclosuresSent int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*models.Profile)}
}

// clone keeps callers from mutating stored state through returned pointers.
func clone(p *models.Profile) *models.Profile {
	c := *p
	return &c
}

func (s *MemoryStore) Put(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = clone(profile)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) IncrementScan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.ScanCount++
	s.totalScans++
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, term string) ([]*models.Profile, error) {
	term, err := validateSearchTerm(term)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)

	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Profile{}
	for _, p := range s.profiles {
		if strings.Contains(strings.ToLower(p.ID), needle) ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) {
			result = append(result, clone(p))
		}
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		result = append(result, clone(p))
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (s *MemoryStore) IncrementDisclosuresSent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disclosuresSent++
	return nil
}

func (s *MemoryStore) Stats(ctx context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.Stats{
		TotalUsers:           int64(len(s.profiles)),
		TotalScans:           s.totalScans,
		TotalDisclosuresSent: s.disclosuresSent,
	}, nil
}

func sortByCreatedDesc(ps []*models.Profile) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}
