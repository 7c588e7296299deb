package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/pkg/metrics"
)

// MemStore is an in-memory Store. Each run replaces the whole snapshot; the
// ordered slice is rebuilt once on Replace so reads stay cheap.
type MemStore struct {
	mu      sync.RWMutex
	byID    map[int]model.AttendanceSummary
	ordered []model.AttendanceSummary
}

// NewMemStore creates an empty in-memory summary store.
func NewMemStore() *MemStore {
	return &MemStore{
		byID: make(map[int]model.AttendanceSummary),
	}
}

// Replace swaps in a full run's summaries atomically.
func (s *MemStore) Replace(ctx context.Context, summaries []model.AttendanceSummary) {
	byID := make(map[int]model.AttendanceSummary, len(summaries))
	ordered := make([]model.AttendanceSummary, len(summaries))
	copy(ordered, summaries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].IdentityID < ordered[j].IdentityID
	})
	for _, sum := range ordered {
		byID[sum.IdentityID] = sum
	}

	s.mu.Lock()
	s.byID = byID
	s.ordered = ordered
	s.mu.Unlock()

	metrics.UpdateSummaryCount(len(ordered))
}

// Get returns the summary for one identity.
func (s *MemStore) Get(ctx context.Context, identityID int) (model.AttendanceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, ok := s.byID[identityID]
	if !ok {
		return model.AttendanceSummary{}, ErrNotFound
	}
	return sum, nil
}

// List returns all summaries ordered by identity id ascending.
func (s *MemStore) List(ctx context.Context) []model.AttendanceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.AttendanceSummary, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Count returns the number of summaries held.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
