package bizstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"localspot/internal/model"
)

// MemoryStore is an in-memory implementation of the BusinessStore
// collaborator. It is the dev-mode backend and the base of the test stubs.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Business
}

// NewMemoryStore creates a memory store preloaded with the given records.
func NewMemoryStore(records ...model.Business) *MemoryStore {
	s := &MemoryStore{}
	s.records = append(s.records, records...)
	return s
}

// List returns all listings ordered by creation time, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]model.Business, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Business, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Insert stores the record under a fresh server-assigned id and returns it.
// ownerID is accepted for interface parity; the memory store does not track
// ownership.
func (s *MemoryStore) Insert(ctx context.Context, record model.Business, ownerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = uuid.New().String()
	s.records = append(s.records, record)
	return record.ID, nil
}
