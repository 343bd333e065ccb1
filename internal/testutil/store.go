package testutil

import (
	"context"
	"fmt"
	"sync"

	"localspot/internal/model"
)

// StubStore is an in-memory BusinessStore with controllable failures.
// Inserted records receive sequential server ids: "srv-1", "srv-2", etc.
type StubStore struct {
	mu      sync.Mutex
	records []model.Business

	ListErr   error
	InsertErr error

	listCalls   int
	insertCalls int
	owners      []string
	counter     int
}

// NewStubStore creates a StubStore preloaded with the given records,
// which List returns in the given order.
func NewStubStore(records ...model.Business) *StubStore {
	return &StubStore{records: records}
}

func (s *StubStore) List(ctx context.Context) ([]model.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]model.Business, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *StubStore) Insert(ctx context.Context, record model.Business, ownerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	s.owners = append(s.owners, ownerID)
	if s.InsertErr != nil {
		return "", s.InsertErr
	}
	s.counter++
	record.ID = fmt.Sprintf("srv-%d", s.counter)
	s.records = append([]model.Business{record}, s.records...)
	return record.ID, nil
}

// ListCalls returns how many times List was invoked.
func (s *StubStore) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// InsertCalls returns how many times Insert was invoked.
func (s *StubStore) InsertCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertCalls
}

// Owners returns the owner ids passed to Insert, in call order.
func (s *StubStore) Owners() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.owners))
	copy(out, s.owners)
	return out
}
