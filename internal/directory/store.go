package directory

import (
	"context"
	"fmt"
	"sync"

	"localspot/internal/model"
)

// Store holds the authoritative in-memory sequence of listings, newest first.
// It synchronizes with the BusinessStore collaborator on Load and applies
// optimistic local mutations immediately, before any network confirmation.
//
// All mutation happens from sequential callback contexts; the mutex only
// guards against overlapping reads from the rendering side.
type Store struct {
	mu      sync.Mutex
	backend BusinessStore
	clock   Clock
	logger  Logger

	records   []model.Business
	loading   bool
	pending   map[string]bool // temp ids inserted but not yet reconciled
	localOnly map[string]bool // temp ids whose write failed; record exists only here
}

// NewStore creates a Store backed by the given persistence collaborator.
func NewStore(backend BusinessStore, clock Clock, logger Logger) *Store {
	return &Store{
		backend:   backend,
		clock:     clock,
		logger:    logger,
		pending:   make(map[string]bool),
		localOnly: make(map[string]bool),
	}
}

// Load fetches the full collection from the persistence collaborator.
// On collaborator error it falls back to the built-in seed set so the map
// is never empty; the failure is logged and recovered, not returned.
//
// Load is a no-op once an optimistic insert is pending or a record exists
// only locally after a failed write: a fresh fetch would not contain those
// entries, so replacing the sequence would discard them. The local
// sequence wins until the process restarts.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if len(s.pending) > 0 || len(s.localOnly) > 0 {
		s.mu.Unlock()
		s.logger.Warn("directory load skipped, local-only listings present",
			"pending", len(s.pending), "local_only", len(s.localOnly))
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	records, err := s.backend.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.logger.Error("directory load failed, using seed data", "error", err)
		s.records = model.SeedBusinesses(s.clock.Now())
		return nil
	}

	s.records = records
	s.logger.Info("directory loaded", "count", len(records))
	return nil
}

// InsertOptimistic prepends record to the sequence immediately and returns
// the temporary id it was inserted under. The record is observable in the
// rendered list before its corresponding network call resolves.
func (s *Store) InsertOptimistic(record model.Business) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]model.Business{record}, s.records...)
	s.pending[record.ID] = true
	s.logger.Debug("optimistic insert", "id", record.ID, "name", record.Name)
	return record.ID
}

// Reconcile replaces tempID with the server-assigned finalID at the same
// sequence position. All other fields and the ordering are preserved.
func (s *Store) Reconcile(tempID, finalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == tempID {
			s.records[i].ID = finalID
			delete(s.pending, tempID)
			s.logger.Debug("reconciled listing id", "temp_id", tempID, "final_id", finalID)
			return nil
		}
	}
	return fmt.Errorf("no listing with temporary id %s", tempID)
}

// MarkLocalOnly settles a temporary id without a server id. The record
// stays in the sequence under its temporary id and keeps blocking Load;
// this is the accepted outcome when the persistence call fails.
func (s *Store) MarkLocalOnly(tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, tempID)
	s.localOnly[tempID] = true
}

// SetStatus flips a listing's status. Inactive is the only removal path;
// no operation ever shrinks the sequence.
func (s *Store) SetStatus(id string, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("no listing with id %s", id)
}

// Businesses returns a copy of the current sequence, newest first.
func (s *Store) Businesses() []model.Business {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Business, len(s.records))
	copy(out, s.records)
	return out
}

// Find returns the listing with the given id, or false.
func (s *Store) Find(id string) (model.Business, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.Business{}, false
}

// IsLoading reports whether a Load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// HasPendingInserts reports whether any optimistic insert has not settled.
func (s *Store) HasPendingInserts() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}
