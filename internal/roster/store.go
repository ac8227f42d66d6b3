package roster

import (
	"sync"

	"tailorshop/internal/model"
)

// Store owns the canonical roster. Its methods are the only write path;
// readers get deep copies.
type Store struct {
	mu      sync.RWMutex
	workers []model.Worker
}

// NewStore creates an empty roster
func NewStore() *Store {
	return &Store{workers: []model.Worker{}}
}

// ReplaceAll replaces the canonical roster wholesale, typically after a fetch
func (s *Store) ReplaceAll(workers []model.Worker) {
	copied := model.CloneWorkers(workers)
	if copied == nil {
		copied = []model.Worker{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = copied
}

// ConfirmAdd appends a server-confirmed worker. A worker whose ID is already
// present replaces the existing entry instead of duplicating it.
func (s *Store) ConfirmAdd(w model.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(w.ID); i >= 0 {
		s.workers[i] = w.Clone()
		return
	}
	s.workers = append(s.workers, w.Clone())
}

// ApplyLocalEdit merges patch into the worker with the given id.
// Nothing is sent to the roster service. Returns false when id is unknown.
func (s *Store) ApplyLocalEdit(id string, patch model.WorkerPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	updated := s.workers[i].Clone()
	patch.Apply(&updated)
	updated.ID = id
	s.workers[i] = updated
	return true
}

// ApplyLocalDelete removes the worker with the given id.
// Nothing is sent to the roster service. Returns false when id is unknown.
func (s *Store) ApplyLocalDelete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]model.Worker, 0, len(s.workers)-1)
	next = append(next, s.workers[:i]...)
	next = append(next, s.workers[i+1:]...)
	s.workers = next
	return true
}

// Snapshot returns a deep copy of the canonical roster, never nil
func (s *Store) Snapshot() []model.Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := model.CloneWorkers(s.workers)
	if out == nil {
		out = []model.Worker{}
	}
	return out
}

// Get returns a copy of the worker with the given id
func (s *Store) Get(id string) (model.Worker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.workers[i].Clone(), true
	}
	return model.Worker{}, false
}

// Len returns the roster size
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workers)
}

// indexOf must be called with the lock held
func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.workers {
		if s.workers[i].ID == id {
			return i
		}
	}
	return -1
}
