package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tailorshop/internal/model"
	"tailorshop/internal/roster"
	"tailorshop/internal/search"
	"tailorshop/internal/validation"
	"tailorshop/pkg/logger"
)

// ErrWorkerNotFound no worker with the given ID in the canonical roster
var ErrWorkerNotFound = errors.New("worker not found")

// RosterClient remote roster service operations
type RosterClient interface {
	FetchAll(ctx context.Context, token string) ([]model.Worker, error)
	Create(ctx context.Context, req *model.CreateWorkerRequest, token string) (*model.Worker, error)
	Search(ctx context.Context, query, token string) ([]model.Worker, error)
}

// CredentialSource resolves the bearer token for each remote call
type CredentialSource interface {
	Resolve(ctx context.Context) (string, error)
}

// LoadStatus state of the canonical roster load
type LoadStatus string

const (
	LoadStatusIdle    LoadStatus = "idle"
	LoadStatusLoading LoadStatus = "loading"
	LoadStatusReady   LoadStatus = "ready"
	LoadStatusFailed  LoadStatus = "failed"
)

// ViewKind which projection the dashboard should render
type ViewKind string

const (
	ViewLoading ViewKind = "loading"
	ViewError   ViewKind = "error"
	ViewEmpty   ViewKind = "empty"
	ViewRoster  ViewKind = "roster"
	ViewResults ViewKind = "results"
)

// View is what the worker list screen renders
type View struct {
	Kind     ViewKind       `json:"kind"`
	Workers  []model.Worker `json:"workers"`
	Query    string         `json:"query,omitempty"`
	Error    string         `json:"error,omitempty"`
	CanRetry bool           `json:"canRetry,omitempty"`
	Search   string         `json:"search"` // search coordinator state
	Stats    SearchStats    `json:"searchStats"`
}

// SearchStats search activity since startup
type SearchStats struct {
	Issued    uint64 `json:"issued"`
	Discarded uint64 `json:"discarded"` // stale responses dropped
	InFlight  bool   `json:"inFlight"`
}

// RosterService keeps the canonical roster in sync with the roster service
// and layers local edits, deletes and search results on top of it
type RosterService struct {
	creds     CredentialSource
	client    RosterClient
	store     *roster.Store
	search    *search.Coordinator
	validator *validation.Validator

	mu      sync.RWMutex
	status  LoadStatus
	lastErr error
	loaded  bool // canonical roster has been replaced from the server at least once
}

// NewRosterService creates a roster service. searchOpts configure the search coordinator.
func NewRosterService(creds CredentialSource, client RosterClient, store *roster.Store, validator *validation.Validator, debounce time.Duration, searchOpts ...search.Option) *RosterService {
	s := &RosterService{
		creds:     creds,
		client:    client,
		store:     store,
		validator: validator,
		status:    LoadStatusIdle,
	}
	s.search = search.NewCoordinator(search.SearcherFunc(s.remoteSearch), debounce, searchOpts...)
	return s
}

// Load fetches the roster and replaces canonical state. Used on startup and for retry.
func (s *RosterService) Load(ctx context.Context) error {
	s.setStatus(LoadStatusLoading, nil)

	workers, err := s.fetchAll(ctx)
	if err != nil {
		s.setStatus(LoadStatusFailed, err)
		logger.ErrorCtx(ctx, "failed to load roster: %v", err)
		return err
	}

	s.replaceRoster(workers)
	logger.InfoCtx(ctx, "roster loaded, workers: %d", len(workers))
	return nil
}

// Create validates and submits a new worker, then re-fetches the roster so the
// canonical state comes from the server rather than the form.
func (s *RosterService) Create(ctx context.Context, req *model.CreateWorkerRequest) (*model.Worker, error) {
	if errs := s.validator.ValidateCreate(req); len(errs) > 0 {
		return nil, errs
	}

	token, err := s.creds.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.client.Create(ctx, req, token)
	if err != nil {
		logger.WarnCtx(ctx, "failed to create worker %q: %v", req.Name, err)
		return nil, err
	}
	logger.InfoCtx(ctx, "worker created, id: %s, name: %s", created.ID, req.Name)

	s.setStatus(LoadStatusLoading, nil)
	workers, fetchErr := s.client.FetchAll(ctx, token)
	if fetchErr != nil {
		// The create went through; show what the server confirmed until the next reload
		if created.ID != "" {
			s.store.ConfirmAdd(*created)
		}
		s.setStatus(LoadStatusReady, nil)
		logger.ErrorCtx(ctx, "failed to re-fetch roster after create: %v", fetchErr)
		return created, fmt.Errorf("worker created but roster refresh failed: %w", fetchErr)
	}

	s.replaceRoster(workers)

	if w, ok := s.store.Get(created.ID); ok {
		return &w, nil
	}
	return created, nil
}

// Edit applies a local-only edit; the roster service is not told about it
// and a reload discards it.
func (s *RosterService) Edit(ctx context.Context, id string, patch *model.WorkerPatch) (*model.Worker, error) {
	if errs := s.validator.ValidatePatch(patch); len(errs) > 0 {
		return nil, errs
	}
	if !s.store.ApplyLocalEdit(id, *patch) {
		return nil, ErrWorkerNotFound
	}
	logger.WarnCtx(ctx, "worker %s edited locally; change is not persisted to the roster service", id)

	w, _ := s.store.Get(id)
	return &w, nil
}

// Delete removes a worker locally; the roster service is not told about it
func (s *RosterService) Delete(ctx context.Context, id string) error {
	if !s.store.ApplyLocalDelete(id) {
		return ErrWorkerNotFound
	}
	logger.WarnCtx(ctx, "worker %s deleted locally; deletion is not persisted to the roster service", id)
	return nil
}

// Keystroke feeds the search box
func (s *RosterService) Keystroke(query string) uint64 {
	return s.search.Submit(query)
}

// Roster returns the canonical roster
func (s *RosterService) Roster() []model.Worker {
	return s.store.Snapshot()
}

// Displayed returns the list currently shown: while a search is active, the hits
// resolved against the canonical roster so local edits and deletes carry over;
// otherwise the canonical roster. Before the first load, hits are shown as-is.
func (s *RosterService) Displayed() []model.Worker {
	snap := s.search.Snapshot()
	if !snap.Filtered {
		return s.store.Snapshot()
	}

	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		if len(snap.Results) == 0 {
			return []model.Worker{}
		}
		return model.CloneWorkers(snap.Results)
	}
	return roster.MergeByID(snap.Results, s.store.Snapshot())
}

// View computes which projection is active
func (s *RosterService) View() View {
	s.mu.RLock()
	status, lastErr := s.status, s.lastErr
	s.mu.RUnlock()

	snap := s.search.Snapshot()
	view := View{Search: snap.State.String()}
	view.Stats.Issued, view.Stats.Discarded = s.search.Stats()
	view.Stats.InFlight = s.search.InFlight() != 0

	switch status {
	case LoadStatusIdle, LoadStatusLoading:
		view.Kind = ViewLoading
		view.Workers = []model.Worker{}
		return view
	case LoadStatusFailed:
		view.Kind = ViewError
		view.Workers = []model.Worker{}
		view.CanRetry = true
		if lastErr != nil {
			view.Error = lastErr.Error()
		}
		return view
	}

	view.Workers = s.Displayed()
	switch {
	case snap.Filtered:
		view.Query = snap.Query
		view.Kind = ViewResults
		if len(view.Workers) == 0 {
			view.Kind = ViewEmpty
		}
	case len(view.Workers) == 0:
		view.Kind = ViewEmpty
	default:
		view.Kind = ViewRoster
	}
	return view
}

// Status returns the load status and the last load error
func (s *RosterService) Status() (LoadStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.lastErr
}

// AddGarmentRate appends a draft to a garment-rate list being composed in a form
func (s *RosterService) AddGarmentRate(draft model.GarmentRate, rates []model.GarmentRate) ([]model.GarmentRate, error) {
	return roster.AddGarmentRate(draft, rates)
}

// RemoveGarmentRate drops a garment type from a list being composed in a form
func (s *RosterService) RemoveGarmentRate(garmentType string, rates []model.GarmentRate) []model.GarmentRate {
	return roster.RemoveGarmentRate(garmentType, rates)
}

// Close stops the search coordinator
func (s *RosterService) Close() {
	s.search.Close()
}

func (s *RosterService) fetchAll(ctx context.Context) ([]model.Worker, error) {
	token, err := s.creds.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.FetchAll(ctx, token)
}

// remoteSearch resolves a fresh credential for every search
func (s *RosterService) remoteSearch(ctx context.Context, query string) ([]model.Worker, error) {
	token, err := s.creds.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Search(ctx, query, token)
}

func (s *RosterService) replaceRoster(workers []model.Worker) {
	s.store.ReplaceAll(workers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.status = LoadStatusReady
	s.lastErr = nil
}

func (s *RosterService) setStatus(status LoadStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastErr = err
}
