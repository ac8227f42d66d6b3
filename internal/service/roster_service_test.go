package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tailorshop/internal/model"
	"tailorshop/internal/roster"
	"tailorshop/internal/validation"
	"tailorshop/pkg/credential"
	"tailorshop/pkg/rosterapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu sync.Mutex

	workers   []model.Worker
	fetchErr  error
	fetches   int
	created   *model.Worker
	createErr error
	creates   []model.CreateWorkerRequest
	results   map[string][]model.Worker
	searchErr error
	queries   []string
	tokens    []string
}

func (f *fakeClient) FetchAll(_ context.Context, token string) ([]model.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	f.tokens = append(f.tokens, token)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return model.CloneWorkers(f.workers), nil
}

func (f *fakeClient) Create(_ context.Context, req *model.CreateWorkerRequest, token string) (*model.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.creates = append(f.creates, *req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	w := f.created.Clone()
	return &w, nil
}

func (f *fakeClient) Search(_ context.Context, query, token string) ([]model.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.queries = append(f.queries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return model.CloneWorkers(f.results[query]), nil
}

func (f *fakeClient) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func newTestService(t *testing.T, client *fakeClient, token string) (*RosterService, *credential.MemoryStorage) {
	t.Helper()
	storage := credential.NewMemoryStorage()
	if token != "" {
		storage.Set("token", token)
	}
	resolver := credential.NewDefaultResolver(storage, "token", "user", []string{"token", "accessToken"})
	svc := NewRosterService(resolver, client, roster.NewStore(), validation.New(), 10*time.Millisecond)
	t.Cleanup(svc.Close)
	return svc, storage
}

func sampleWorkers() []model.Worker {
	return []model.Worker{
		{ID: "W1", Name: "Amina", Phone: "5550101", Skill: "stitching", Status: model.WorkerStatusActive, Rating: 4.5},
		{ID: "W2", Name: "Bola", Phone: "5550102", Skill: "cutting", Status: model.WorkerStatusOnLeave},
	}
}

func validCreate() *model.CreateWorkerRequest {
	return &model.CreateWorkerRequest{
		Name:  "Chidi",
		Phone: "5550103",
		Skill: "embroidery",
		GarmentRates: []model.GarmentRate{
			{GarmentType: "Shirt", Rate: 12.5},
		},
	}
}

func TestLoad_Success(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers()}
	svc, _ := newTestService(t, client, "abc")

	assert.Equal(t, ViewLoading, svc.View().Kind)

	require.NoError(t, svc.Load(context.Background()))

	status, err := svc.Status()
	assert.Equal(t, LoadStatusReady, status)
	assert.NoError(t, err)
	assert.Equal(t, sampleWorkers(), svc.Roster())
	assert.Equal(t, []string{"abc"}, client.tokens)

	view := svc.View()
	assert.Equal(t, ViewRoster, view.Kind)
	assert.Len(t, view.Workers, 2)
	assert.Equal(t, "idle", view.Search)
}

func TestLoad_EmptyRoster(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{workers: []model.Worker{}}, "abc")

	require.NoError(t, svc.Load(context.Background()))

	view := svc.View()
	assert.Equal(t, ViewEmpty, view.Kind)
	assert.NotNil(t, view.Workers)
	assert.Empty(t, view.Workers)
}

func TestLoad_NotAuthenticated(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers()}
	svc, _ := newTestService(t, client, "")

	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, credential.ErrNotAuthenticated)
	assert.Zero(t, client.fetches)

	view := svc.View()
	assert.Equal(t, ViewError, view.Kind)
	assert.True(t, view.CanRetry)
	assert.NotEmpty(t, view.Error)
}

func TestLoad_RetryAfterFailure(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers(), fetchErr: &rosterapi.APIError{Kind: rosterapi.ErrNetwork, Op: "fetch workers"}}
	svc, _ := newTestService(t, client, "abc")

	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, rosterapi.ErrNetwork)
	assert.Empty(t, svc.Roster())

	client.fetchErr = nil
	require.NoError(t, svc.Load(context.Background()))
	assert.Len(t, svc.Roster(), 2)
	assert.Equal(t, ViewRoster, svc.View().Kind)
}

func TestLoad_FailureKeepsPreviousRoster(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers()}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	client.fetchErr = &rosterapi.APIError{Kind: rosterapi.ErrServer, Op: "fetch workers", StatusCode: 500}
	assert.Error(t, svc.Load(context.Background()))

	assert.Len(t, svc.Roster(), 2)
	assert.Equal(t, ViewError, svc.View().Kind)
}

func TestCreate_RefetchesRoster(t *testing.T) {
	created := model.Worker{ID: "W3", Name: "Chidi", Phone: "5550103", Skill: "embroidery"}
	client := &fakeClient{workers: sampleWorkers(), created: &created}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	// Server-side roster now includes the new worker with server-computed fields
	client.workers = append(sampleWorkers(), model.Worker{ID: "W3", Name: "Chidi", Phone: "5550103", Skill: "embroidery", Performance: 80})

	w, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.Equal(t, "W3", w.ID)
	assert.Equal(t, 80, w.Performance)

	assert.Equal(t, 2, client.fetches)
	assert.Len(t, svc.Roster(), 3)
	require.Len(t, client.creates, 1)
	assert.Equal(t, "Chidi", client.creates[0].Name)
}

func TestCreate_ValidationFailsLocally(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers()}
	svc, _ := newTestService(t, client, "abc")

	req := validCreate()
	req.Name = ""
	req.Phone = "12"

	_, err := svc.Create(context.Background(), req)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "phone")
	assert.Empty(t, client.creates)
}

func TestCreate_RemoteValidationError(t *testing.T) {
	client := &fakeClient{
		workers: sampleWorkers(),
		createErr: &rosterapi.APIError{
			Kind:       rosterapi.ErrValidation,
			Op:         "create worker",
			StatusCode: 422,
			Fields:     map[string]string{"email": "already taken"},
		},
	}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Create(context.Background(), validCreate())
	assert.ErrorIs(t, err, rosterapi.ErrValidation)

	// Roster untouched and no refetch
	assert.Equal(t, 1, client.fetches)
	assert.Len(t, svc.Roster(), 2)
}

func TestCreate_RefetchFailureFallsBackToCreatedRecord(t *testing.T) {
	created := model.Worker{ID: "W3", Name: "Chidi", Phone: "5550103", Skill: "embroidery"}
	client := &fakeClient{workers: sampleWorkers(), created: &created}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	client.fetchErr = &rosterapi.APIError{Kind: rosterapi.ErrNetwork, Op: "fetch workers"}

	w, err := svc.Create(context.Background(), validCreate())
	assert.ErrorIs(t, err, rosterapi.ErrNetwork)
	require.NotNil(t, w)
	assert.Equal(t, "W3", w.ID)

	workers := svc.Roster()
	require.Len(t, workers, 3)
	assert.Equal(t, "W3", workers[2].ID)

	// The roster stays visible; the error is reported to the caller only
	assert.Equal(t, ViewRoster, svc.View().Kind)
}

func TestCreate_RefetchFailureWithoutIDAddsNothing(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers(), created: &model.Worker{}}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	client.fetchErr = &rosterapi.APIError{Kind: rosterapi.ErrServer, Op: "fetch workers", StatusCode: 503}

	_, err := svc.Create(context.Background(), validCreate())
	assert.ErrorIs(t, err, rosterapi.ErrServer)
	assert.Len(t, svc.Roster(), 2)
}

func TestEdit_LocalOnly(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers()}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	name := "Amina O."
	w, err := svc.Edit(context.Background(), "W1", &model.WorkerPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Amina O.", w.Name)
	assert.Equal(t, "Amina O.", svc.Roster()[0].Name)

	// A reload discards the local edit
	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, "Amina", svc.Roster()[0].Name)
}

func TestEdit_UnknownWorker(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{workers: sampleWorkers()}, "abc")
	require.NoError(t, svc.Load(context.Background()))

	name := "Nobody"
	_, err := svc.Edit(context.Background(), "W9", &model.WorkerPatch{Name: &name})
	assert.ErrorIs(t, err, ErrWorkerNotFound)
	assert.Equal(t, sampleWorkers(), svc.Roster())
}

func TestEdit_InvalidPatch(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{workers: sampleWorkers()}, "abc")
	require.NoError(t, svc.Load(context.Background()))

	blank := "  "
	_, err := svc.Edit(context.Background(), "W1", &model.WorkerPatch{Name: &blank})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Equal(t, "Amina", svc.Roster()[0].Name)
}

func TestDelete_LocalOnly(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{workers: sampleWorkers()}, "abc")
	require.NoError(t, svc.Load(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), "W1"))
	remaining := svc.Roster()
	require.Len(t, remaining, 1)
	assert.Equal(t, "W2", remaining[0].ID)

	assert.ErrorIs(t, svc.Delete(context.Background(), "W1"), ErrWorkerNotFound)
}

func TestKeystroke_SearchResultsMergedWithRoster(t *testing.T) {
	client := &fakeClient{
		workers: sampleWorkers(),
		results: map[string][]model.Worker{
			"ami": {{ID: "W1", Name: "Amina"}},
		},
	}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	svc.Keystroke("a")
	svc.Keystroke("am")
	svc.Keystroke("ami")

	require.Eventually(t, func() bool {
		return svc.View().Search == "settled"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, client.queryCount())

	view := svc.View()
	assert.Equal(t, SearchStats{Issued: 1}, view.Stats)
	assert.Equal(t, ViewResults, view.Kind)
	assert.Equal(t, "ami", view.Query)
	require.Len(t, view.Workers, 1)
	// Enriched from the canonical record
	assert.Equal(t, "5550101", view.Workers[0].Phone)
	assert.Equal(t, 4.5, view.Workers[0].Rating)

	// Canonical roster is unaffected by search
	assert.Len(t, svc.Roster(), 2)
}

func TestKeystroke_ResultsReflectLocalMutations(t *testing.T) {
	client := &fakeClient{
		workers: sampleWorkers(),
		results: map[string][]model.Worker{
			"a": {{ID: "W1", Name: "Amina"}, {ID: "W2", Name: "Bola", Phone: "5550999"}},
		},
	}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	require.NoError(t, svc.Delete(context.Background(), "W1"))
	renamed := "Bola Renamed"
	_, err := svc.Edit(context.Background(), "W2", &model.WorkerPatch{Name: &renamed})
	require.NoError(t, err)

	svc.Keystroke("a")
	require.Eventually(t, func() bool {
		return svc.View().Search == "settled"
	}, time.Second, 5*time.Millisecond)

	displayed := svc.Displayed()
	require.Len(t, displayed, 1)
	assert.Equal(t, "W2", displayed[0].ID)
	assert.Equal(t, "Bola Renamed", displayed[0].Name)
	assert.Equal(t, "5550102", displayed[0].Phone)
	assert.Equal(t, model.WorkerStatusOnLeave, displayed[0].Status)
}

func TestKeystroke_ResultsShownAsIsBeforeLoad(t *testing.T) {
	client := &fakeClient{
		fetchErr: errors.New("boom"),
		results:  map[string][]model.Worker{"am": {{ID: "W1", Name: "Amina"}}},
	}
	svc, _ := newTestService(t, client, "abc")
	require.Error(t, svc.Load(context.Background()))

	svc.Keystroke("am")
	require.Eventually(t, func() bool {
		return svc.View().Search == "settled"
	}, time.Second, 5*time.Millisecond)

	displayed := svc.Displayed()
	require.Len(t, displayed, 1)
	assert.Equal(t, "Amina", displayed[0].Name)
}

func TestKeystroke_NoMatches(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers(), results: map[string][]model.Worker{}}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	svc.Keystroke("zz")
	require.Eventually(t, func() bool {
		return svc.View().Search == "settled"
	}, time.Second, 5*time.Millisecond)

	view := svc.View()
	assert.Equal(t, ViewEmpty, view.Kind)
	assert.Equal(t, "zz", view.Query)
}

func TestKeystroke_ClearRestoresRoster(t *testing.T) {
	client := &fakeClient{
		workers: sampleWorkers(),
		results: map[string][]model.Worker{"bo": {{ID: "W2"}}},
	}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	svc.Keystroke("bo")
	require.Eventually(t, func() bool {
		return svc.View().Search == "settled"
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, svc.Displayed(), 1)

	svc.Keystroke("")
	require.Eventually(t, func() bool {
		return svc.View().Search == "idle"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, ViewRoster, svc.View().Kind)
	assert.Len(t, svc.Displayed(), 2)
	assert.Equal(t, 1, client.queryCount())
}

func TestKeystroke_SearchErrorClearsResults(t *testing.T) {
	client := &fakeClient{
		workers:   sampleWorkers(),
		searchErr: &rosterapi.APIError{Kind: rosterapi.ErrServer, Op: "search workers", StatusCode: 500},
	}
	svc, _ := newTestService(t, client, "abc")
	require.NoError(t, svc.Load(context.Background()))

	svc.Keystroke("ami")
	require.Eventually(t, func() bool {
		return svc.View().Search == "errored"
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, svc.Displayed())
	assert.Equal(t, ViewEmpty, svc.View().Kind)
}

func TestKeystroke_ResolvesCredentialPerSearch(t *testing.T) {
	client := &fakeClient{workers: sampleWorkers(), results: map[string][]model.Worker{}}
	svc, storage := newTestService(t, client, "first")
	require.NoError(t, svc.Load(context.Background()))

	storage.Set("token", "second")
	svc.Keystroke("x")
	require.Eventually(t, func() bool {
		return client.queryCount() == 1
	}, time.Second, 5*time.Millisecond)

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, client.tokens)
}

func TestGarmentRatePassthrough(t *testing.T) {
	svc, _ := newTestService(t, &fakeClient{}, "abc")

	rates, err := svc.AddGarmentRate(model.GarmentRate{GarmentType: "Shirt", Rate: 10}, nil)
	require.NoError(t, err)
	rates, err = svc.AddGarmentRate(model.GarmentRate{GarmentType: "shirt", Rate: 12}, rates)
	assert.True(t, errors.Is(err, roster.ErrDuplicateType))
	assert.Len(t, rates, 1)

	rates = svc.RemoveGarmentRate("SHIRT", rates)
	assert.Empty(t, rates)
}
