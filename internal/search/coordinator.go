package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"tailorshop/internal/model"
	"tailorshop/pkg/logger"
)

// State of the search box
type State int

const (
	Idle State = iota
	Pending
	Settled
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// DefaultDebounce quiet period after the last keystroke
const DefaultDebounce = 500 * time.Millisecond

// Searcher runs a remote search
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Worker, error)
}

// SearcherFunc adapts a function to Searcher
type SearcherFunc func(ctx context.Context, query string) ([]model.Worker, error)

func (f SearcherFunc) Search(ctx context.Context, query string) ([]model.Worker, error) {
	return f(ctx, query)
}

// Snapshot is the displayed-results slot as published to the view.
// Filtered is false when the full roster should be shown.
type Snapshot struct {
	State    State
	Query    string
	Seq      uint64
	Filtered bool
	Results  []model.Worker
	Err      error
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithClock replaces the timer source
func WithClock(clock Clock) Option {
	return func(c *Coordinator) { c.clock = clock }
}

// WithListener registers a callback invoked after every state transition.
// Calls are serialized and never go backwards: a snapshot older than one already
// delivered is skipped.
func WithListener(fn func(Snapshot)) Option {
	return func(c *Coordinator) { c.listener = fn }
}

// Coordinator debounces keystrokes into remote searches and drops stale responses.
// Every keystroke takes the next sequence number; a response is applied only if its
// sequence number is still the latest one submitted.
type Coordinator struct {
	searcher Searcher
	delay    time.Duration
	clock    Clock
	listener func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	latest    uint64
	inFlight  uint64
	timer     Timer
	snap      Snapshot
	discarded uint64
	issued    uint64
	version   uint64 // bumped on every published transition

	notifyMu  sync.Mutex
	delivered uint64
}

// NewCoordinator creates a coordinator; delay <= 0 uses DefaultDebounce
func NewCoordinator(searcher Searcher, delay time.Duration, opts ...Option) *Coordinator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		searcher: searcher,
		delay:    delay,
		clock:    realClock{},
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit records a keystroke and restarts the quiet-period timer.
// It returns the sequence number assigned to query.
func (c *Coordinator) Submit(query string) uint64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}

	c.latest++
	seq := c.latest
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(seq, query) })

	c.snap.State = Pending
	c.snap.Query = query
	c.snap.Seq = seq
	snap, version := c.publish()
	c.mu.Unlock()

	c.notify(snap, version)
	return seq
}

// fire runs when a quiet period elapses
func (c *Coordinator) fire(seq uint64, query string) {
	c.mu.Lock()
	if c.closed || seq != c.latest {
		// Superseded; Stop lost the race with the timer
		c.mu.Unlock()
		return
	}
	c.timer = nil

	if strings.TrimSpace(query) == "" {
		c.snap = Snapshot{State: Idle, Query: query, Seq: seq}
		snap, version := c.publish()
		c.mu.Unlock()
		c.notify(snap, version)
		return
	}

	c.inFlight = seq
	c.issued++
	ctx := c.ctx
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		results, err := c.searcher.Search(ctx, strings.TrimSpace(query))
		c.complete(seq, query, results, err)
	}()
}

// complete applies a search response if it is still current
func (c *Coordinator) complete(seq uint64, query string, results []model.Worker, err error) {
	c.mu.Lock()
	if c.closed || seq != c.latest {
		c.discarded++
		c.mu.Unlock()
		logger.Debugf("discarding stale search response, seq: %d, query: %q", seq, query)
		return
	}
	c.inFlight = 0

	if err != nil {
		c.snap = Snapshot{State: Errored, Query: query, Seq: seq, Filtered: true, Err: err}
		logger.Warnf("search failed, query: %q, error: %v", query, err)
	} else {
		if results == nil {
			results = []model.Worker{}
		}
		c.snap = Snapshot{State: Settled, Query: query, Seq: seq, Filtered: true, Results: model.CloneWorkers(results)}
	}
	snap, version := c.publish()
	c.mu.Unlock()

	c.notify(snap, version)
}

// Snapshot returns the current displayed-results slot
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copySnapshot()
}

// InFlight returns the sequence number of the outstanding search, 0 when none
func (c *Coordinator) InFlight() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Stats returns the number of searches issued and stale responses discarded
func (c *Coordinator) Stats() (issued, discarded uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issued, c.discarded
}

// Close cancels the pending timer and in-flight searches and waits for them to return
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
	c.mu.Unlock()

	c.wg.Wait()
}

// copySnapshot must be called with the lock held
func (c *Coordinator) copySnapshot() Snapshot {
	snap := c.snap
	snap.Results = model.CloneWorkers(c.snap.Results)
	return snap
}

// publish must be called with the lock held
func (c *Coordinator) publish() (Snapshot, uint64) {
	c.version++
	return c.copySnapshot(), c.version
}

func (c *Coordinator) notify(snap Snapshot, version uint64) {
	if c.listener == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if version <= c.delivered {
		return
	}
	c.delivered = version
	c.listener(snap)
}
