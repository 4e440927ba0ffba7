package client

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Query keys. They match the REST paths the data is read from.
const (
	KeyStudents   = "/api/students"
	KeyGallery    = "/api/gallery"
	KeySlides     = "/api/slides"
	KeyAuthStatus = "/api/auth/status"
)

// KeyStudent is the key of a single student.
func KeyStudent(id string) string {
	return KeyStudents + "/" + url.PathEscape(id)
}

// Status is the lifecycle state of a cached query.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is what observers see of one key.
type Snapshot struct {
	Status    Status
	Data      interface{}
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

// Fetcher loads the value of a key.
type Fetcher func(ctx context.Context) (interface{}, error)

type entry struct {
	snapshot Snapshot
	fetch    Fetcher
	// gen moves on every invalidation. A fetch started under an older gen
	// may have read pre-mutation state and is not stored.
	gen uint64
}

// QueryCache keeps the last result of each key and coalesces concurrent fetches.
type QueryCache struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	group     singleflight.Group
	staleTime time.Duration
	logger    *zap.Logger
	now       func() time.Time
	refreshes sync.WaitGroup
}

// NewQueryCache builds a cache. Entries older than staleTime are refreshed on read;
// staleTime <= 0 keeps entries fresh until invalidated.
func NewQueryCache(staleTime time.Duration, logger *zap.Logger) *QueryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryCache{
		entries:   make(map[string]*entry),
		staleTime: staleTime,
		logger:    logger,
		now:       time.Now,
	}
}

// Snapshot returns the current state of key without fetching.
func (q *QueryCache) Snapshot(key string) Snapshot {
	q.mu.RLock()
	defer q.mu.RUnlock()
	e, ok := q.entries[key]
	if !ok {
		return Snapshot{Status: StatusIdle}
	}
	snap := e.snapshot
	snap.Stale = q.staleLocked(e)
	return snap
}

// Fetch returns the value of key. Fresh data is served from memory. Stale data
// is served from memory while a background refresh runs. Without data the
// fetcher is called and its result returned.
func (q *QueryCache) Fetch(ctx context.Context, key string, fetch Fetcher) Snapshot {
	q.mu.Lock()
	e, ok := q.entries[key]
	if !ok {
		e = &entry{snapshot: Snapshot{Status: StatusIdle}}
		q.entries[key] = e
	}
	e.fetch = fetch
	hasData := e.snapshot.Status == StatusSuccess
	stale := q.staleLocked(e)
	if hasData {
		snap := e.snapshot
		snap.Stale = stale
		q.mu.Unlock()
		if stale {
			q.refreshAsync(ctx, key)
		}
		return snap
	}
	e.snapshot.Status = StatusLoading
	q.mu.Unlock()

	return q.load(ctx, key)
}

// Invalidate marks every key starting with one of prefixes as stale and
// schedules a refetch of those that have a fetcher. It returns the keys touched.
func (q *QueryCache) Invalidate(ctx context.Context, prefixes ...string) []string {
	q.mu.Lock()
	var touched, refetch []string
	for key, e := range q.entries {
		if !hasAnyPrefix(key, prefixes) {
			continue
		}
		e.snapshot.Stale = true
		e.gen++
		q.group.Forget(key)
		touched = append(touched, key)
		if e.fetch != nil {
			refetch = append(refetch, key)
		}
	}
	q.mu.Unlock()

	for _, key := range refetch {
		q.refreshAsync(ctx, key)
	}
	return touched
}

// Wait blocks until background refreshes started so far have finished.
func (q *QueryCache) Wait() {
	q.refreshes.Wait()
}

func (q *QueryCache) refreshAsync(ctx context.Context, key string) {
	ctx = context.WithoutCancel(ctx)
	q.refreshes.Add(1)
	go func() {
		defer q.refreshes.Done()
		q.load(ctx, key)
	}()
}

// load runs the key's fetcher once per in-flight window and stores the outcome.
// A result overtaken by Invalidate is dropped and the key is loaded again.
func (q *QueryCache) load(ctx context.Context, key string) Snapshot {
	v, _, _ := q.group.Do(key, func() (interface{}, error) {
		q.mu.RLock()
		e := q.entries[key]
		var (
			fetch Fetcher
			gen   uint64
		)
		if e != nil {
			fetch = e.fetch
			gen = e.gen
		}
		q.mu.RUnlock()
		if fetch == nil {
			return Snapshot{Status: StatusIdle}, nil
		}

		data, err := fetch(ctx)
		if snap, ok := q.store(key, fetch, gen, data, err); ok {
			return snap, nil
		}
		q.logger.Debug("query invalidated in flight, refetching", zap.String("key", key))
		return q.load(ctx, key), nil
	})
	return v.(Snapshot)
}

func (q *QueryCache) store(key string, fetch Fetcher, gen uint64, data interface{}, err error) (Snapshot, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := q.entries[key]
	if e == nil {
		e = &entry{fetch: fetch, gen: gen}
		q.entries[key] = e
	}
	if e.gen != gen {
		return Snapshot{}, false
	}
	if err != nil {
		q.logger.Debug("query failed", zap.String("key", key), zap.Error(err))
		e.snapshot.Status = StatusError
		e.snapshot.Err = err
		snap := e.snapshot
		if snap.Data != nil {
			snap.Stale = true
		}
		return snap, true
	}
	e.snapshot = Snapshot{Status: StatusSuccess, Data: data, UpdatedAt: q.now()}
	return e.snapshot, true
}

func (q *QueryCache) staleLocked(e *entry) bool {
	if e.snapshot.Stale {
		return true
	}
	if e.snapshot.Status != StatusSuccess || q.staleTime <= 0 {
		return false
	}
	return q.now().Sub(e.snapshot.UpdatedAt) > q.staleTime
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// Query fetches key through the cache and asserts the result type.
func Query[T any](ctx context.Context, q *QueryCache, key string, fetch func(context.Context) (T, error)) (T, Snapshot, error) {
	snap := q.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	var zero T
	if snap.Status == StatusError {
		return zero, snap, snap.Err
	}
	data, ok := snap.Data.(T)
	if !ok {
		return zero, snap, nil
	}
	return data, snap, nil
}
