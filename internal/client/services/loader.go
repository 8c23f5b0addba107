package services

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/logging"
)

// bulkConcurrency caps simultaneous per-id fetches in LoadAll.
const bulkConcurrency = 4

// Fetcher is the slice of the API client the loaders need.
type Fetcher interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

// LoadEvent is one step of an active-profile load: first the cached value
// (if any), then the fresh result or the error.
type LoadEvent struct {
	Profile *models.Profile
	Cached  bool
	Err     error
}

// Row is one entry of a bulk load, in registry order. Either Profile or Err
// is set; a failed row never disturbs its siblings.
type Row struct {
	ID      string
	Profile *models.Profile
	Err     error
}

// Loader resolves profile ids to profiles, serving cached values instantly
// and reconciling with the network (stale-while-revalidate).
type Loader struct {
	api    Fetcher
	device *DeviceService
	log    logging.Logger

	active slot
}

func NewLoader(api Fetcher, device *DeviceService, log logging.Logger) *Loader {
	return &Loader{api: api, device: device, log: log}
}

// CancelActive aborts any in-flight active-profile fetch (view teardown).
func (l *Loader) CancelActive() {
	l.active.Cancel()
}

// LoadActive resolves the active profile. The cached value, when present, is
// emitted immediately; a revalidating fetch always follows, regardless of
// cache age. A newer LoadActive supersedes and cancels an older one; a
// superseded call emits nothing further.
//
// Emission sequence:
//   - no id:                nothing (caller renders the empty state)
//   - cached hit:           {Profile, Cached: true}, then fresh/error event
//   - fetch success:        {Profile, Cached: false}
//   - fetch failure:        {Err} — caller keeps the stale value on screen
//     when one was emitted, and renders a blocking error otherwise
//   - canceled/superseded:  nothing
func (l *Loader) LoadActive(ctx context.Context, id string, emit func(LoadEvent)) {
	if id == "" {
		return
	}

	ctx, cancel := l.active.begin(ctx)
	defer cancel()

	if cached := l.device.Cached(ctx, id); cached != nil {
		emit(LoadEvent{Profile: cached, Cached: true})
	}

	fresh, err := l.api.GetProfile(ctx, id)
	if ctx.Err() != nil {
		// superseded or torn down while the response was already in hand;
		// the result must not reach the cache or the caller
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		emit(LoadEvent{Err: err})
		return
	}

	l.device.SetCached(ctx, id, fresh)
	emit(LoadEvent{Profile: fresh})
}

// LoadAll resolves many ids without unbounded parallelism. Ids with a
// fresh-enough cache entry are served from it; the rest are fetched under a
// bounded worker pool. The result always follows registry order, one row per
// id, regardless of fetch completion order.
func (l *Loader) LoadAll(ctx context.Context, ids []string) []Row {
	rows := make([]Row, len(ids))

	sem := semaphore.NewWeighted(bulkConcurrency)
	var wg sync.WaitGroup

	for i, id := range ids {
		if p := l.device.CachedFresh(ctx, id); p != nil {
			rows[i] = Row{ID: id, Profile: p}
			continue
		}

		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				rows[i] = Row{ID: id, Err: err}
				return
			}
			defer sem.Release(1)

			p, err := l.api.GetProfile(ctx, id)
			if err != nil {
				// fall back to a stale cache entry before declaring the row failed
				if stale := l.device.Cached(ctx, id); stale != nil {
					rows[i] = Row{ID: id, Profile: stale}
					return
				}
				rows[i] = Row{ID: id, Err: err}
				return
			}
			l.device.SetCached(ctx, id, p)
			rows[i] = Row{ID: id, Profile: p}
		}(i, id)
	}

	wg.Wait()
	return rows
}
