// Package source fetches raw records from the tabular upstream and serves
// the derived domain view, with single-flight deduplication and a demo
// fallback so the dashboard always has something to render.
package source

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"regmap/internal/index"
	"regmap/internal/model"
	"regmap/pkg/airtable"
)

const (
	statesTable = "states"
	newsTable   = "news"

	// Hard ceiling on news records per fetch cycle.
	maxNewsRecords = 200

	defaultSnapshotTTL = 5 * time.Minute
)

// RecordSource is the subset of the airtable client the adapter needs.
type RecordSource interface {
	FetchAll(ctx context.Context, table string, opts airtable.QueryOptions) ([]airtable.Record, error)
}

// snapshot is one complete, immutable fetch cycle result. The adapter
// swaps the whole value; readers never observe a half-built state.
type snapshot struct {
	states      []model.StateStatus
	newsByState map[string][]model.NewsItem
	fetchedAt   time.Time
}

// Adapter owns the fetch pipeline for one upstream base. Concurrent
// callers share a single in-flight fetch; a failed fetch leaves nothing
// cached, so the next call retries from scratch.
type Adapter struct {
	records RecordSource
	ttl     time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	snap  *snapshot
}

func NewAdapter(records RecordSource, ttl time.Duration) *Adapter {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &Adapter{records: records, ttl: ttl}
}

// States returns the normalized state statuses for the current fetch cycle.
func (a *Adapter) States(ctx context.Context) ([]model.StateStatus, error) {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.states, nil
}

// NewsForState returns the recency-sorted news list for one state. The
// underlying fetch resolves news cross-references against the states
// table, so this always waits for the full cycle.
func (a *Adapter) NewsForState(ctx context.Context, code string) ([]model.NewsItem, error) {
	if code == "" {
		return []model.NewsItem{}, nil
	}

	snap, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items := snap.newsByState[strings.ToUpper(code)]
	if items == nil {
		return []model.NewsItem{}, nil
	}
	return items, nil
}

// Invalidate drops the cached snapshot. The next call rebuilds it.
func (a *Adapter) Invalidate() {
	a.mu.Lock()
	a.snap = nil
	a.mu.Unlock()
	a.group.Forget("snapshot")
}

func (a *Adapter) snapshot(ctx context.Context) (*snapshot, error) {
	a.mu.RLock()
	snap := a.snap
	a.mu.RUnlock()

	if snap != nil && time.Since(snap.fetchedAt) < a.ttl {
		return snap, nil
	}

	// The shared fetch must not die with the first caller that gives up.
	fetchCtx := context.WithoutCancel(ctx)

	v, err, _ := a.group.Do("snapshot", func() (any, error) {
		fresh, err := a.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.snap = fresh
		a.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

// fetch runs one full cycle: both tables, then the derived index.
func (a *Adapter) fetch(ctx context.Context) (*snapshot, error) {
	var stateRecords, newsRecords []airtable.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stateRecords, err = a.records.FetchAll(gctx, statesTable, airtable.QueryOptions{
			View: "Grid view",
			Fields: []string{
				"code", "name", "status", "reason_short", "last_updated",
				"confidence", "latest_link", "latest_title", "news",
			},
			Sort: []airtable.SortField{
				{Field: "status", Direction: "asc"},
				{Field: "code", Direction: "asc"},
			},
		})
		return err
	})
	g.Go(func() error {
		var err error
		newsRecords, err = a.records.FetchAll(gctx, newsTable, airtable.QueryOptions{
			View: "Grid view",
			Fields: []string{
				"state", "published_at", "source", "title", "url", "summary",
				"topic_tags", "impact", "confidence",
				"status_change_from", "status_change_to",
			},
			Sort:       []airtable.SortField{{Field: "published_at", Direction: "desc"}},
			MaxRecords: maxNewsRecords,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := index.BuildIDTable(stateRecords)
	tags := index.CollectTags(newsRecords, table)

	return &snapshot{
		states:      index.BuildStates(stateRecords, tags),
		newsByState: index.BuildNewsByState(newsRecords, table),
		fetchedAt:   time.Now(),
	}, nil
}
