// Package aggregator runs the tiered source cascade that turns a locality id
// into a short list of relevant headlines. Tiers degrade from curated local
// feeds down to an unfiltered national digest; only a total blackout across
// every tier surfaces as an error.
package aggregator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/cities"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/metrics"
	"github.com/citydigest/citydigest/internal/models"
	"github.com/citydigest/citydigest/internal/newspool"
	"github.com/citydigest/citydigest/internal/source"
)

// Scope says how the returned items relate to the requested locality
type Scope string

const (
	// ScopeLocality means every item mentions the locality
	ScopeLocality Scope = "locality"
	// ScopeGeneral means the cascade fell through to national headlines
	ScopeGeneral Scope = "general"
)

// fallbackMinItems is the floor for the unfiltered national digest
const fallbackMinItems = 8

// vkPostsPerWall bounds how many posts one wall contributes
const vkPostsPerWall = 20

// FeedFetcher is the slice of the source client the cascade needs
type FeedFetcher interface {
	FetchFeed(ctx context.Context, url string) ([]models.ContentItem, source.Status)
}

// WallFetcher pulls social wall posts for the general tier
type WallFetcher interface {
	FetchWall(ctx context.Context, groupID int64, count int) ([]models.ContentItem, source.Status)
}

// Result is one aggregated digest
type Result struct {
	Locality models.Locality      `json:"locality"`
	Scope    Scope                `json:"scope"`
	Items    []models.ContentItem `json:"items"`
}

// Aggregator fans out to the source endpoints of each tier with bounded
// concurrency and a shared outbound rate limit.
type Aggregator struct {
	feeds    FeedFetcher
	walls    WallFetcher
	registry *cities.Registry
	cfg      config.AggregateConfig
	fetch    config.FetchConfig
	sem      *semaphore.Weighted
	limiter  *rate.Limiter
}

// New builds an aggregator. walls may be nil when no social token is
// configured; the general tier then runs on feeds alone.
func New(feeds FeedFetcher, walls WallFetcher, registry *cities.Registry, cfg config.AggregateConfig, fetch config.FetchConfig) *Aggregator {
	return &Aggregator{
		feeds:    feeds,
		walls:    walls,
		registry: registry,
		cfg:      cfg,
		fetch:    fetch,
		sem:      semaphore.NewWeighted(int64(fetch.Concurrency)),
		limiter:  rate.NewLimiter(rate.Limit(fetch.RatePerSecond), fetch.Concurrency),
	}
}

// Digest walks the cascade for one locality. limit <= 0 falls back to the
// configured default. The returned scope tells the caller whether the items
// are locality-relevant or a national fallback.
func (a *Aggregator) Digest(ctx context.Context, localityID string, limit int) (*Result, error) {
	loc, ok := a.registry.Get(localityID)
	if !ok {
		return nil, apperrors.ErrUnknownLocality
	}
	if limit <= 0 {
		limit = a.cfg.DefaultLimit
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Deadline)
	defer cancel()

	now := time.Now()
	keywords := a.registry.KeywordsFor(loc)

	// Tier one: curated locality feeds, standard recency window
	start := time.Now()
	localPool := newspool.NewPool(now, a.fetch.RecencyWindow)
	a.fetchInto(ctx, localPool, a.registry.PrimaryEndpoints(loc.ID), nil)
	metrics.RecordAggregation(string(models.TierLocalityPrimary), time.Since(start))

	if relevant := newspool.FilterRelevant(localPool.Items(), keywords, limit); len(relevant) > 0 {
		return &Result{Locality: loc, Scope: ScopeLocality, Items: relevant}, nil
	}

	// Tier two: when the locality feeds produced nothing at all, retry the
	// guaranteed wires under the wider window. A populated-but-irrelevant
	// pool skips straight to the general tier.
	if localPool.Len() == 0 {
		start = time.Now()
		wirePool := newspool.NewPool(now, a.fetch.FallbackWindow)
		a.fetchInto(ctx, wirePool, a.registry.GuaranteedEndpoints(), nil)
		metrics.RecordAggregation(string(models.TierGuaranteed), time.Since(start))

		if relevant := newspool.FilterRelevant(wirePool.Items(), keywords, limit); len(relevant) > 0 {
			return &Result{Locality: loc, Scope: ScopeLocality, Items: relevant}, nil
		}
	}

	// Tier three: the whole general pool, wires first, then the long tail,
	// bridges and social walls, back under the standard window.
	start = time.Now()
	generalPool := newspool.NewPool(now, a.fetch.RecencyWindow)
	a.fetchInto(ctx, generalPool, a.registry.GeneralEndpoints(), a.registry.VKGroupIDs())
	metrics.RecordAggregation(string(models.TierGeneral), time.Since(start))

	if relevant := newspool.FilterRelevant(generalPool.Items(), keywords, limit); len(relevant) > 0 {
		return &Result{Locality: loc, Scope: ScopeLocality, Items: relevant}, nil
	}

	// Last resort: national headlines without the relevance filter
	if items := generalPool.Items(); len(items) > 0 {
		n := limit
		if n < fallbackMinItems {
			n = fallbackMinItems
		}
		if n > len(items) {
			n = len(items)
		}
		logger.Info("no locality-relevant items, serving national digest",
			"locality", loc.ID, "items", n)
		return &Result{Locality: loc, Scope: ScopeGeneral, Items: items[:n]}, nil
	}

	return nil, apperrors.ErrContentUnavailable
}

// fetchInto fans out over the endpoints (and optionally the social walls)
// and merges everything into the pool. Per-source order is preserved; the
// interleaving across sources follows completion order, with the pool's
// dedup deciding ties.
func (a *Aggregator) fetchInto(ctx context.Context, pool *newspool.Pool, endpoints []models.SourceEndpoint, wallIDs []int64) {
	var wg sync.WaitGroup
	var mu sync.Mutex

	run := func(fetch func() []models.ContentItem) {
		defer wg.Done()
		defer a.sem.Release(1)
		if err := a.limiter.Wait(ctx); err != nil {
			return
		}
		items := fetch()
		if len(items) == 0 {
			return
		}
		mu.Lock()
		pool.Add(items)
		mu.Unlock()
	}

	for _, ep := range endpoints {
		url := ep.URL
		if err := a.sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go run(func() []models.ContentItem {
			items, _ := a.feeds.FetchFeed(ctx, url)
			return items
		})
	}

	if a.walls != nil {
		for _, id := range wallIDs {
			groupID := id
			if err := a.sem.Acquire(ctx, 1); err != nil {
				break
			}
			wg.Add(1)
			go run(func() []models.ContentItem {
				items, _ := a.walls.FetchWall(ctx, groupID, vkPostsPerWall)
				return items
			})
		}
	}

	wg.Wait()
}
