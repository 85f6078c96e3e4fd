package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/cities"
	"github.com/citydigest/citydigest/internal/models"
	"github.com/citydigest/citydigest/internal/source"
)

// stubFeeds serves canned items per URL and counts calls
type stubFeeds struct {
	mu       sync.Mutex
	byURL    map[string][]models.ContentItem
	calls    map[string]int
	fallback []models.ContentItem
}

func (s *stubFeeds) FetchFeed(_ context.Context, url string) ([]models.ContentItem, source.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[url]++
	if items, ok := s.byURL[url]; ok {
		if len(items) == 0 {
			return nil, source.StatusEmpty
		}
		return items, source.StatusOK
	}
	if len(s.fallback) == 0 {
		return nil, source.StatusEmpty
	}
	return s.fallback, source.StatusOK
}

type stubWalls struct {
	items []models.ContentItem
}

func (s *stubWalls) FetchWall(_ context.Context, _ int64, _ int) ([]models.ContentItem, source.Status) {
	if len(s.items) == 0 {
		return nil, source.StatusEmpty
	}
	return s.items, source.StatusOK
}

func testConfigs() (config.AggregateConfig, config.FetchConfig) {
	return config.AggregateConfig{Deadline: 5 * time.Second, DefaultLimit: 5},
		config.FetchConfig{
			Concurrency:    4,
			RatePerSecond:  10000,
			RecencyWindow:  14 * 24 * time.Hour,
			FallbackWindow: 30 * 24 * time.Hour,
		}
}

func recentItem(title string, n int) models.ContentItem {
	return models.ContentItem{
		Title:       title,
		Link:        fmt.Sprintf("http://news.example/%s/%d", title, n),
		PublishedAt: time.Now().Add(-time.Duration(n+1) * time.Hour),
	}
}

func TestDigestUnknownLocality(t *testing.T) {
	aggCfg, fetchCfg := testConfigs()
	a := New(&stubFeeds{}, nil, cities.New(), aggCfg, fetchCfg)

	_, err := a.Digest(context.Background(), "atlantis", 5)
	if !errors.Is(err, apperrors.ErrUnknownLocality) {
		t.Fatalf("expected ErrUnknownLocality, got %v", err)
	}
}

func TestDigestLocalityTier(t *testing.T) {
	registry := cities.New()
	primary := registry.PrimaryEndpoints("moscow")
	if len(primary) == 0 {
		t.Fatal("moscow must have curated feeds")
	}

	feeds := &stubFeeds{byURL: map[string][]models.ContentItem{
		primary[0].URL: {
			recentItem("В Москве открыли развязку", 0),
			recentItem("Курс валют", 1),
		},
	}}

	aggCfg, fetchCfg := testConfigs()
	a := New(feeds, nil, registry, aggCfg, fetchCfg)

	res, err := a.Digest(context.Background(), "moscow", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scope != ScopeLocality {
		t.Errorf("expected locality scope, got %s", res.Scope)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 relevant item, got %d", len(res.Items))
	}
	if res.Items[0].Title != "В Москве открыли развязку" {
		t.Errorf("unexpected item %q", res.Items[0].Title)
	}

	// The general tier must not have been touched
	for _, ep := range registry.GeneralEndpoints() {
		if feeds.calls[ep.URL] > 0 {
			t.Errorf("general endpoint %s fetched despite tier-one success", ep.URL)
		}
	}
}

func TestDigestGuaranteedFallback(t *testing.T) {
	registry := cities.New()
	wire := registry.GuaranteedEndpoints()[0].URL

	// Curated feeds dark, one wire carries a relevant story 20 days old:
	// outside the standard window, inside the widened one.
	stale := models.ContentItem{
		Title:       "Самара принимает форум",
		Link:        "http://wire.example/1",
		PublishedAt: time.Now().Add(-20 * 24 * time.Hour),
	}
	feeds := &stubFeeds{byURL: map[string][]models.ContentItem{wire: {stale}}}

	aggCfg, fetchCfg := testConfigs()
	a := New(feeds, nil, registry, aggCfg, fetchCfg)

	res, err := a.Digest(context.Background(), "samara", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scope != ScopeLocality {
		t.Errorf("expected locality scope from wire fallback, got %s", res.Scope)
	}
	if len(res.Items) != 1 || res.Items[0].Link != "http://wire.example/1" {
		t.Errorf("expected the wire story, got %+v", res.Items)
	}
}

func TestDigestGeneralFallbackUnfiltered(t *testing.T) {
	registry := cities.New()

	// Every source answers, nothing mentions the locality
	var national []models.ContentItem
	for i := 0; i < 12; i++ {
		national = append(national, recentItem("Федеральная повестка", i))
	}
	feeds := &stubFeeds{fallback: national}

	aggCfg, fetchCfg := testConfigs()
	a := New(feeds, &stubWalls{}, registry, aggCfg, fetchCfg)

	res, err := a.Digest(context.Background(), "tomsk", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scope != ScopeGeneral {
		t.Errorf("expected general scope, got %s", res.Scope)
	}
	// Requested 3, but the national digest never shrinks below its floor
	if len(res.Items) != 8 {
		t.Errorf("expected 8 fallback items, got %d", len(res.Items))
	}
}

func TestDigestAllSourcesDark(t *testing.T) {
	aggCfg, fetchCfg := testConfigs()
	a := New(&stubFeeds{}, &stubWalls{}, cities.New(), aggCfg, fetchCfg)

	_, err := a.Digest(context.Background(), "moscow", 5)
	if !errors.Is(err, apperrors.ErrContentUnavailable) {
		t.Fatalf("expected ErrContentUnavailable, got %v", err)
	}
}

func TestDigestWallPostsReachGeneralTier(t *testing.T) {
	registry := cities.New()
	walls := &stubWalls{items: []models.ContentItem{{
		Title:       "В Томске запустили трамвай",
		Link:        "https://vk.com/wall-1_1",
		Body:        "В Томске сегодня запустили новый трамвайный маршрут",
		PublishedAt: time.Now().Add(-time.Hour),
	}}}

	aggCfg, fetchCfg := testConfigs()
	a := New(&stubFeeds{}, walls, registry, aggCfg, fetchCfg)

	res, err := a.Digest(context.Background(), "tomsk", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scope != ScopeLocality {
		t.Errorf("expected locality scope from wall post, got %s", res.Scope)
	}
}
