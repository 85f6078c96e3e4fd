// Package newspool combines per-source item lists into one de-duplicated,
// recency-bounded pool and filters it down to what mentions a locality.
package newspool

import (
	"strings"
	"time"

	"github.com/citydigest/citydigest/internal/models"
)

// junkTitleMarkers flag aggregator chrome that leaks into feeds as items
var junkTitleMarkers = []string{
	"показать все источники",
}

// Pool accumulates items from many sources, dropping duplicates and stale
// entries as they arrive. Order within a source is preserved and sources are
// appended in the order they are added, so earlier tiers rank first.
type Pool struct {
	items  []models.ContentItem
	seen   map[string]struct{}
	cutoff time.Time
}

// NewPool creates a pool that rejects items older than the window. now is
// passed in so tests can pin the clock.
func NewPool(now time.Time, window time.Duration) *Pool {
	return &Pool{
		seen:   make(map[string]struct{}),
		cutoff: now.Add(-window),
	}
}

// Add merges one source's items into the pool and reports how many survived.
// An item is dropped when its link was already seen, its timestamp falls
// before the cutoff, or its title is aggregator junk. Items without a
// timestamp are kept: a missing date is the source's fault, not the item's.
// Junk titles still claim their link in the dedup set, so a syndicated copy
// of a junk item never sneaks in under the same link later.
func (p *Pool) Add(items []models.ContentItem) int {
	kept := 0
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if item.HasPublishedAt() && item.PublishedAt.Before(p.cutoff) {
			continue
		}
		if item.Link != "" {
			if _, dup := p.seen[item.Link]; dup {
				continue
			}
			p.seen[item.Link] = struct{}{}
		}
		if isJunkTitle(item.Title) {
			continue
		}
		p.items = append(p.items, item)
		kept++
	}
	return kept
}

// Items returns the merged pool in arrival order
func (p *Pool) Items() []models.ContentItem {
	return p.items
}

// Len reports how many items the pool holds
func (p *Pool) Len() int {
	return len(p.items)
}

func isJunkTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range junkTitleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
