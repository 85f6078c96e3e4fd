package newspool

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/citydigest/citydigest/internal/models"
	"github.com/citydigest/citydigest/pkg/utils"
)

// stripper removes markup from feed bodies before keyword matching, so a
// keyword inside an HTML attribute never counts as a mention.
var stripper = bluemonday.StrictPolicy()

// FilterRelevant keeps the items that mention the locality by any of its
// keywords, in either the title or the body, case-insensitively. Order is
// preserved. It stops scanning once limit relevant items are found; limit <= 0
// means scan everything.
func FilterRelevant(items []models.ContentItem, keywords []string, limit int) []models.ContentItem {
	if len(keywords) == 0 {
		return nil
	}

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	var relevant []models.ContentItem
	for _, item := range items {
		if mentionsAny(item, lowered) {
			relevant = append(relevant, item)
			if limit > 0 && len(relevant) >= limit {
				break
			}
		}
	}
	return relevant
}

func mentionsAny(item models.ContentItem, lowered []string) bool {
	if utils.ContainsAny(strings.ToLower(item.Title), lowered) {
		return true
	}
	if item.Body == "" {
		return false
	}
	return utils.ContainsAny(strings.ToLower(stripper.Sanitize(item.Body)), lowered)
}
