package models

import "time"

// ContentItem is one normalized unit of fetched content. Immutable once
// produced by a parser. PublishedAt is the zero value when the source gave
// no parseable timestamp; an unknown timestamp never disqualifies an item.
type ContentItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Body        string    `json:"body,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// HasPublishedAt reports whether the item carried a parseable timestamp
func (c ContentItem) HasPublishedAt() bool {
	return !c.PublishedAt.IsZero()
}

// IsDuplicateOf reports whether two items refer to the same content.
// Identity is the link: items without a link are never duplicates.
func (c ContentItem) IsDuplicateOf(other ContentItem) bool {
	return c.Link != "" && c.Link == other.Link
}

// Headline is a (title, link) pair as returned to consumers
type Headline struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link,omitempty"`
}
