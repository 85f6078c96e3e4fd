package source

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/citydigest/citydigest/internal/models"
)

// ParseFeed extracts items from RSS 2.0, RDF or Atom markup. It walks the
// token stream and stops as soon as maxItems have been collected, so a huge
// feed never costs more than the cap. Malformed markup yields whatever was
// parsed before the error, which may be nothing; it never yields an error.
func ParseFeed(body []byte, maxItems int) []models.ContentItem {
	if maxItems <= 0 {
		return nil
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false

	var items []models.ContentItem
	var cur *models.ContentItem
	var field string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "item" || name == "entry" {
				cur = &models.ContentItem{}
				continue
			}
			if cur == nil {
				continue
			}
			switch name {
			case "title", "link", "description", "summary", "pubDate", "published", "updated":
				field = name
				// Atom carries the link as an attribute
				if name == "link" && cur.Link == "" {
					for _, attr := range t.Attr {
						if attr.Name.Local == "href" {
							cur.Link = strings.TrimSpace(attr.Value)
						}
					}
				}
			default:
				field = ""
			}
		case xml.CharData:
			if cur == nil || field == "" {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			switch field {
			case "title":
				if cur.Title == "" {
					cur.Title = text
				}
			case "link":
				if cur.Link == "" {
					cur.Link = text
				}
			case "description", "summary":
				if cur.Body == "" {
					cur.Body = text
				}
			case "pubDate", "published", "updated":
				if cur.PublishedAt.IsZero() {
					if ts, ok := parsePubDate(text); ok {
						cur.PublishedAt = ts
					}
				}
			}
		case xml.EndElement:
			name := t.Name.Local
			if name == "item" || name == "entry" {
				if cur != nil && cur.Title != "" {
					items = append(items, *cur)
					if len(items) >= maxItems {
						return items
					}
				}
				cur = nil
				field = ""
				continue
			}
			if field == name {
				field = ""
			}
		}
	}

	return items
}

// pubDateLayouts cover the formats seen in the wild: RFC 2822 variants
// (Lenta, RIA) and ISO 8601 (TASS and the Telegram bridges).
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// parsePubDate converts a feed timestamp to an absolute instant. Unparsable
// input reports !ok; the item is still kept, just without a timestamp.
func parsePubDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
