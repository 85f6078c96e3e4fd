// Package store persists subscriptions. The record set is small, so both
// backends favor simple full scans over clever indexing: a flat JSON file by
// default, Postgres when a database is configured.
package store

import (
	"context"
	"time"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/database"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/models"
)

// Store defines the interface for subscription storage. Put replaces any
// existing record with the same (chat, locality) key. Remove reports whether
// a record existed; removing a missing key is not an error.
type Store interface {
	Put(ctx context.Context, sub models.Subscription) error
	Remove(ctx context.Context, chatID int64, localityID string) (bool, error)
	ListForSubscriber(ctx context.Context, chatID int64) ([]models.Subscription, error)
	// ListDueAt returns the subscriptions whose delivery time matches now's
	// wall-clock minute in each subscription's own timezone.
	ListDueAt(ctx context.Context, now time.Time) ([]models.Subscription, error)
	Health(ctx context.Context) error
}

// New picks the backend: Postgres when the database is configured, otherwise
// the JSON file store.
func New(ctx context.Context, db *database.DB, cfg config.StoreConfig) (Store, error) {
	if db.IsConfigured() {
		return NewPostgresStore(ctx, db)
	}
	return NewFileStore(cfg.FilePath)
}

// defaultZone anchors subscriptions that carry no timezone. Matches the most
// common subscriber zone.
const defaultZone = "Europe/Moscow"

// filterDue is the single implementation of the due check, shared by both
// backends. A subscription with an unresolvable zone is skipped and logged,
// never dropped from storage.
func filterDue(subs []models.Subscription, now time.Time) []models.Subscription {
	var due []models.Subscription
	for _, sub := range subs {
		zone := sub.TimezoneID
		if zone == "" {
			zone = defaultZone
		}
		loc, err := time.LoadLocation(zone)
		if err != nil {
			logger.Warn("skipping subscription with unresolvable timezone",
				"chat_id", sub.ChatID, "timezone", zone, "error", err)
			continue
		}
		if now.In(loc).Format("15:04") == sub.TimeOfDay {
			due = append(due, sub)
		}
	}
	return due
}
