package store

import (
	"context"
	"fmt"
	"time"

	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/database"
	"github.com/citydigest/citydigest/internal/models"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates the store and ensures its schema exists
func NewPostgresStore(ctx context.Context, db *database.DB) (*PostgresStore, error) {
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, apperrors.StoreError{Op: "init", Err: err}
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	return s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS subscriptions (
			subscriber_id BIGINT NOT NULL,
			chat_id       BIGINT NOT NULL,
			locality_id   TEXT   NOT NULL,
			time_of_day   TEXT   NOT NULL,
			timezone_id   TEXT   NOT NULL DEFAULT '',
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (chat_id, locality_id)
		)
	`)
}

// Put inserts or replaces the subscription for the (chat, locality) key
func (s *PostgresStore) Put(ctx context.Context, sub models.Subscription) error {
	if !sub.Valid() {
		return apperrors.ErrInvalidInput
	}

	query := `
		INSERT INTO subscriptions (subscriber_id, chat_id, locality_id, time_of_day, timezone_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (chat_id, locality_id) DO UPDATE SET
			subscriber_id = EXCLUDED.subscriber_id,
			time_of_day = EXCLUDED.time_of_day,
			timezone_id = EXCLUDED.timezone_id,
			updated_at = NOW()
	`
	if err := s.db.Exec(ctx, query,
		sub.SubscriberID, sub.ChatID, sub.LocalityID, sub.TimeOfDay, sub.TimezoneID,
	); err != nil {
		return apperrors.StoreError{Op: "put", Err: err}
	}
	return nil
}

// Remove deletes the subscription for the key and reports whether it existed
func (s *PostgresStore) Remove(ctx context.Context, chatID int64, localityID string) (bool, error) {
	query := `DELETE FROM subscriptions WHERE chat_id = $1 AND locality_id = $2`
	affected, err := s.db.ExecAffected(ctx, query, chatID, localityID)
	if err != nil {
		return false, apperrors.StoreError{Op: "remove", Err: err}
	}
	return affected > 0, nil
}

// ListForSubscriber returns all subscriptions for one chat
func (s *PostgresStore) ListForSubscriber(ctx context.Context, chatID int64) ([]models.Subscription, error) {
	return s.list(ctx,
		`SELECT subscriber_id, chat_id, locality_id, time_of_day, timezone_id
		 FROM subscriptions WHERE chat_id = $1 ORDER BY locality_id`, chatID)
}

// ListDueAt returns the subscriptions due at now's minute. The timezone
// arithmetic happens here rather than in SQL so both backends share one
// implementation of the due check.
func (s *PostgresStore) ListDueAt(ctx context.Context, now time.Time) ([]models.Subscription, error) {
	subs, err := s.list(ctx,
		`SELECT subscriber_id, chat_id, locality_id, time_of_day, timezone_id
		 FROM subscriptions`)
	if err != nil {
		return nil, err
	}
	return filterDue(subs, now), nil
}

// Health checks the database connection
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]models.Subscription, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(
			&sub.SubscriberID, &sub.ChatID, &sub.LocalityID, &sub.TimeOfDay, &sub.TimezoneID,
		); err != nil {
			return nil, apperrors.StoreError{Op: "list", Err: fmt.Errorf("scan subscription: %w", err)}
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreError{Op: "list", Err: err}
	}
	return subs, nil
}
