package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/models"
)

// fileDocument is the on-disk shape of the subscription file
type fileDocument struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
}

// FileStore keeps every subscription in one JSON file, fully loaded in
// memory. Writes rewrite the whole file through a temp-and-rename, so a
// crash mid-write never leaves a torn document behind.
type FileStore struct {
	mu   sync.RWMutex
	path string
	subs []models.Subscription
}

// NewFileStore loads the file at path, creating parent directories as needed.
// A missing file is an empty store, not an error.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.StoreError{Op: "init", Err: err}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("subscription file not found, starting empty", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, apperrors.StoreError{Op: "load", Err: err}
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.StoreError{Op: "load", Err: err}
	}

	// Invalid records are skipped, not fatal: one bad row must not take
	// every other subscriber's delivery down with it.
	for _, sub := range doc.Subscriptions {
		if !sub.Valid() {
			logger.Warn("skipping invalid subscription record",
				"chat_id", sub.ChatID, "locality_id", sub.LocalityID)
			continue
		}
		s.subs = append(s.subs, sub)
	}

	logger.Info("subscriptions loaded", "path", path, "count", len(s.subs))
	return s, nil
}

// Put stores a subscription, replacing any record with the same key
func (s *FileStore) Put(_ context.Context, sub models.Subscription) error {
	if !sub.Valid() {
		return apperrors.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, existing := range s.subs {
		if existing.ChatID == sub.ChatID && existing.LocalityID == sub.LocalityID {
			s.subs[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		s.subs = append(s.subs, sub)
	}

	if err := s.persist(); err != nil {
		return apperrors.StoreError{Op: "put", Err: err}
	}
	return nil
}

// Remove deletes the subscription for the key and reports whether it existed
func (s *FileStore) Remove(_ context.Context, chatID int64, localityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.subs[:0]
	removed := false
	for _, sub := range s.subs {
		if sub.ChatID == chatID && sub.LocalityID == localityID {
			removed = true
			continue
		}
		kept = append(kept, sub)
	}
	s.subs = kept

	if !removed {
		return false, nil
	}
	if err := s.persist(); err != nil {
		return true, apperrors.StoreError{Op: "remove", Err: err}
	}
	return true, nil
}

// ListForSubscriber returns all subscriptions for one chat
func (s *FileStore) ListForSubscriber(_ context.Context, chatID int64) ([]models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Subscription
	for _, sub := range s.subs {
		if sub.ChatID == chatID {
			out = append(out, sub)
		}
	}
	return out, nil
}

// ListDueAt returns the subscriptions due at now's minute
func (s *FileStore) ListDueAt(_ context.Context, now time.Time) ([]models.Subscription, error) {
	s.mu.RLock()
	snapshot := make([]models.Subscription, len(s.subs))
	copy(snapshot, s.subs)
	s.mu.RUnlock()

	return filterDue(snapshot, now), nil
}

// Health verifies the backing directory is still writable
func (s *FileStore) Health(_ context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// persist writes the full record set atomically. Callers hold the lock.
func (s *FileStore) persist() error {
	doc := fileDocument{Subscriptions: s.subs}
	if doc.Subscriptions == nil {
		doc.Subscriptions = []models.Subscription{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
