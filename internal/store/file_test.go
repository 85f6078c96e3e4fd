package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/citydigest/citydigest/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "subscriptions.json"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func TestFileStorePutAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sub := models.Subscription{
		SubscriberID: 42, ChatID: 42, LocalityID: "kazan",
		TimeOfDay: "07:30", TimezoneID: "Europe/Moscow",
	}
	if err := s.Put(ctx, sub); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.ListForSubscriber(ctx, 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0] != sub {
		t.Errorf("expected [%+v], got %+v", sub, got)
	}

	if got, _ := s.ListForSubscriber(ctx, 99); len(got) != 0 {
		t.Errorf("expected no subscriptions for unknown chat, got %d", len(got))
	}
}

func TestFileStorePutReplacesSameKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := models.Subscription{ChatID: 42, LocalityID: "kazan", TimeOfDay: "07:30", TimezoneID: "Europe/Moscow"}
	second := first
	second.TimeOfDay = "19:00"

	s.Put(ctx, first)
	s.Put(ctx, second)

	got, _ := s.ListForSubscriber(ctx, 42)
	if len(got) != 1 {
		t.Fatalf("expected replacement, got %d records", len(got))
	}
	if got[0].TimeOfDay != "19:00" {
		t.Errorf("expected the later write to win, got %s", got[0].TimeOfDay)
	}
}

func TestFileStorePutRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(context.Background(), models.Subscription{ChatID: 0, LocalityID: "kazan"}); err == nil {
		t.Error("expected invalid subscription to be rejected")
	}
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, models.Subscription{ChatID: 42, LocalityID: "kazan", TimeOfDay: "07:30"})
	s.Put(ctx, models.Subscription{ChatID: 42, LocalityID: "omsk", TimeOfDay: "08:00"})

	removed, err := s.Remove(ctx, 42, "kazan")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Error("expected remove to report the record existed")
	}
	got, _ := s.ListForSubscriber(ctx, 42)
	if len(got) != 1 || got[0].LocalityID != "omsk" {
		t.Errorf("expected only omsk to remain, got %+v", got)
	}

	// Removing a missing key is not an error, it just reports false
	removed, err = s.Remove(ctx, 42, "kazan")
	if err != nil {
		t.Errorf("expected no-op remove, got %v", err)
	}
	if removed {
		t.Error("expected no-op remove to report false")
	}
}

func TestFileStoreSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subscriptions.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	sub := models.Subscription{SubscriberID: 7, ChatID: 7, LocalityID: "spb", TimeOfDay: "09:15", TimezoneID: "Europe/Moscow"}
	if err := s.Put(ctx, sub); err != nil {
		t.Fatalf("put: %v", err)
	}

	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, _ := reloaded.ListForSubscriber(ctx, 7)
	if len(got) != 1 || got[0] != sub {
		t.Errorf("expected subscription to survive reload, got %+v", got)
	}
}

func TestFileStoreSkipsInvalidRecordsOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscriptions.json")
	raw := `{"subscriptions":[
		{"chat_id":0,"locality_id":"kazan","time_of_day":"08:00"},
		{"chat_id":5,"locality_id":"","time_of_day":"08:00"},
		{"chat_id":5,"locality_id":"omsk","time_of_day":"08:00","timezone_id":"Asia/Omsk"}
	]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, _ := s.ListForSubscriber(context.Background(), 5)
	if len(got) != 1 || got[0].LocalityID != "omsk" {
		t.Errorf("expected only the valid record, got %+v", got)
	}
}

func TestFileStoreListDueAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, models.Subscription{ChatID: 1, LocalityID: "kazan", TimeOfDay: "07:30", TimezoneID: "Europe/Moscow"})
	s.Put(ctx, models.Subscription{ChatID: 2, LocalityID: "omsk", TimeOfDay: "07:30", TimezoneID: "Asia/Omsk"})
	s.Put(ctx, models.Subscription{ChatID: 3, LocalityID: "kazan", TimeOfDay: "22:00", TimezoneID: "Europe/Moscow"})
	s.Put(ctx, models.Subscription{ChatID: 4, LocalityID: "spb", TimeOfDay: "07:30", TimezoneID: "Mars/Olympus"})

	// 04:30 UTC is 07:30 in Moscow (UTC+3) but 10:30 in Omsk (UTC+6)
	now := time.Date(2024, 9, 2, 4, 30, 0, 0, time.UTC)
	due, err := s.ListDueAt(ctx, now)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 || due[0].ChatID != 1 {
		t.Fatalf("expected only the Moscow 07:30 subscription, got %+v", due)
	}

	// 01:30 UTC is 07:30 in Omsk
	due, _ = s.ListDueAt(ctx, time.Date(2024, 9, 2, 1, 30, 0, 0, time.UTC))
	if len(due) != 1 || due[0].ChatID != 2 {
		t.Fatalf("expected only the Omsk subscription, got %+v", due)
	}

	// Seconds within the minute do not matter
	due, _ = s.ListDueAt(ctx, time.Date(2024, 9, 2, 4, 30, 59, 0, time.UTC))
	if len(due) != 1 {
		t.Errorf("expected minute-granular match regardless of seconds, got %d", len(due))
	}

	// Off-minute matches nothing
	due, _ = s.ListDueAt(ctx, time.Date(2024, 9, 2, 4, 31, 0, 0, time.UTC))
	if len(due) != 0 {
		t.Errorf("expected nothing due at 04:31 UTC, got %+v", due)
	}
}

func TestFileStoreDefaultZoneWhenUnset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.Put(ctx, models.Subscription{ChatID: 1, LocalityID: "moscow", TimeOfDay: "08:00"})

	// No timezone on the record: the default Moscow zone applies
	due, _ := s.ListDueAt(ctx, time.Date(2024, 9, 2, 5, 0, 0, 0, time.UTC))
	if len(due) != 1 {
		t.Errorf("expected default-zone subscription due at 08:00 Moscow, got %d", len(due))
	}
}
