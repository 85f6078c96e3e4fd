package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewVKClientWithoutToken(t *testing.T) {
	if c := NewVKClient("", time.Second); c != nil {
		t.Error("expected nil client when no token is configured")
	}
}

func TestFetchWall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("owner_id"); got != "-123" {
			t.Errorf("expected negated group id, got %s", got)
		}
		if got := r.URL.Query().Get("v"); got != vkAPIVersion {
			t.Errorf("expected api version %s, got %s", vkAPIVersion, got)
		}
		w.Write([]byte(`{"response":{"items":[
			{"id":7,"date":1725264000,"text":"В Казани открыли новую станцию метро.\nПодробности позже."},
			{"id":8,"date":1725260000,"text":""}
		]}}`))
	}))
	defer srv.Close()

	c := NewVKClient("token", time.Second)
	c.baseURL = srv.URL

	items, status := c.FetchWall(context.Background(), 123, 10)
	if status != StatusOK {
		t.Fatalf("expected ok, got %s", status)
	}
	if len(items) != 1 {
		t.Fatalf("expected empty post to be skipped, got %d items", len(items))
	}

	item := items[0]
	if item.Link != "https://vk.com/wall-123_7" {
		t.Errorf("unexpected link %q", item.Link)
	}
	if item.Title == "" || item.Body == "" {
		t.Error("expected both title and body to be populated")
	}
	if !item.HasPublishedAt() {
		t.Error("expected unix date to become a timestamp")
	}
}

func TestFetchWallAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"error_msg":"invalid access_token"}}`))
	}))
	defer srv.Close()

	c := NewVKClient("token", time.Second)
	c.baseURL = srv.URL

	_, status := c.FetchWall(context.Background(), 123, 10)
	if status != StatusBadPayload {
		t.Errorf("expected bad_payload on api error, got %s", status)
	}
}
