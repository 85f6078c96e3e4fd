package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citydigest/citydigest/config"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:         2 * time.Second,
		UserAgent:       "test-agent",
		MaxItemsPerFeed: 50,
	}
}

func TestFetchFeedOK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient(testFetchConfig())
	items, status := c.FetchFeed(context.Background(), srv.URL)
	if status != StatusOK {
		t.Fatalf("expected ok, got %s", status)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
	if gotUA != "test-agent" {
		t.Errorf("expected configured user agent, got %q", gotUA)
	}
}

func TestFetchFeedHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testFetchConfig())
	items, status := c.FetchFeed(context.Background(), srv.URL)
	if status != StatusHTTPError {
		t.Errorf("expected http_error, got %s", status)
	}
	if len(items) != 0 {
		t.Errorf("expected no items on error, got %d", len(items))
	}
}

func TestFetchFeedBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with an HTML error page, the bridge failure mode
		w.Write([]byte("<html><body>Rate limited, try again</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(testFetchConfig())
	_, status := c.FetchFeed(context.Background(), srv.URL)
	if status != StatusBadPayload {
		t.Errorf("expected bad_payload, got %s", status)
	}
}

func TestFetchFeedEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<rss version="2.0"><channel><title>Пусто</title></channel></rss>`))
	}))
	defer srv.Close()

	c := NewClient(testFetchConfig())
	_, status := c.FetchFeed(context.Background(), srv.URL)
	if status != StatusEmpty {
		t.Errorf("expected empty, got %s", status)
	}
}

func TestFetchFeedTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	cfg := testFetchConfig()
	cfg.Timeout = 20 * time.Millisecond
	c := NewClient(cfg)
	_, status := c.FetchFeed(context.Background(), srv.URL)
	if status != StatusTransport {
		t.Errorf("expected transport_error on timeout, got %s", status)
	}
}

func TestFetchFeedContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(testFetchConfig())
	_, status := c.FetchFeed(ctx, srv.URL)
	if status != StatusTransport {
		t.Errorf("expected transport_error on canceled context, got %s", status)
	}
}
