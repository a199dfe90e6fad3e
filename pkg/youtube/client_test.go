package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const videosListBody = `{
  "items": [
    {
      "snippet": {
        "title": "Go Concurrency Patterns",
        "channelTitle": "GopherCon",
        "channelId": "UCx123",
        "description": "A talk about concurrency",
        "publishedAt": "2023-04-01T10:00:00Z"
      },
      "contentDetails": {
        "duration": "PT31M5S"
      }
    }
  ]
}`

func testClient(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.apiBaseURL = baseURL
	return c
}

func TestVideoInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "dQw4w9WgXcQ" {
			t.Errorf("Expected id query param dQw4w9WgXcQ, got %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("Expected API key to be forwarded, got %q", got)
		}
		w.Write([]byte(videosListBody))
	}))
	defer server.Close()

	client := testClient("test-key", server.URL)

	info, err := client.VideoInfo(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("VideoInfo failed: %v", err)
	}

	if info.Title != "Go Concurrency Patterns" {
		t.Errorf("Title = %q, want %q", info.Title, "Go Concurrency Patterns")
	}
	if info.ChannelName != "GopherCon" {
		t.Errorf("ChannelName = %q, want %q", info.ChannelName, "GopherCon")
	}
	if info.DurationSeconds != 31*60+5 {
		t.Errorf("DurationSeconds = %d, want %d", info.DurationSeconds, 31*60+5)
	}
}

func TestVideoInfo_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := testClient("test-key", server.URL)

	if _, err := client.VideoInfo(context.Background(), "missing12345"); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("Expected ErrVideoNotFound, got %v", err)
	}
}

func TestVideoInfo_MissingAPIKey(t *testing.T) {
	client := NewClient("")

	if _, err := client.VideoInfo(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestVideoInfo_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := testClient("test-key", server.URL)

	if _, err := client.VideoInfo(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Fatal("Expected error for 403 response, got nil")
	}
}

func TestVideoInfo_MalformedDuration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"snippet":{"title":"t","channelTitle":"c"},"contentDetails":{"duration":"garbage"}}]}`))
	}))
	defer server.Close()

	client := testClient("test-key", server.URL)

	if _, err := client.VideoInfo(context.Background(), "dQw4w9WgXcQ"); !errors.Is(err, ErrMalformedDuration) {
		t.Errorf("Expected ErrMalformedDuration, got %v", err)
	}
}
