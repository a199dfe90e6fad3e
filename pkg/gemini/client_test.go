package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeCompletionServer serves a fixed chat completion response and captures
// the last prompt it received.
func fakeCompletionServer(t *testing.T, content string, status int) (*httptest.Server, *string) {
	t.Helper()
	var lastPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Messages) > 0 {
			lastPrompt = req.Messages[0].Content
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	return server, &lastPrompt
}

func TestGenerateSummary(t *testing.T) {
	body := `{"executive":"Short.","keyPoints":["p1"],"detailedSummary":"Long."}`
	server, lastPrompt := fakeCompletionServer(t, body, http.StatusOK)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	summary, err := client.GenerateSummary(context.Background(), "Title", "Channel", "transcript text")
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary.Executive != "Short." || summary.DetailedSummary != "Long." {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if !strings.Contains(*lastPrompt, "Title") || !strings.Contains(*lastPrompt, "transcript text") {
		t.Errorf("Prompt missing video context: %q", *lastPrompt)
	}
}

func TestGenerateSummary_UpstreamError(t *testing.T) {
	server, _ := fakeCompletionServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, err := client.GenerateSummary(context.Background(), "t", "c", "x"); err == nil {
		t.Fatal("Expected error from failing model endpoint")
	}
}

func TestGenerateTags(t *testing.T) {
	server, _ := fakeCompletionServer(t, "go, testing, concurrency", http.StatusOK)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	tags := client.GenerateTags(context.Background(), "t", "c", "executive text")
	if len(tags) != 3 || tags[0] != "go" {
		t.Errorf("Tags = %v", tags)
	}
}

func TestGenerateTags_ErrorYieldsEmpty(t *testing.T) {
	server, _ := fakeCompletionServer(t, "", http.StatusBadGateway)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if tags := client.GenerateTags(context.Background(), "t", "c", "x"); len(tags) != 0 {
		t.Errorf("Expected no tags on model failure, got %v", tags)
	}
}

func TestNewClient_MissingKey(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}
