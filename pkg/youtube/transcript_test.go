package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const timedTextBody = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.5">hello &amp;amp; welcome</text>
  <text start="2.62" dur="3.1">to the channel</text>
  <text start="5.72" dur="1.0">   </text>
</transcript>`

func watchPageBody(captionURL string) string {
	return fmt.Sprintf(`<html><head>
<script>var foo = 1;</script>
<script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s&lang=de","languageCode":"de"},{"baseUrl":"%s&lang=en-asr","languageCode":"en","kind":"asr"},{"baseUrl":"%s&lang=en","languageCode":"en"}]}}};var other = {"nested":{"x":"}"}};</script>
</head><body></body></html>`, captionURL, captionURL, captionURL)
}

func TestTranscript(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lang"); got != "en" {
			t.Errorf("Expected the manual en track to be fetched, got lang=%q", got)
		}
		w.Write([]byte(timedTextBody))
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(watchPageBody(server.URL + "/api/timedtext?v=abc")))
	})

	client := NewClient("unused")
	client.watchBaseURL = server.URL

	segments, err := client.Transcript(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Transcript failed: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments (blank line dropped), got %d", len(segments))
	}
	if segments[0].Text != "hello & welcome" {
		t.Errorf("Segment text = %q, want unescaped %q", segments[0].Text, "hello & welcome")
	}
	if segments[0].OffsetMs != 120 || segments[0].DurationMs != 2500 {
		t.Errorf("Segment timing = (%d, %d), want (120, 2500)", segments[0].OffsetMs, segments[0].DurationMs)
	}
	if segments[1].Text != "to the channel" {
		t.Errorf("Segment text = %q, want %q", segments[1].Text, "to the channel")
	}
}

func TestTranscript_NoCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"}};</script></html>`))
	}))
	defer server.Close()

	client := NewClient("unused")
	client.watchBaseURL = server.URL

	_, err := client.Transcript(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("Expected error for video without captions")
	}
	if !strings.Contains(err.Error(), "no captions") {
		t.Errorf("Expected no-captions error, got %v", err)
	}
}

func TestTranscript_MissingPlayerResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><script>var unrelated = 1;</script></html>`))
	}))
	defer server.Close()

	client := NewClient("unused")
	client.watchBaseURL = server.URL

	if _, err := client.Transcript(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Fatal("Expected error when player response is absent")
	}
}

func TestNormalize(t *testing.T) {
	segments := []Segment{
		{Text: "first", OffsetMs: 1500, DurationMs: 2500},
		{Text: "second", OffsetMs: 4000, DurationMs: 1000},
	}

	out := Normalize(segments)
	if len(out) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(out))
	}
	if out[0].Start != 1.5 || out[0].Duration != 2.5 {
		t.Errorf("First segment = (%v, %v), want (1.5, 2.5)", out[0].Start, out[0].Duration)
	}
	if out[1].Start != 4 || out[1].Duration != 1 {
		t.Errorf("Second segment = (%v, %v), want (4, 1)", out[1].Start, out[1].Duration)
	}
}

func TestFullText(t *testing.T) {
	segments := []Segment{
		{Text: "hello"},
		{Text: "  "},
		{Text: " world "},
	}

	if got := FullText(segments); got != "hello world" {
		t.Errorf("FullText = %q, want %q", got, "hello world")
	}
	if got := FullText(nil); got != "" {
		t.Errorf("FullText(nil) = %q, want empty", got)
	}
}

func TestPickTrack(t *testing.T) {
	manual := captionTrack{BaseURL: "manual", LanguageCode: "en"}
	auto := captionTrack{BaseURL: "auto", LanguageCode: "en", Kind: "asr"}
	german := captionTrack{BaseURL: "de", LanguageCode: "de"}

	if got := pickTrack([]captionTrack{german, auto, manual}); got.BaseURL != "manual" {
		t.Errorf("Expected manual en track, got %q", got.BaseURL)
	}
	if got := pickTrack([]captionTrack{german, auto}); got.BaseURL != "auto" {
		t.Errorf("Expected auto en track, got %q", got.BaseURL)
	}
	if got := pickTrack([]captionTrack{german}); got.BaseURL != "de" {
		t.Errorf("Expected first track fallback, got %q", got.BaseURL)
	}
}

func TestExtractJSONObject(t *testing.T) {
	raw := `{"a":{"b":"}"},"c":"\""} trailing junk`
	if got := extractJSONObject(raw); got != `{"a":{"b":"}"},"c":"\""}` {
		t.Errorf("extractJSONObject = %q", got)
	}
	if got := extractJSONObject("no object here"); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
}
