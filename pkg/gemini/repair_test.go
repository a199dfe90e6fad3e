package gemini

import (
	"testing"
)

func TestParseSummaryResponse_StrictJSON(t *testing.T) {
	input := `{"executive":"A short take.","keyPoints":["first","second"],"detailedSummary":"The long version."}`

	summary := ParseSummaryResponse(input)

	if summary.Executive != "A short take." {
		t.Errorf("Executive = %q", summary.Executive)
	}
	if len(summary.KeyPoints) != 2 || summary.KeyPoints[0] != "first" {
		t.Errorf("KeyPoints = %v", summary.KeyPoints)
	}
	if summary.DetailedSummary != "The long version." {
		t.Errorf("DetailedSummary = %q", summary.DetailedSummary)
	}
}

func TestParseSummaryResponse_CodeFencedJSON(t *testing.T) {
	input := "```json\n{\"executive\":\"Fenced.\",\"keyPoints\":[\"a\"],\"detailedSummary\":\"Body.\"}\n```"

	summary := ParseSummaryResponse(input)

	if summary.Executive != "Fenced." {
		t.Errorf("Executive = %q, fence was not stripped", summary.Executive)
	}
	if summary.DetailedSummary != "Body." {
		t.Errorf("DetailedSummary = %q", summary.DetailedSummary)
	}
}

func TestParseSummaryResponse_JSONWithMissingFields(t *testing.T) {
	input := `{"keyPoints":["only point"]}`

	summary := ParseSummaryResponse(input)

	if summary.Executive != "Summary not available" {
		t.Errorf("Executive = %q, want fallback", summary.Executive)
	}
	if len(summary.KeyPoints) != 1 || summary.KeyPoints[0] != "only point" {
		t.Errorf("KeyPoints = %v", summary.KeyPoints)
	}
	if summary.DetailedSummary != "Detailed summary not available" {
		t.Errorf("DetailedSummary = %q, want fallback", summary.DetailedSummary)
	}
}

func TestParseSummaryResponse_ProseRepair(t *testing.T) {
	input := `Executive Summary:
This video covers testing in Go.

Key Points:
- table tests
- httptest servers
not a bullet, ignored

Detailed Summary:
First the talk introduces table tests.
Then it moves on to integration tests.`

	summary := ParseSummaryResponse(input)

	if summary.Executive != "This video covers testing in Go." {
		t.Errorf("Executive = %q", summary.Executive)
	}
	if len(summary.KeyPoints) != 2 {
		t.Fatalf("KeyPoints = %v, want 2 bulleted points", summary.KeyPoints)
	}
	if summary.KeyPoints[0] != "table tests" || summary.KeyPoints[1] != "httptest servers" {
		t.Errorf("KeyPoints = %v", summary.KeyPoints)
	}
	want := "First the talk introduces table tests. Then it moves on to integration tests."
	if summary.DetailedSummary != want {
		t.Errorf("DetailedSummary = %q, want %q", summary.DetailedSummary, want)
	}
}

func TestParseSummaryResponse_EmptyInput(t *testing.T) {
	summary := ParseSummaryResponse("")

	if summary.Executive != "Executive summary not available" {
		t.Errorf("Executive = %q, want repair fallback", summary.Executive)
	}
	if len(summary.KeyPoints) != 1 || summary.KeyPoints[0] != "Key points not available" {
		t.Errorf("KeyPoints = %v, want repair fallback", summary.KeyPoints)
	}
	if summary.DetailedSummary != "Detailed summary not available" {
		t.Errorf("DetailedSummary = %q, want fallback", summary.DetailedSummary)
	}
}

func TestParseSummaryResponse_Total(t *testing.T) {
	inputs := []string{
		"",
		"garbage with no structure at all",
		"```\n\n```",
		`{"executive": 42}`,
		"- orphan bullet before any header",
	}
	for _, in := range inputs {
		summary := ParseSummaryResponse(in)
		if summary.Executive == "" || len(summary.KeyPoints) == 0 || summary.DetailedSummary == "" {
			t.Errorf("ParseSummaryResponse(%q) left a field empty: %+v", in, summary)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```json\n{}\n```  ", "{}"},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
