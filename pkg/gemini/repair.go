package gemini

import (
	"encoding/json"
	"strings"

	"video-summarizer/pkg/domain"
)

// Fallback placeholders. A summary handed to the store never has an empty
// field; absent content is replaced with these fixed strings.
const (
	fallbackExecutive       = "Summary not available"
	fallbackDetailed        = "Detailed summary not available"
	repairFallbackExecutive = "Executive summary not available"
	repairFallbackKeyPoint  = "Key points not available"
)

// ParseSummaryResponse turns raw model output into a fully populated summary.
// The primary path is a strict JSON decode; when that fails the text is run
// through a best-effort section scanner. The function is total: any input,
// including the empty string, yields a summary with all three fields set.
func ParseSummaryResponse(text string) domain.Summary {
	stripped := stripCodeFences(text)

	var payload struct {
		Executive       string   `json:"executive"`
		KeyPoints       []string `json:"keyPoints"`
		DetailedSummary string   `json:"detailedSummary"`
	}
	if err := json.Unmarshal([]byte(stripped), &payload); err == nil {
		summary := domain.Summary{
			Executive:       strings.TrimSpace(payload.Executive),
			KeyPoints:       payload.KeyPoints,
			DetailedSummary: strings.TrimSpace(payload.DetailedSummary),
		}
		if summary.Executive == "" {
			summary.Executive = fallbackExecutive
		}
		if len(summary.KeyPoints) == 0 {
			summary.KeyPoints = []string{repairFallbackKeyPoint}
		}
		if summary.DetailedSummary == "" {
			summary.DetailedSummary = fallbackDetailed
		}
		return summary
	}

	return repairSummary(stripped)
}

// section is the state of the line scanner.
type section int

const (
	sectionNone section = iota
	sectionExecutive
	sectionKeyPoints
	sectionDetailed
)

// matchSectionHeader maps a line onto a section if it reads like a header.
// The match is deliberately loose: this is best-effort recovery of prose that
// was supposed to be JSON, not a grammar.
func matchSectionHeader(line string) (section, bool) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "executive") || strings.Contains(lower, "overview"):
		return sectionExecutive, true
	case strings.Contains(lower, "key point") || strings.Contains(lower, "main point"):
		return sectionKeyPoints, true
	case strings.Contains(lower, "detailed") || strings.Contains(lower, "summary"):
		return sectionDetailed, true
	}
	return sectionNone, false
}

// repairSummary reconstructs the three summary fields from loosely formatted
// text. Lines matching a header switch the current section; other lines are
// accumulated into it. Bulleted lines become discrete key points. Sections
// that end up empty get fixed placeholder values.
func repairSummary(text string) domain.Summary {
	var executive, detailed []string
	var keyPoints []string

	current := sectionNone
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if s, ok := matchSectionHeader(line); ok {
			current = s
			continue
		}

		switch current {
		case sectionExecutive:
			executive = append(executive, line)
		case sectionKeyPoints:
			if strings.HasPrefix(line, "-") {
				keyPoints = append(keyPoints, strings.TrimSpace(strings.TrimPrefix(line, "-")))
			}
		case sectionDetailed:
			detailed = append(detailed, line)
		}
	}

	summary := domain.Summary{
		Executive:       strings.Join(executive, " "),
		KeyPoints:       keyPoints,
		DetailedSummary: strings.Join(detailed, " "),
	}
	if summary.Executive == "" {
		summary.Executive = repairFallbackExecutive
	}
	if len(summary.KeyPoints) == 0 {
		summary.KeyPoints = []string{repairFallbackKeyPoint}
	}
	if summary.DetailedSummary == "" {
		summary.DetailedSummary = fallbackDetailed
	}
	return summary
}

// stripCodeFences removes a surrounding markdown code fence, which Gemini
// wraps around JSON output often enough to defeat the strict parse.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop an optional language tag on the fence line.
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		first := strings.TrimSpace(trimmed[:idx])
		if first == "" || first == "json" {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
