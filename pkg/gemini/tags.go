package gemini

import "strings"

// ParseTags splits a comma-separated model response into a cleaned tag list.
// Entries are trimmed and empty entries dropped; order is preserved.
func ParseTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
