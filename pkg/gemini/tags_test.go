package gemini

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"ai, machine learning ,   , tutorial", []string{"ai", "machine learning", "tutorial"}},
		{"single", []string{"single"}},
		{"", []string{}},
		{" , , ", []string{}},
		{"go,testing,concurrency", []string{"go", "testing", "concurrency"}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
