package youtube

import (
	"errors"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2M", 120},
		{"PT1H", 3600},
		{"PT1H30S", 3630},
		{"PT10M5S", 605},
		{"PT0S", 0},
		{"PT", 0},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.token)
		if err != nil {
			t.Errorf("ParseDuration(%q) returned error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestParseDuration_Malformed(t *testing.T) {
	malformed := []string{
		"",
		"1H2M3S",
		"PT1S2M", // wrong field order
		"PTxS",
		"P1DT2H", // day component not supported by the compact form
		"duration: PT1M",
		"PT1M extra",
	}

	for _, token := range malformed {
		_, err := ParseDuration(token)
		if err == nil {
			t.Errorf("ParseDuration(%q): expected error, got nil", token)
			continue
		}
		if !errors.Is(err, ErrMalformedDuration) {
			t.Errorf("ParseDuration(%q): expected ErrMalformedDuration, got %v", token, err)
		}
	}
}
