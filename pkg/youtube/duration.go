package youtube

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMalformedDuration is returned for duration tokens that do not match the
// ISO-8601 PT[nH][nM][nS] form the Data API uses.
var ErrMalformedDuration = errors.New("malformed duration token")

// durationRE is anchored: a partial hit inside a longer string is not a match.
var durationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts a compact duration token like "PT1H2M3S" into total
// seconds. Any subset of the H/M/S fields may be present (a bare "PT" is zero).
// Tokens that do not match the pattern produce ErrMalformedDuration instead of
// silently returning zero.
func ParseDuration(token string) (int, error) {
	m := durationRE.FindStringSubmatch(token)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, token)
	}

	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, token)
		}
		total += n * mult
	}
	return total, nil
}
