package youtube

import (
	"errors"
	"regexp"
)

// ErrInvalidURL is returned for URLs that are not recognized YouTube video links.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// videoIDRE matches the 11-character video ID in the known YouTube URL shapes:
// watch?v=, youtu.be/, embed/, shorts/, v/ and e/.
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID pulls the platform video ID out of a YouTube URL.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrInvalidURL
	}
	return m[1], nil
}
