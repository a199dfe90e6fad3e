package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"video-summarizer/pkg/domain"

	"github.com/PuerkitoBio/goquery"
)

// Segment is one raw caption segment as delivered by the platform,
// with timings in milliseconds.
type Segment struct {
	Text       string
	OffsetMs   int64
	DurationMs int64
}

// Normalize converts platform segments into canonical transcript segments
// with timings in seconds, order preserved.
func Normalize(segments []Segment) []domain.TranscriptSegment {
	out := make([]domain.TranscriptSegment, len(segments))
	for i, seg := range segments {
		out[i] = domain.TranscriptSegment{
			Text:     seg.Text,
			Start:    float64(seg.OffsetMs) / 1000,
			Duration: float64(seg.DurationMs) / 1000,
		}
	}
	return out
}

// FullText joins segment texts with single spaces, skipping empty segments.
// This is the prompt context handed to the summarizer.
func FullText(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

const playerResponseMarker = "ytInitialPlayerResponse = "

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

// timedText mirrors YouTube's caption XML: <transcript><text start dur>…
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Lines   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// Transcript fetches the caption segments for a video. It scrapes the watch
// page for the embedded player response, picks the best caption track, and
// decodes its timedtext XML into millisecond segments.
func (c *Client) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	pr, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	if pr.Captions == nil {
		if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("failed to get transcript: captions unavailable: %s", pr.PlayabilityStatus.Reason)
		}
		return nil, errors.New("failed to get transcript: no captions for video")
	}

	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("failed to get transcript: no caption tracks")
	}

	segments, err := c.fetchTimedText(ctx, pickTrack(tracks).BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}
	if len(segments) == 0 {
		return nil, errors.New("failed to get transcript: empty caption track")
	}
	return segments, nil
}

// fetchPlayerResponse loads the watch page and extracts the
// ytInitialPlayerResponse JSON from its inline scripts.
func (c *Client) fetchPlayerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	resp, err := c.browser.GetContext(ctx, c.watchBaseURL+"/watch?v="+videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSONObject(text[idx+len(playerResponseMarker):])
		return raw == ""
	})
	if raw == "" {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	var pr playerResponse
	if err := json.Unmarshal([]byte(raw), &pr); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &pr, nil
}

// fetchTimedText fetches and decodes a caption track URL into segments.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) ([]Segment, error) {
	resp, err := c.browser.GetContext(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext: unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// Caption text arrives with HTML entities escaped a second time
		// inside the XML character data.
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:       text,
			OffsetMs:   int64(line.Start * 1000),
			DurationMs: int64(line.Dur * 1000),
		})
	}
	return segments, nil
}

// pickTrack selects a caption track: manual English first, then any English,
// then the first track.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// extractJSONObject returns the balanced JSON object at the start of s,
// respecting string literals and escapes. Returns "" if no object is found.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
