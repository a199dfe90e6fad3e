package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"video-summarizer/pkg/httpclient"
)

const defaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"

// ErrMissingAPIKey is returned when the Data API is called without a key.
var ErrMissingAPIKey = errors.New("YouTube API key not configured")

// ErrVideoNotFound is returned when the Data API has no item for the video ID.
var ErrVideoNotFound = errors.New("video not found or not accessible")

// VideoInfo is the metadata fetched for one video before processing starts.
type VideoInfo struct {
	VideoID         string
	Title           string
	ChannelName     string
	ChannelID       string
	DurationSeconds int
	Description     string
	PublishedAt     string
}

// Client talks to the YouTube Data API and the public watch/caption endpoints.
type Client struct {
	apiKey string

	apiBaseURL   string
	watchBaseURL string
	feedBaseURL  string

	api     *httpclient.HTTPClient
	browser *httpclient.HTTPClient
}

// NewClient creates a YouTube client. The API key is required for metadata
// lookups; transcript and feed fetches use public endpoints.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:       apiKey,
		apiBaseURL:   defaultAPIBaseURL,
		watchBaseURL: "https://www.youtube.com",
		feedBaseURL:  "https://www.youtube.com",
		api:          httpclient.NewClient(httpclient.APIClient),
		browser:      httpclient.NewClient(httpclient.BrowserClient),
	}
}

// videosResponse mirrors the subset of the Data API videos.list payload we use.
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			ChannelID    string `json:"channelId"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// VideoInfo fetches title, channel and duration for a video via the Data API.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "snippet,contentDetails")
	q.Set("key", c.apiKey)

	resp, err := c.api.GetContext(ctx, c.apiBaseURL+"/videos?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video info request failed: unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read video info response: %w", err)
	}

	var payload videosResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode video info response: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := payload.Items[0]
	seconds, err := ParseDuration(item.ContentDetails.Duration)
	if err != nil {
		return nil, fmt.Errorf("failed to parse video duration: %w", err)
	}

	return &VideoInfo{
		VideoID:         videoID,
		Title:           item.Snippet.Title,
		ChannelName:     item.Snippet.ChannelTitle,
		ChannelID:       item.Snippet.ChannelID,
		DurationSeconds: seconds,
		Description:     item.Snippet.Description,
		PublishedAt:     item.Snippet.PublishedAt,
	}, nil
}
