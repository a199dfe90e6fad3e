package youtube

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedEntry is one recent upload taken from a channel's public feed.
type FeedEntry struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// ChannelUploads lists a channel's latest uploads via the public Atom feed.
// No API key is required; YouTube caps the feed at the 15 most recent videos.
func (c *Client) ChannelUploads(ctx context.Context, channelID string) ([]FeedEntry, error) {
	feedURL := c.feedBaseURL + "/feeds/videos.xml?channel_id=" + channelID

	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel feed: %w", err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("channel feed contains no items")
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		entry := FeedEntry{
			Title:       item.Title,
			URL:         item.Link,
			PublishedAt: item.Published,
		}
		if id, err := ExtractVideoID(item.Link); err == nil {
			entry.VideoID = id
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in channel feed")
	}
	return entries, nil
}
