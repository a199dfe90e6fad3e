package httpclient

import (
	"context"
	"net/http"
	"time"
)

// ClientType selects which header profile outgoing requests carry.
type ClientType string

const (
	// BrowserClient sends browser-like headers. YouTube serves the full watch
	// page (including the embedded player response) only to browser-like
	// User-Agents.
	BrowserClient ClientType = "browser"

	// APIClient sends plain JSON headers for the Data API and other JSON
	// endpoints.
	APIClient ClientType = "api"
)

var headerProfiles = map[ClientType]map[string]string{
	BrowserClient: {
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Connection":      "keep-alive",
	},
	APIClient: {
		"Accept": "application/json",
	},
}

const (
	requestTimeout = 30 * time.Second
	maxRedirects   = 10
)

// HTTPClient wraps an http.Client with a fixed header profile.
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
}

// NewClient creates an HTTP client with the given header profile.
func NewClient(clientType ClientType) *HTTPClient {
	return &HTTPClient{
		clientType: clientType,
		client: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Do executes a request with the profile's headers applied.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	for k, v := range headerProfiles[c.clientType] {
		req.Header.Set(k, v)
	}
	return c.client.Do(req)
}

// Get is a convenience method for GET requests.
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	return c.GetContext(context.Background(), url)
}

// GetContext is Get with a caller-supplied context.
func (c *HTTPClient) GetContext(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}
