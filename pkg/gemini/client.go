package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"

	"video-summarizer/pkg/domain"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Gemini exposes an OpenAI-compatible chat completions surface, so the
// summarizer reuses the standard client with a swapped base URL.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

const defaultModel = "gemini-2.0-flash"

// ErrMissingAPIKey is returned when the client is constructed without a key.
var ErrMissingAPIKey = errors.New("Gemini API key not configured")

// Config holds the language-model client settings.
type Config struct {
	APIKey  string
	Model   string // defaults to gemini-2.0-flash
	BaseURL string // defaults to the Gemini OpenAI-compatible endpoint

	// RequestsPerMinute caps outbound model calls; 0 means no limit.
	RequestsPerMinute int
}

// Client generates summaries and tags for video transcripts.
type Client struct {
	cli     *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewClient creates a language-model client from config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = defaultBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}

	return &Client{
		cli:     openai.NewClientWithConfig(clientCfg),
		model:   model,
		limiter: limiter,
	}, nil
}

// complete sends a single-prompt chat completion and returns the raw text.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := c.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateSummary asks the model for a structured summary of the transcript.
// The response is parsed strictly and repaired if needed, so a reachable model
// always yields a fully populated three-field summary.
func (c *Client) GenerateSummary(ctx context.Context, title, channel, transcript string) (domain.Summary, error) {
	text, err := c.complete(ctx, summarizationPrompt(title, channel, transcript))
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to generate summary: %w", err)
	}
	return ParseSummaryResponse(text), nil
}

// GenerateTags asks the model for tags based on the executive summary.
// Tags are non-essential: any failure yields an empty list, never an error.
func (c *Client) GenerateTags(ctx context.Context, title, channel, executive string) []string {
	text, err := c.complete(ctx, tagsPrompt(title, channel, executive))
	if err != nil {
		log.Printf("Failed to generate tags: %v", err)
		return nil
	}
	return ParseTags(text)
}
