package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"finresearch/internal/classify"
)

// Config holds OpenAI configuration parameters.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

// ErrDisabled signals that no API key is configured.
var ErrDisabled = errors.New("ai classifier disabled")

// ErrInvalidLabel signals that the model replied with something outside
// the closed category set.
var ErrInvalidLabel = errors.New("ai classifier returned invalid label")

const systemPrompt = `You are a financial intent classifier.
Classify the following query into exactly ONE of these categories:
- stock: questions about stock price, technical indicators, company financials.
- news: questions about market news, recent events, sentiment.
- portfolio: questions about current holdings, adding/removing stocks, performance.
- general: greeting, definitions, or queries unrelated to specific financial data.

Output strictly the category name in lowercase. No punctuation, no explanation.`

// Client classifies queries through the OpenAI chat completion API. It
// implements classify.Backend; the classifier chain absorbs its errors.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewClient constructs a Client if the supplied configuration is valid.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrDisabled
	}
	clientCfg := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = base
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = openai.GPT4oMini
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: float32(cfg.Temperature),
		timeout:     timeout,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.api != nil
}

// Categorize asks the model for a single category label. The call is
// bounded by the configured timeout; the handler never blocks on it
// indefinitely.
func (c *Client) Categorize(ctx context.Context, query string) (classify.Category, error) {
	if !c.Enabled() {
		return classify.CategoryGeneral, ErrDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   8,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return classify.CategoryGeneral, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return classify.CategoryGeneral, errors.New("openai empty response")
	}

	label := NormalizeLabel(resp.Choices[0].Message.Content)
	category, ok := classify.ParseCategory(label)
	if !ok {
		logrus.WithField("label", label).Warn("discarding invalid model label")
		return classify.CategoryGeneral, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return category, nil
}

// NormalizeLabel strips code fences, quotes, and trailing punctuation from
// a model reply, leaving the bare label.
func NormalizeLabel(input string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	trimmed = strings.Trim(trimmed, "\"'` \t\r\n")
	trimmed = strings.TrimRight(trimmed, ".!,;:")
	// Keep only the first token if the model padded the label with prose.
	if idx := strings.IndexAny(trimmed, " \n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.ToLower(trimmed)
}
