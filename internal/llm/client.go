// Package llm builds outbound model clients from decrypted credentials. Both OpenAI and
// Google are reached through the OpenAI chat completions protocol.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/dtroode/superapp-gateway/internal/model"
)

// Endpoint is the base URL and default model of one provider.
type Endpoint struct {
	BaseURL string
	Model   string
}

var _ model.ModelClientFactory = (*Factory)(nil)

// Factory creates a Client per call so that each one carries the caller's own key.
type Factory struct {
	endpoints  map[model.Service]Endpoint
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client
}

type FactoryOption func(*Factory)

func WithTimeout(d time.Duration) FactoryOption {
	return func(f *Factory) {
		f.timeout = d
	}
}

func WithMaxRetries(n int) FactoryOption {
	return func(f *Factory) {
		f.maxRetries = n
	}
}

func WithHTTPClient(c *http.Client) FactoryOption {
	return func(f *Factory) {
		f.httpClient = c
	}
}

func NewFactory(endpoints map[model.Service]Endpoint, opts ...FactoryOption) *Factory {
	f := &Factory{
		endpoints:  endpoints,
		timeout:    60 * time.Second,
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New returns a client for service authenticated with apiKey.
func (f *Factory) New(service model.Service, apiKey string) (model.ModelClient, error) {
	endpoint, ok := f.endpoints[service]
	if !ok {
		return nil, model.NewValidationError("service", fmt.Sprintf("no model endpoint for %q", service))
	}
	if apiKey == "" {
		return nil, errors.New("llm: api key is empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(endpoint.BaseURL),
		option.WithMaxRetries(f.maxRetries),
	}
	if f.timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(f.timeout))
	}
	if f.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(f.httpClient))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  endpoint.Model,
	}, nil
}

// Client calls the chat completions endpoint of one provider.
type Client struct {
	client openai.Client
	model  string
}

var _ model.ModelClient = (*Client)(nil)

// Complete sends prompt as a single user message.
func (c *Client) Complete(ctx context.Context, prompt string, opts model.CompletionOptions) (model.Completion, error) {
	modelName := opts.Model
	if modelName == "" {
		modelName = c.model
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(opts.Temperature),
		TopP:        openai.Float(opts.TopP),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(opts.MaxTokens)
	}

	started := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	latency := time.Since(started)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return model.Completion{}, fmt.Errorf("model provider returned status %d", apiErr.StatusCode)
		}
		return model.Completion{}, fmt.Errorf("model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Completion{}, errors.New("model provider returned no choices")
	}

	choice := resp.Choices[0]
	return model.Completion{
		Text:         choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: model.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			LatencyMs:        latency.Milliseconds(),
		},
	}, nil
}
