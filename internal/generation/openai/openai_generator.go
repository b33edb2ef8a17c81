package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"ticketscan/internal/config"
	"ticketscan/internal/generation"
	"ticketscan/internal/port"
)

const providerName = "openai"

func init() {
	generation.RegisterProvider(providerName, func(cfg *config.GenerationProviderConfig) (port.TextGenerator, error) {
		return NewGenerator(cfg), nil
	})
}

// Generator implements port.TextGenerator using the OpenAI Chat Completions API.
type Generator struct {
	model  string
	client openai.Client
}

// NewGenerator creates an OpenAI-backed generator from a provider config.
func NewGenerator(cfg *config.GenerationProviderConfig) *Generator {
	return newGenerator(cfg, cfg.BaseURL)
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom API base URL (for testing).
func NewGeneratorWithEndpoint(cfg *config.GenerationProviderConfig, baseURL string) *Generator {
	return newGenerator(cfg, baseURL)
}

func newGenerator(cfg *config.GenerationProviderConfig, baseURL string) *Generator {
	model := cfg.DefaultModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Generator{
		model:  model,
		client: openai.NewClient(opts...),
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (*port.Completion, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(600),
		Temperature:         openai.Float(0.3),
	})
	if err != nil {
		return nil, mapError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, generation.ErrEmptyCompletion
	}

	model := resp.Model
	if model == "" {
		model = g.model
	}
	return &port.Completion{
		Text:     resp.Choices[0].Message.Content,
		Model:    model,
		Provider: providerName,
	}, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("calling openai API: %w", err)
	}
	baseErr := fmt.Errorf("openai API error (status %d): %s", apiErr.StatusCode, apiErr.Message)
	if apiErr.StatusCode == http.StatusTooManyRequests {
		retryAfter := 0
		if apiErr.Response != nil {
			retryAfter = generation.ParseRetryAfterHeader(apiErr.Response.Header.Get("Retry-After"))
		}
		return generation.NewRateLimitError(providerName, baseErr, retryAfter)
	}
	return baseErr
}
