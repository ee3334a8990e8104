package rating

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Config holds the completion endpoint settings.
// The defaults target Gemini through its OpenAI-compatible API.
type Config struct {
	APIKey   string        `env:"RATING_API_KEY"`
	BaseURL  string        `env:"RATING_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model    string        `env:"RATING_MODEL" envDefault:"gemini-2.5-flash"`
	Interval time.Duration `env:"RATING_INTERVAL" envDefault:"1s"`
	Timeout  time.Duration `env:"RATING_TIMEOUT" envDefault:"60s"`
}

// Completer sends a single prompt and returns the model's text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompleter implements Completer with the chat completions API.
type OpenAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter creates a completer for cfg. Extra request options are
// applied after the ones derived from cfg.
func NewOpenAICompleter(cfg Config, opts ...option.RequestOption) (*OpenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.Timeout))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAICompleter{
		client: openai.NewClient(reqOpts...),
		model:  cfg.Model,
	}, nil
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: empty response", ErrCompletionFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
