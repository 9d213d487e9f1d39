// Package openaicompat talks to OpenAI-compatible chat and embedding APIs.
// The chat side defaults to Groq's endpoint and the embedding side to
// OpenAI's, but both accept any compatible base URL.
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/resilience"
)

const (
	GroqBaseURL = "https://api.groq.com/openai/v1"

	defaultRequestTimeout = 60 * time.Second
)

type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	RequestTimeout time.Duration
	Executor       *resilience.Executor
}

type Client struct {
	api       *openai.Client
	apiKey    string
	chatModel string
	timeout   time.Duration
	executor  *resilience.Executor
}

// New builds a chat client. A missing API key is not an error here: the
// credential is checked per call so the binary can start without it and
// fail only the operations that need the provider.
func New(cfg Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		api:       openai.NewClientWithConfig(clientCfg),
		apiKey:    strings.TrimSpace(cfg.APIKey),
		chatModel: cfg.ChatModel,
		timeout:   timeout,
		executor:  cfg.Executor,
	}
}

func (c *Client) Chat(ctx context.Context, system, user string, temperature float32) (string, error) {
	if c.apiKey == "" {
		return "", domain.WrapError(domain.ErrMissingCredential, "llm chat", errors.New("api key is not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var output string
	call := func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.chatModel,
			Temperature: temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("chat completion: no choices returned")
		}
		output = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "llm.chat", call, classifyProviderError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapProviderError("llm chat", err)
	}
	return output, nil
}
