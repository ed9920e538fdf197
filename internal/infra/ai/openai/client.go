package openai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/codementorhq/code-mentor/internal/domain/ai"
)

const maxTokens = 4096

// Client adapts the OpenAI chat-completion API (and any OpenAI-compatible
// endpoint via BaseURL) to the gateway port. One attempt per call.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	model := c.model
	if model == "" {
		model = openai.GPT4oMini
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	r := openai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
	}
	if req.JSONMode {
		r.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	// Reasoning models reject MaxTokens in favor of MaxCompletionTokens.
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		r.MaxCompletionTokens = maxTokens
	} else {
		r.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, r)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ai.NewError(ai.KindMalformedUpstream, "provider returned an empty completion", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps transport-level failures onto the gateway taxonomy. The
// provider message is kept (it is operator-actionable); credentials never
// appear in it.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return classifyStatus(reqErr.HTTPStatusCode, "request rejected by provider", err)
		}
	}
	// No HTTP status at all: network failure or equivalent.
	return ai.NewError(ai.KindRateLimited, "provider unreachable", err)
}

func classifyStatus(status int, msg string, err error) error {
	switch {
	case status == 401 || status == 403:
		return ai.NewError(ai.KindUnauthorized, msg, err)
	case status == 404:
		return ai.NewError(ai.KindNotFound, msg, err)
	case status == 429 || status >= 500:
		return ai.NewError(ai.KindRateLimited, msg, err)
	default:
		return ai.NewError(ai.KindUnknown, msg, err)
	}
}
