package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codementorhq/code-mentor/internal/domain/ai"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1"
	apiVersion     = "2023-06-01"
	maxTokens      = 4096
)

// Client talks to the Anthropic messages API directly. The system prompt
// travels in its own field; JSON mode is a prompt-level concern here since
// the API has no response-format switch.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	messages := make([]map[string]string, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, map[string]string{"role": m.Role, "content": m.Content})
	}

	payload := map[string]any{
		"model":      c.model,
		"messages":   messages,
		"max_tokens": maxTokens,
	}
	if req.System != "" {
		payload["system"] = req.System
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", ai.NewError(ai.KindRateLimited, "provider unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, raw)
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", ai.NewError(ai.KindMalformedUpstream, "unreadable provider response", err)
	}
	var text strings.Builder
	for _, blk := range result.Content {
		if blk.Type == "text" {
			text.WriteString(blk.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ai.NewError(ai.KindMalformedUpstream, "provider returned an empty completion", nil)
	}
	return text.String(), nil
}

// classifyStatus maps a non-2xx response onto the taxonomy, pulling the
// provider's message out of its error body when it is JSON and tolerating
// bodies that are not.
func classifyStatus(status int, body []byte) error {
	msg := upstreamMessage(body)
	switch {
	case status == 401 || status == 403:
		return ai.NewError(ai.KindUnauthorized, msg, nil)
	case status == 404:
		return ai.NewError(ai.KindNotFound, msg, nil)
	case status == 429 || status >= 500:
		return ai.NewError(ai.KindRateLimited, msg, nil)
	default:
		return ai.NewError(ai.KindUnknown, fmt.Sprintf("status %d: %s", status, msg), nil)
	}
}

func upstreamMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "provider rejected the request"
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
