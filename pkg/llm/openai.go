package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1/responses"
	defaultOpenAIModel    = "gpt-5"
)

// OpenAIClient talks to the OpenAI responses endpoint directly. The raw
// transport is deliberate: reply text must be extracted across the several
// envelope shapes the endpoint has been observed to return.
type OpenAIClient struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		endpoint:   defaultOpenAIEndpoint,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type openAIContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type openAIInputMessage struct {
	Role    Role                `json:"role"`
	Content []openAIContentPart `json:"content"`
}

type openAIRequest struct {
	Model       string               `json:"model"`
	Temperature float64              `json:"temperature"`
	Input       []openAIInputMessage `json:"input"`
}

func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingKey
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 1
	}

	input := make([]openAIInputMessage, 0, len(messages))
	for _, m := range messages {
		input = append(input, openAIInputMessage{
			Role:    m.Role,
			Content: []openAIContentPart{{Type: "text", Text: m.Content}},
		})
	}

	body, err := json.Marshal(openAIRequest{
		Model:       c.model,
		Temperature: temperature,
		Input:       input,
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("openai fetch: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("openai read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai: %s", errorMessage(payload, resp.StatusCode))
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return "", fmt.Errorf("openai decode: %w", err)
	}

	text := strings.TrimSpace(extractResponseText(data))
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

// errorMessage digs a human-readable message out of an error payload,
// falling back to the HTTP status.
func errorMessage(payload []byte, statusCode int) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fmt.Sprintf("request failed (%d)", statusCode)
}

// extractResponseText pulls reply text out of any of the response envelope
// shapes the endpoint returns: a top-level output_text, an output array of
// content blocks, or a chat-completions choices array.
func extractResponseText(data map[string]any) string {
	if text, ok := data["output_text"].(string); ok {
		return text
	}

	if output, ok := data["output"].([]any); ok {
		var fragments []string
		for _, entry := range output {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			switch content := obj["content"].(type) {
			case string:
				fragments = append(fragments, content)
			case []any:
				for _, part := range content {
					partObj, ok := part.(map[string]any)
					if !ok {
						continue
					}
					if text, ok := partObj["text"].(string); ok {
						fragments = append(fragments, text)
					} else if value, ok := partObj["value"].(string); ok {
						fragments = append(fragments, value)
					}
				}
			}
		}
		if len(fragments) > 0 {
			return strings.TrimSpace(strings.Join(fragments, ""))
		}
	}

	if choices, ok := data["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if message, ok := choice["message"].(map[string]any); ok {
				if content, ok := message["content"].(string); ok {
					return strings.TrimSpace(content)
				}
			}
		}
	}

	return ""
}
