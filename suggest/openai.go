package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI's API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Suggest proposes one translation per source text.
func (p *OpenAIProvider) Suggest(ctx context.Context, req Request) ([]string, error) {
	if len(req.Sources) == 0 {
		return []string{}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Sources))
}

func (p *OpenAIProvider) buildSystemPrompt(req Request) string {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "en"
	}

	prompt := fmt.Sprintf(`# Role
You are a professional translator producing draft suggestions for human reviewers on a translation server.

# Task
Translate each provided text from %s into idiomatic %s. These are suggestions: stay close to the source, a reviewer will polish them.

# Rules
- Do NOT translate HTML tags, attributes, URLs, or content inside <code> blocks.
- Do NOT translate variables or placeholders (e.g., {{name}}, {count}, %%s, $1).
- Preserve meaningful whitespace and punctuation style of the target language.`, sourceLang, req.TargetLang)

	if req.Context != "" {
		prompt += fmt.Sprintf("\n\n# Context\nThe texts belong to: %s.", req.Context)
	}

	prompt += `

# Format
Return a valid JSON object with a single key "suggestions" containing an array of strings in the exact same order as the input.
Example: { "suggestions": ["suggestion 1", "suggestion 2"] }`

	return prompt
}

func (p *OpenAIProvider) buildUserMessage(req Request) string {
	data, _ := json.Marshal(req.Sources)
	return string(data)
}

func (p *OpenAIProvider) parseResponse(content string, expectedCount int) ([]string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if suggestions, ok := obj["suggestions"]; ok {
			if arr, ok := suggestions.([]any); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
		// Fallback: first array value
		for _, v := range obj {
			if arr, ok := v.([]any); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	var arr []any
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return toStringSlice(arr, expectedCount)
	}

	return nil, &ProviderError{
		Message: "invalid response format from OpenAI",
	}
}

func toStringSlice(arr []any, expectedCount int) ([]string, error) {
	if len(arr) != expectedCount {
		return nil, &CountMismatchError{Expected: expectedCount, Got: len(arr)}
	}
	out := make([]string, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, &ProviderError{
				Message: fmt.Sprintf("non-string suggestion at index %d", i),
			}
		}
		out[i] = s
	}
	return out, nil
}

// isRetryableError classifies OpenAI API failures.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503")
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
