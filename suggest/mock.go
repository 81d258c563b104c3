package suggest

import (
	"context"
	"fmt"
)

// MockProvider is a mock suggestion backend for testing.
type MockProvider struct {
	Suggestions map[string]string // Map of source text to suggestion
	CallCount   int               // Number of times Suggest was called
	LastRequest *Request          // Last request received
}

// NewMockProvider creates a new mock provider with default suggestions.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Suggestions: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
		},
	}
}

// Suggest returns mock suggestions.
func (m *MockProvider) Suggest(ctx context.Context, req Request) ([]string, error) {
	m.CallCount++
	reqCopy := req
	m.LastRequest = &reqCopy

	out := make([]string, len(req.Sources))
	for i, text := range req.Sources {
		if s, ok := m.Suggestions[text]; ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprintf("[%s]", text)
		}
	}
	return out, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
