package agent

import (
	"context"
	"net/url"

	"github.com/ZaguanLabs/gotms"
)

// Mock is a canned-response agent for testing. Responses are keyed by
// endpoint; unknown endpoints return a 404-shaped error.
type Mock struct {
	Responses map[string]Body // Map of endpoint to response body
	Err       error           // If set, every request fails with this error
	CallCount int             // Number of times Request was called
	Calls     []string        // Endpoints requested, in order
}

// NewMock creates a mock agent with the given responses.
func NewMock(responses map[string]Body) *Mock {
	if responses == nil {
		responses = make(map[string]Body)
	}
	return &Mock{Responses: responses}
}

// Request returns the canned response for the endpoint.
func (m *Mock) Request(ctx context.Context, method, endpoint string, params url.Values) (Body, error) {
	m.CallCount++
	m.Calls = append(m.Calls, endpoint)

	if m.Err != nil {
		return nil, m.Err
	}
	body, ok := m.Responses[endpoint]
	if !ok {
		return nil, &gotms.AgentError{Method: method, Endpoint: endpoint, Status: 404}
	}
	return body, nil
}

// Reset clears the call log.
func (m *Mock) Reset() {
	m.CallCount = 0
	m.Calls = nil
}

// Verify Mock implements gotms.Requester
var _ gotms.Requester = (*Mock)(nil)
