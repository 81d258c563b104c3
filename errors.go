package gotms

import (
	"errors"
	"fmt"
)

// ErrMethodNotAllowed is returned by the agent when a request uses an HTTP
// method outside its allow-list.
var ErrMethodNotAllowed = errors.New("method not allowed")

// AgentError indicates a transport failure (HTTP error, decode failure,
// disallowed method). It propagates unmodified through the client: a failed
// fetch never writes to the cache and is never translated.
type AgentError struct {
	Method    string
	Endpoint  string
	Status    int // HTTP status code, 0 if the request never completed
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *AgentError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("agent error: %s %s: status %d", e.Method, e.Endpoint, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("agent error: %s %s: %v", e.Method, e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("agent error: %s %s", e.Method, e.Endpoint)
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return agentErr.Retryable
	}

	return false
}
