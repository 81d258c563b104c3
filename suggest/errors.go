package suggest

import "fmt"

// ProviderError indicates a suggestion backend failure (API error, rate
// limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("suggest provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("suggest provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the backend returned a different number of
// suggestions than sources requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("suggestion count mismatch: expected %d, got %d", e.Expected, e.Got)
}
