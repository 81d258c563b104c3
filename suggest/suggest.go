// Package suggest produces machine-translation suggestions for untranslated
// units.
package suggest

import "context"

// Request contains the parameters for a suggestion request.
type Request struct {
	Sources    []string // Source texts, one suggestion is produced per entry
	TargetLang string   // Target language code (e.g. "de_DE")
	SourceLang string   // Source language code (default: "en")
	Context    string   // Optional project context for disambiguation
}

// Provider is the interface for suggestion backends.
type Provider interface {
	Suggest(ctx context.Context, req Request) ([]string, error)
}
