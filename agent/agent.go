// Package agent implements the authenticated HTTP transport for gotms.
package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ZaguanLabs/gotms"
)

// Body is an alias to the main package type for convenience.
type Body = gotms.Body

// allowedMethods is the agent's method allow-list. Anything else is
// rejected before a request is built.
var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Config holds configuration for the Agent.
type Config struct {
	BaseURL    string        // API root, e.g. "https://translate.example.com/api/v1/"
	Username   string        // Account name; with Token set, basic auth is used
	Token      string        // Auth token; without Username, sent as "Authorization: Token ..."
	Timeout    time.Duration // HTTP client timeout (default: 30s), ignored if HTTPClient is set
	HTTPClient *http.Client  // Custom HTTP client (optional)
	UserAgent  string        // User-Agent header (default: gotms.UserAgent())
	Logger     *zap.Logger   // Structured logger (default: no-op)
}

// Agent performs authenticated requests against the server and decodes the
// response bodies. It does no caching and no retrying; both are layered on
// top of it.
type Agent struct {
	base      *url.URL
	username  string
	token     string
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

// New creates an Agent from the given configuration.
func New(cfg Config) (*Agent, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = gotms.UserAgent()
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Agent{
		base:      base,
		username:  cfg.Username,
		token:     cfg.Token,
		client:    client,
		userAgent: ua,
		log:       log,
	}, nil
}

// Request performs an authenticated request and returns the decoded response
// body. The endpoint is either a name relative to the API root ("languages")
// or an absolute server path as carried in resource_uri attributes
// ("/api/v1/languages/3/"). HTTP statuses >= 400 become a *gotms.AgentError;
// 429 and 5xx are marked retryable.
func (a *Agent) Request(ctx context.Context, method, endpoint string, params url.Values) (Body, error) {
	if !allowedMethods[method] {
		return nil, &gotms.AgentError{
			Method:   method,
			Endpoint: endpoint,
			Cause:    gotms.ErrMethodNotAllowed,
		}
	}

	u := a.endpointURL(endpoint)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, &gotms.AgentError{Method: method, Endpoint: endpoint, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)
	a.authorize(req)

	a.log.Debug("request", zap.String("method", method), zap.String("url", u.String()))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &gotms.AgentError{
			Method:    method,
			Endpoint:  endpoint,
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &gotms.AgentError{
			Method:    method,
			Endpoint:  endpoint,
			Status:    resp.StatusCode,
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &gotms.AgentError{Method: method, Endpoint: endpoint, Cause: err, Retryable: true}
	}
	if len(data) == 0 {
		return Body{}, nil
	}

	var body Body
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &gotms.AgentError{Method: method, Endpoint: endpoint, Cause: err}
	}
	return body, nil
}

// endpointURL resolves an endpoint against the API root. Absolute server
// paths keep only the scheme and host of the base; relative names are joined
// under the base path with a trailing slash.
func (a *Agent) endpointURL(endpoint string) *url.URL {
	u := *a.base
	if strings.HasPrefix(endpoint, "/") {
		u.Path = endpoint
		return &u
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	u.Path = a.base.Path + endpoint
	return &u
}

func (a *Agent) authorize(req *http.Request) {
	switch {
	case a.username != "" && a.token != "":
		req.SetBasicAuth(a.username, a.token)
	case a.token != "":
		req.Header.Set("Authorization", "Token "+a.token)
	}
}

// Verify Agent implements gotms.Requester
var _ gotms.Requester = (*Agent)(nil)
