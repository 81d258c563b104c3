package gotms

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/ZaguanLabs/gotms/cache"
)

// Endpoint identifiers double as the cache keys of the parameterless list
// operations.
const (
	EndpointLanguages           = "languages"
	EndpointProjects            = "projects"
	EndpointTranslationProjects = "translation-projects"
)

// The attribute both languages and projects use to list their associated
// translation projects.
const attrTranslationProjects = "translation_projects"

// Requester performs an authenticated request against the server and returns
// the decoded response body. agent.Agent is the production implementation.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, params url.Values) (Body, error)
}

// Client mediates access to the remote server, shielding it from repeated,
// redundant requests. Parameterless listings are cached transiently (fresh
// every run); filtered and derived results are cached persistently until
// explicitly flushed. Requester errors propagate unmodified: a failed fetch
// never writes to the cache.
type Client struct {
	agent Requester
	cache *cache.Store
	log   *zap.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithCache sets the two-tier cache store. Without one, every call goes
// upstream.
func WithCache(s *cache.Store) ClientOption {
	return func(c *Client) {
		c.cache = s
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new Client backed by the given Requester.
func NewClient(agent Requester, opts ...ClientOption) *Client {
	c := &Client{
		agent: agent,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns the underlying cache store, or nil if none is configured.
func (c *Client) Cache() *cache.Store {
	return c.cache
}

// Languages lists all languages on the server. Cached transiently under the
// endpoint identifier.
func (c *Client) Languages(ctx context.Context) ([]*Language, error) {
	bodies, err := c.listBodies(ctx, EndpointLanguages)
	if err != nil {
		return nil, err
	}
	return wrapLanguages(bodies), nil
}

// Projects lists all projects on the server. Cached transiently.
func (c *Client) Projects(ctx context.Context) ([]*Project, error) {
	bodies, err := c.listBodies(ctx, EndpointProjects)
	if err != nil {
		return nil, err
	}
	return wrapProjects(bodies), nil
}

// TranslationProjects lists all translation projects on the server. Cached
// transiently.
func (c *Client) TranslationProjects(ctx context.Context) ([]*TranslationProject, error) {
	bodies, err := c.listBodies(ctx, EndpointTranslationProjects)
	if err != nil {
		return nil, err
	}
	return wrapTranslationProjects(bodies), nil
}

// FindLanguages returns the languages matching the filter set. Cached
// persistently under the operation name plus the canonical filter rendering.
// An empty result is cached as a positive hit.
func (c *Client) FindLanguages(ctx context.Context, f Filters) ([]*Language, error) {
	bodies, err := c.findBodies(ctx, EndpointLanguages, f)
	if err != nil {
		return nil, err
	}
	return wrapLanguages(bodies), nil
}

// FindProjects returns the projects matching the filter set. Cached
// persistently.
func (c *Client) FindProjects(ctx context.Context, f Filters) ([]*Project, error) {
	bodies, err := c.findBodies(ctx, EndpointProjects, f)
	if err != nil {
		return nil, err
	}
	return wrapProjects(bodies), nil
}

// SearchTranslationProjects returns the translation projects shared by the
// selected languages and the selected projects: the intersection of the
// translation-project URIs each side lists independently. Every shared URI
// is fetched, wrapped, and the whole result cached persistently.
func (c *Client) SearchTranslationProjects(ctx context.Context, langs LanguageInput, projs ProjectInput) ([]*TranslationProject, error) {
	key := searchKey(EndpointTranslationProjects, langs, projs)

	if v, ok := c.persistentGet(key); ok {
		if bodies, ok := bodiesFromCache(v); ok {
			c.log.Debug("search served from persistent cache", zap.String("key", key))
			return wrapTranslationProjects(bodies), nil
		}
	}

	languages, err := c.resolveLanguages(ctx, langs)
	if err != nil {
		return nil, err
	}
	projects, err := c.resolveProjects(ctx, projs)
	if err != nil {
		return nil, err
	}

	shared := Intersect(languageBodies(languages), projectBodies(projects),
		attrTranslationProjects, attrTranslationProjects)

	out := make([]Body, 0, len(shared))
	for _, uri := range shared {
		tp, err := c.TranslationProject(ctx, uri)
		if err != nil {
			return nil, err
		}
		out = append(out, tp.Body)
	}

	c.persistentSet(key, out)
	return wrapTranslationProjects(out), nil
}

// TranslationProject fetches a single translation project by its endpoint
// identifier. Cached transiently per URI.
func (c *Client) TranslationProject(ctx context.Context, uri string) (*TranslationProject, error) {
	body, err := c.fetchBody(ctx, uri)
	if err != nil {
		return nil, err
	}
	return NewTranslationProject(body), nil
}

// Stores lists the stores (translation files) under a translation project.
// Each store is fetched by its URI and cached transiently.
func (c *Client) Stores(ctx context.Context, tp *TranslationProject) ([]*Store, error) {
	bodies, err := c.fetchBodies(ctx, tp.Stores())
	if err != nil {
		return nil, err
	}
	return wrapStores(bodies), nil
}

// Units lists the units within a store. Each unit is fetched by its URI and
// cached transiently.
func (c *Client) Units(ctx context.Context, s *Store) ([]*Unit, error) {
	bodies, err := c.fetchBodies(ctx, s.Units())
	if err != nil {
		return nil, err
	}
	return wrapUnits(bodies), nil
}

// listBodies implements the list-and-cache-transiently policy: fixed key
// equal to the endpoint identifier, transient tier.
func (c *Client) listBodies(ctx context.Context, endpoint string) ([]Body, error) {
	if v, ok := c.transientGet(endpoint); ok {
		if bodies, ok := bodiesFromCache(v); ok {
			return bodies, nil
		}
	}

	body, err := c.agent.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	bodies := body.Objects()
	if bodies == nil {
		bodies = []Body{}
	}
	c.transientSet(endpoint, bodies)
	return bodies, nil
}

// findBodies implements the filter-and-cache-persistently policy: the full
// listing (itself transiently cached) is filtered locally and the subset
// stored under the derived key.
func (c *Client) findBodies(ctx context.Context, endpoint string, f Filters) ([]Body, error) {
	key := OperationKey(endpoint, f)

	if v, ok := c.persistentGet(key); ok {
		if bodies, ok := bodiesFromCache(v); ok {
			return bodies, nil
		}
	}

	all, err := c.listBodies(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	matched := f.Apply(all)
	c.persistentSet(key, matched)
	return matched, nil
}

// fetchBody fetches a single resource body by endpoint URI, transiently
// cached per URI.
func (c *Client) fetchBody(ctx context.Context, uri string) (Body, error) {
	if v, ok := c.transientGet(uri); ok {
		if body, ok := bodyFromCache(v); ok {
			return body, nil
		}
	}

	body, err := c.agent.Request(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	c.transientSet(uri, body)
	return body, nil
}

func (c *Client) fetchBodies(ctx context.Context, uris []string) ([]Body, error) {
	out := make([]Body, 0, len(uris))
	for _, uri := range uris {
		body, err := c.fetchBody(ctx, uri)
		if err != nil {
			return nil, err
		}
		out = append(out, body)
	}
	return out, nil
}

// resolveLanguages materializes the language side of a search. Resolved
// inputs are used directly; criteria go through FindLanguages, which applies
// its own cache policy.
func (c *Client) resolveLanguages(ctx context.Context, in LanguageInput) ([]*Language, error) {
	if in.isResolved {
		return in.resolved, nil
	}
	return c.FindLanguages(ctx, in.criteria)
}

func (c *Client) resolveProjects(ctx context.Context, in ProjectInput) ([]*Project, error) {
	if in.isResolved {
		return in.resolved, nil
	}
	return c.FindProjects(ctx, in.criteria)
}

func (c *Client) transientGet(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.TransientGet(key)
}

func (c *Client) transientSet(key string, v any) {
	if c.cache != nil {
		c.cache.TransientSet(key, v)
	}
}

func (c *Client) persistentGet(key string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.PersistentGet(key)
}

func (c *Client) persistentSet(key string, v any) {
	if c.cache != nil {
		c.cache.PersistentSet(key, v)
	}
}

func languageBodies(langs []*Language) []Body {
	out := make([]Body, len(langs))
	for i, l := range langs {
		out[i] = l.Body
	}
	return out
}

func projectBodies(projs []*Project) []Body {
	out := make([]Body, len(projs))
	for i, p := range projs {
		out[i] = p.Body
	}
	return out
}
