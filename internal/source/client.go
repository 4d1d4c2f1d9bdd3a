package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/logging"
	"github.com/rshade/commentdash/internal/source/cache"
)

// Endpoint defaults.
const (
	DefaultBaseURL   = "https://jsonplaceholder.typicode.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "commentdash"

	CommentsPath = "/comments"
	UsersPath    = "/users"
)

// maxBodyBytes bounds the size of a collection response.
const maxBodyBytes = 32 << 20

// DataSource fetches the full comment and user collections.
type DataSource interface {
	FetchComments(ctx context.Context) ([]engine.Comment, error)
	FetchUsers(ctx context.Context) ([]engine.User, error)
}

// Options configures a Client. Zero values take the package defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client

	// Cache, when enabled, serves collections fetched within its TTL.
	Cache *cache.FileStore
}

// Client is the HTTP DataSource. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	cache     *cache.FileStore
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      httpClient,
		cache:     opts.Cache,
	}
}

// BaseURL returns the endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchComments fetches the comment collection.
func (c *Client) FetchComments(ctx context.Context) ([]engine.Comment, error) {
	var comments []engine.Comment
	if err := c.fetchJSON(ctx, CommentsPath, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// FetchUsers fetches the user collection.
func (c *Client) FetchUsers(ctx context.Context) ([]engine.User, error) {
	var users []engine.User
	if err := c.fetchJSON(ctx, UsersPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) fetchJSON(ctx context.Context, path string, dst any) error {
	log := logging.FromContext(ctx)
	endpoint := c.baseURL + path

	if body, ok := c.cached(ctx, endpoint); ok {
		if err := json.Unmarshal(body, dst); err == nil {
			return nil
		}
		log.Debug().Ctx(ctx).Str("endpoint", endpoint).Msg("ignoring unreadable cache entry")
	}

	start := time.Now()
	body, err := c.get(ctx, endpoint)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("endpoint", endpoint).Msg("fetch failed")
		return err
	}

	if unmarshalErr := json.Unmarshal(body, dst); unmarshalErr != nil {
		return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("decoding response: %w", unmarshalErr)}
	}

	log.Debug().
		Ctx(ctx).
		Str("endpoint", endpoint).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("fetched collection")

	c.store(ctx, endpoint, body)
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

func (c *Client) cached(ctx context.Context, endpoint string) ([]byte, bool) {
	if c.cache == nil || !c.cache.IsEnabled() {
		return nil, false
	}

	entry, err := c.cache.Get(cache.Key(endpoint))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrExpired) {
			logging.FromContext(ctx).Warn().Ctx(ctx).Err(err).Str("endpoint", endpoint).Msg("cache read failed")
		}
		return nil, false
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("endpoint", endpoint).
		Str("age", cache.FormatDuration(entry.Age())).
		Msg("serving collection from cache")
	return entry.Data, true
}

func (c *Client) store(ctx context.Context, endpoint string, body []byte) {
	if c.cache == nil || !c.cache.IsEnabled() {
		return
	}
	if err := c.cache.Set(cache.Key(endpoint), endpoint, body); err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).Err(err).Str("endpoint", endpoint).Msg("cache write failed")
	}
}
