package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonesrussell/spacesync/internal/domain"
	"github.com/jonesrussell/spacesync/internal/logger"
)

// DefaultTimeout bounds individual list requests when no timeout is
// configured. Deadline handling stops at the transport layer; the pipeline
// itself never imposes one.
const DefaultTimeout = 30 * time.Second

// Options configures the HTTP client for one space.
type Options struct {
	SpaceID     string
	AccessToken string
	// Host of the delivery API, with or without a scheme.
	Host        string
	Environment string
	Timeout     time.Duration
}

// HTTPClient is the http-backed implementation of Client.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  logger.Logger
}

// NewHTTPClient creates a client for the given space.
func NewHTTPClient(opts Options, log logger.Logger) (*HTTPClient, error) {
	if opts.SpaceID == "" {
		return nil, errors.New("space id is required")
	}
	if opts.AccessToken == "" {
		return nil, errors.New("access token is required")
	}
	if opts.Host == "" {
		return nil, errors.New("host is required")
	}

	host := opts.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	env := opts.Environment
	if env == "" {
		env = "master"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		baseURL: fmt.Sprintf("%s/spaces/%s/environments/%s", strings.TrimRight(host, "/"), opts.SpaceID, env),
		token:   opts.AccessToken,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}, nil
}

// envelope is the list response shape shared by every collection endpoint.
type envelope[T any] struct {
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Items []T `json:"items"`
}

// ListLocales fetches the space's locale list. The endpoint is small enough
// that it is never paged.
func (c *HTTPClient) ListLocales(ctx context.Context) ([]domain.Locale, error) {
	env, err := list[domain.Locale](ctx, c, "locales", Query{})
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// ListEntries fetches one page of entries.
func (c *HTTPClient) ListEntries(ctx context.Context, q Query) (*Page[*domain.Entry], error) {
	return listPage[*domain.Entry](ctx, c, "entries", q)
}

// ListAssets fetches one page of assets.
func (c *HTTPClient) ListAssets(ctx context.Context, q Query) (*Page[*domain.Asset], error) {
	return listPage[*domain.Asset](ctx, c, "assets", q)
}

// ListContentTypes fetches one page of content types.
func (c *HTTPClient) ListContentTypes(ctx context.Context, q Query) (*Page[*domain.ContentType], error) {
	return listPage[*domain.ContentType](ctx, c, "content_types", q)
}

func listPage[T any](ctx context.Context, c *HTTPClient, collection string, q Query) (*Page[T], error) {
	env, err := list[T](ctx, c, collection, q)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Total: env.Total, Skip: env.Skip, Limit: env.Limit, Items: env.Items}, nil
}

func list[T any](ctx context.Context, c *HTTPClient, collection string, q Query) (*envelope[T], error) {
	endpoint := c.baseURL + "/" + collection
	if params := q.Values().Encode(); params != "" {
		endpoint += "?" + params
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, doErr := c.client.Do(req)
	duration := time.Since(start)

	if doErr != nil {
		c.logger.Warn("Remote request failed",
			logger.String("collection", collection),
			logger.Duration("duration", duration),
			logger.Error(doErr),
		)
		return nil, ClassifyTransport(doErr, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("Remote returned non-OK status",
			logger.String("collection", collection),
			logger.Int("status_code", resp.StatusCode),
			logger.Duration("duration", duration),
		)
		return nil, ClassifyStatus(resp.StatusCode, endpoint)
	}

	var env envelope[T]
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return nil, fmt.Errorf("decode %s response: %w", collection, decodeErr)
	}

	c.logger.Debug("Fetched collection page",
		logger.String("collection", collection),
		logger.Int("skip", q.Skip),
		logger.Int("item_count", len(env.Items)),
		logger.Int("total", env.Total),
		logger.Duration("duration", duration),
	)

	return &env, nil
}
