// Package api is the REST collaborator: shop-scoped list endpoints, the
// notification read endpoints and shift closing.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/datetime"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/normalize"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/pagecache"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/session"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/version"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 15 * time.Second
	// DefaultFanout is the number of concurrent product-unit requests.
	DefaultFanout = 4

	// RequestIDHeader carries a fresh uuid on every request.
	RequestIDHeader = "X-Request-Id"

	maxBodySize   = 8 << 20
	unitsPageSize = 100
)

// Client calls the shop API on behalf of the saved session.
type Client struct {
	base      *url.URL
	sessions  session.Store
	http      *http.Client
	timeout   time.Duration
	logger    logging.Logger
	userAgent string
	codec     datetime.Codec
	fanout    int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCodec sets the codec used to render server timestamps.
func WithCodec(codec datetime.Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithFanout limits concurrent product-unit requests.
func WithFanout(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.fanout = n
		}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, sessions session.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if sessions == nil {
		return nil, fmt.Errorf("api client: %w", domain.ErrSessionMissing)
	}
	c := &Client{
		base:      u,
		sessions:  sessions,
		http:      &http.Client{},
		timeout:   DefaultTimeout,
		logger:    logging.NewNoop(),
		userAgent: version.UserAgent(),
		codec:     datetime.New(nil),
		fanout:    DefaultFanout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()
	return u.String()
}

// do sends one request scoped to the session's shop. GET responses must be
// valid JSON.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	sess, err := c.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("ShopId", strconv.FormatInt(sess.ShopID, 10))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w: %w", method, path, domain.ErrNetwork, err)
	}
	log.Debug("response", "status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: HTTP %d: %w", method, path, resp.StatusCode, domain.ErrNetwork)
	}
	if method == http.MethodGet && !normalize.Valid(body) {
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrMalformedPayload)
	}
	return body, nil
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

func listPage[T domain.Item](ctx context.Context, c *Client, path string, q url.Values, page int, decode func(gjson.Result) (T, bool)) (pagecache.Page[T], error) {
	body, err := c.do(ctx, http.MethodGet, path, q)
	if err != nil {
		return pagecache.Page[T]{}, err
	}
	meta := normalize.PageInfo(body, page)
	return pagecache.Page[T]{
		Items:      normalize.Decode(body, decode),
		PageNumber: meta.PageNumber,
		TotalPages: meta.TotalPages,
	}, nil
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}
