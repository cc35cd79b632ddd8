package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/CityReport/internal/logger"
)

const (
	// DefaultTimeout is the client-side deadline for one run
	DefaultTimeout = 1080 * time.Second

	// RequestIDHeader carries a per-request id for server-side correlation
	RequestIDHeader = "X-Request-ID"

	// maxBodyBytes bounds how much of a response is read
	maxBodyBytes = 32 << 20
)

// Client issues analysis requests against one endpoint. It never retries:
// every failure is terminal for the request that produced it.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	log        *logger.Logger
	requestID  func() string
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the client-side deadline. Non-positive values disable it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the diagnostics logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l.WithComponent("client") }
}

// NewClient creates a client for the given absolute endpoint URL
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}

	c := &Client{
		endpoint: u,
		// no http.Client timeout: the deadline lives on the request context
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		log:        logger.Discard(),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the analysis endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Timeout returns the configured client-side deadline
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Run posts {"city": city} and returns the normalized result. The deadline
// and the network call race on one context; whichever finishes first wins.
func (c *Client) Run(ctx context.Context, city string) (*Result, error) {
	req, err := NewRequest(city)
	if err != nil {
		return nil, err
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := c.requestID()
	start := time.Now()
	c.log.DebugWithFields("posting analysis request", []logger.Field{
		logger.F("city", req.City),
		logger.F("request_id", requestID),
		logger.F("endpoint", c.endpoint.String()),
	})

	status, body, err := c.post(runCtx, req, requestID)
	if err != nil {
		err = classify(runCtx, err)
		c.log.WarnWithFields("analysis request failed", []logger.Field{
			logger.F("request_id", requestID),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		})
		return nil, err
	}

	c.log.DebugWithFields("analysis response received", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("status", status.code),
		logger.F("bytes", len(body)),
		logger.Duration(time.Since(start)),
	})

	if status.code < 200 || status.code > 299 {
		return nil, httpError(status, body)
	}

	return Normalize(body)
}

type responseStatus struct {
	code int
	line string
}

func (c *Client) post(ctx context.Context, req *Request, requestID string) (responseStatus, []byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return responseStatus{}, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return responseStatus{}, nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return responseStatus{}, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return responseStatus{}, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return responseStatus{code: resp.StatusCode, line: resp.Status}, body, nil
}

// classify maps a transport failure onto the error taxonomy
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return newTimeoutError(err)
	case errors.Is(ctx.Err(), context.Canceled):
		return newCanceledError(err)
	default:
		return newNetworkError("could not reach the analysis server", err)
	}
}

// httpError builds the error for a non-2xx response from the server's
// detail field, falling back to the status code and reason phrase
func httpError(status responseStatus, body []byte) error {
	if detail, ok := errorDetail(body); ok {
		return NewHTTPError(status.code, detail)
	}
	return NewHTTPError(status.code, fmt.Sprintf("server error (HTTP %d): %s", status.code, reasonPhrase(status)))
}

func reasonPhrase(status responseStatus) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status.line, strconv.Itoa(status.code)))
	if reason == "" {
		reason = http.StatusText(status.code)
	}
	return reason
}
