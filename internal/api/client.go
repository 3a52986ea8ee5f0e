package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	app_logger "github.com/abisalde/povertyline-client/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 64 << 10
	RequestIDHeader = "X-Request-Id"
)

// TokenSource yields the bearer token for authenticated calls. An empty
// token means the call goes out anonymously.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// UnauthorizedHandler runs whenever a request that carried a bearer token
// comes back 401.
type UnauthorizedHandler func(ctx context.Context)

// Client is the shared transport behind every adapter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit caps outbound requests. rps <= 0 disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, customErrors.ErrMissingBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// OnUnauthorized installs the session-invalidation hook.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// anonymous requests never carry the bearer token.
	anonymous bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return customErrors.Transport(fmt.Errorf("rate limiter: %w", err))
		}
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return customErrors.InternalServerError("failed to marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return customErrors.Transport(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	ctx = app_logger.WithRequestID(ctx, requestID)

	bearer := ""
	if !r.anonymous && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return customErrors.Transport(fmt.Errorf("failed to read session token: %w", err))
		}
		bearer = token
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	app_logger.LogRequest(ctx, r.method, r.path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		app_logger.LogError(ctx, r.method+" "+r.path, err)
		return customErrors.Transport(err)
	}
	defer resp.Body.Close()

	app_logger.LogResponse(ctx, r.method, r.path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && bearer != "" {
			c.unauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &customErrors.APIError{
			Type:   customErrors.ErrorTypeInternalServerError,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h(ctx)
	}
}

func decodeError(resp *http.Response) *customErrors.APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body model.ErrorResponse
	message := ""
	if err := json.Unmarshal(data, &body); err == nil {
		message = body.Error
		if message == "" {
			message = body.Message
		}
	}
	return customErrors.FromStatus(resp.StatusCode, message)
}

func missingField(name string) error {
	return &customErrors.APIError{
		Type:   customErrors.ErrorTypeInternalServerError,
		Status: http.StatusOK,
		Err:    fmt.Errorf("response is missing %s", name),
	}
}
