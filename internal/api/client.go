package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/clipbridge/clipbridge/internal/logging"
	"github.com/clipbridge/clipbridge/internal/session"
)

// Notifier surfaces transient user-facing messages, the terminal analog of
// the web client's toasts.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// Navigator reacts to auth state changes that demand a change of place, such
// as a rejected session token forcing the user back to login.
type Navigator interface {
	ToLogin()
}

// Options tunes the client. Zero values fall back to defaults.
type Options struct {
	HTTPClient        *http.Client
	Notifier          Notifier
	Navigator         Navigator
	RequestsPerMinute int
	Burst             int
}

// Client is the single chokepoint for backend calls. It injects the bearer
// token from the session store, self-throttles, and translates every
// failure into the typed error taxonomy.
type Client struct {
	baseURL   string
	http      *http.Client
	store     session.Store
	notifier  Notifier
	navigator Navigator
	limiter   *rate.Limiter
}

// New constructs a Client against the provided base URL. A trailing slash on
// the base URL is stripped to avoid double slashes in request paths.
func New(baseURL string, store session.Store, opts Options) *Client {
	if store == nil {
		panic("api: session store must not be nil")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	perMinute := opts.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 10
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		store:     store,
		notifier:  opts.Notifier,
		navigator: opts.Navigator,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues an authenticated JSON request. It fails with ErrAuthRequired
// before any network I/O when no session token is stored. Caller-supplied
// headers are applied after the defaults, so a caller may deliberately
// override the injected Authorization header.
func (c *Client) do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	token := c.store.Load().Token
	if token == "" {
		return ErrAuthRequired
	}
	return c.doWithToken(ctx, token, method, path, body, out, header, true)
}

// doWithToken issues a bearer request with an explicit token. reauth controls
// whether a 401 tears down local auth state; the callback flow disables it so
// a failed profile fetch cannot clear a token that was just stored.
func (c *Client) doWithToken(ctx context.Context, token, method, path string, body, out any, header http.Header, reauth bool) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for key, values := range header {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return c.roundTrip(req, out, reauth)
}

// doUnauthenticated issues a request without a bearer token, used for the
// code-exchange endpoint which runs before any session exists.
func (c *Client) doUnauthenticated(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.roundTrip(req, out, false)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RequestError{Message: "request throttled", Err: err}
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Message: "encode request body", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &RequestError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// roundTrip executes the request and applies the response precedence:
// 429, then 401, then any other non-2xx, then the decoded 2xx body.
func (c *Client) roundTrip(req *http.Request, out any, authed bool) error {
	logger := logging.FromContext(req.Context())

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("request transport failure", "method", req.Method, "path", req.URL.Path, "error", err)
		return &RequestError{Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := retryAfterSeconds(resp.Header.Get("Retry-After"))
		logger.Warn("rate limited by backend", "path", req.URL.Path, "retryAfter", retryAfter)
		if c.notifier != nil {
			c.notifier.Error("Rate limit exceeded", fmt.Sprintf("Please try again in %d seconds.", retryAfter))
		}
		return &RateLimitError{RetryAfter: retryAfter}
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		logger.Warn("session token rejected", "path", req.URL.Path)
		if err := c.store.ClearAuth(); err != nil {
			logger.Error("failed to clear rejected session", "error", err)
		}
		if c.navigator != nil {
			c.navigator.ToLogin()
		}
		return ErrAuthFailed
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "read response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := "Something went wrong"
		var payload struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil {
			if payload.Message != "" {
				message = payload.Message
			} else if payload.Detail != "" {
				message = payload.Detail
			}
		}
		logger.Warn("request failed", "path", req.URL.Path, "status", resp.StatusCode, "message", message)
		return &RequestError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func retryAfterSeconds(header string) int {
	if header == "" {
		header = "60"
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 60
	}
	return seconds
}
