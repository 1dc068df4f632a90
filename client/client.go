// Package client issues HTTP requests against the API under test. Each
// scenario creates its own Client (plain or bearer-authenticated), uses its
// verb methods, and closes it when the scenario ends; a live Client must not
// be shared across concurrently running scenarios.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dummyjson-contrib/api-contract-tests/endpoints"
)

// DefaultBaseURL is the public DummyJSON host, used when neither
// Config.BaseURL nor the API_BASE_URL environment variable is set.
const DefaultBaseURL = "https://dummyjson.com"

// BaseURLEnvVar overrides the default target host for every client.
const BaseURLEnvVar = "API_BASE_URL"

const defaultTimeout = time.Second * 10

// Config describes how a Client talks to the target API.
type Config struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration

	// RequestsPerSecond caps the client's request rate so a large suite run
	// stays polite to the shared public mock. Zero means no cap.
	RequestsPerSecond float64

	// Limiter, when set, is used instead of a per-client limiter built from
	// RequestsPerSecond. Passing one Limiter to every client keeps the cap
	// suite-wide no matter how many scenarios run concurrently.
	Limiter *rate.Limiter
}

// EffectiveBaseURL resolves the base URL a client built from this Config
// will target: Config.BaseURL if set, else the API_BASE_URL environment
// variable, else DefaultBaseURL.
func (c Config) EffectiveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	if env := os.Getenv(BaseURLEnvVar); env != "" {
		return strings.TrimSuffix(env, "/")
	}
	return DefaultBaseURL
}

// Response is returned by the verb methods for any HTTP response regardless
// of status code. The body has already been fully read.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Client issues requests against a single base URL with a fixed set of
// default headers.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	limiter    *rate.Limiter
	runID      string
}

// New creates an unauthenticated Client. The caller must call Close when
// done with it.
func New(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	headers := make(map[string]string, len(config.Headers))
	for k, v := range config.Headers {
		headers[k] = v
	}
	limiter := config.Limiter
	if limiter == nil && config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		baseURL: config.EffectiveBaseURL(),
		headers: headers,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		limiter: limiter,
		runID:   uuid.NewString(),
	}
}

// NewAuthenticated creates a Client that sends the given bearer token in the
// Authorization header of every request.
func NewAuthenticated(token string, config Config) *Client {
	c := New(config)
	c.headers["Authorization"] = "Bearer " + token
	return c
}

// BaseURL returns the base URL the client was bound to at creation.
func (c *Client) BaseURL() string { return c.baseURL }

// RunID returns the correlation id the client attaches to every request as
// the X-Test-Run-Id header.
func (c *Client) RunID() string { return c.runID }

// Get issues a GET request for path (which must start with "/").
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with body marshaled as JSON. A nil body sends
// no payload.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with body marshaled as JSON.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request for path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Close releases the client's pooled connections. After Close the client
// must not be used again.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s %s request body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: method, URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-Run-Id", c.runID)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &Response{Status: resp.StatusCode, Headers: resp.Header, Body: data}, nil
}

// Logger is the minimal logging interface WaitForService reports through.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// WaitForService polls the target's health resource (GET /test) until it
// responds with a 200 or the timeout elapses. It is called once at harness
// startup so an unreachable target fails fast with one clear message instead
// of a wall of scenario failures.
func WaitForService(config Config, timeout time.Duration, logger Logger) error {
	if logger == nil {
		logger = nullLogger{}
	}
	c := New(config)
	defer c.Close()

	deadline := time.Now().Add(timeout)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		resp, err := c.Get(ctx, endpoints.Health())
		cancel()
		if err == nil && resp.Status == http.StatusOK {
			logger.Printf("API at %s is responding", c.baseURL)
			return nil
		}
		if !time.Now().Before(deadline) {
			if err == nil {
				err = fmt.Errorf("status code %d", resp.Status)
			}
			return fmt.Errorf("API at %s did not respond within %s (last result: %s)", c.baseURL, timeout, err)
		}
		logger.Printf("API at %s not responding yet, retrying", c.baseURL)
		time.Sleep(time.Millisecond * 100)
	}
}
