package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okJSONHandler() http.Handler {
	return httphelpers.HandlerWithJSONResponse(map[string]string{"status": "ok"}, nil)
}

func TestVerbMethodsSendExpectedRequests(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(okJSONHandler())
	server := httptest.NewServer(handler)
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	defer c.Close()
	ctx := context.Background()

	resp, err := c.Get(ctx, "/products/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	r := <-requests
	assert.Equal(t, "GET", r.Request.Method)
	assert.Equal(t, "/products/1", r.Request.URL.Path)
	assert.Empty(t, r.Body)

	_, err = c.Post(ctx, "/carts/add", map[string]int{"userId": 1})
	require.NoError(t, err)
	r = <-requests
	assert.Equal(t, "POST", r.Request.Method)
	assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"userId":1}`, string(r.Body))

	_, err = c.Put(ctx, "/carts/1", map[string]bool{"merge": true})
	require.NoError(t, err)
	r = <-requests
	assert.Equal(t, "PUT", r.Request.Method)
	assert.JSONEq(t, `{"merge":true}`, string(r.Body))

	_, err = c.Delete(ctx, "/carts/1")
	require.NoError(t, err)
	r = <-requests
	assert.Equal(t, "DELETE", r.Request.Method)
	assert.Equal(t, "/carts/1", r.Request.URL.Path)
}

func TestResponseBodyIsFullyRead(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithJSONResponse(
		map[string]interface{}{"id": 7, "title": "thing"}, nil))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	defer c.Close()

	resp, err := c.Get(context.Background(), "/products/7")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body, &decoded))
	assert.Equal(t, float64(7), decoded["id"])
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
}

func TestDefaultAndConfiguredHeaders(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(okJSONHandler())
	server := httptest.NewServer(handler)
	defer server.Close()

	c := New(Config{
		BaseURL: server.URL,
		Headers: map[string]string{"X-Suite-Name": "contract-tests"},
	})
	defer c.Close()

	_, err := c.Get(context.Background(), "/test")
	require.NoError(t, err)
	first := <-requests
	assert.Equal(t, "application/json", first.Request.Header.Get("Accept"))
	assert.Equal(t, "contract-tests", first.Request.Header.Get("X-Suite-Name"))

	runID := first.Request.Header.Get("X-Test-Run-Id")
	require.NotEmpty(t, runID)
	assert.Equal(t, c.RunID(), runID)

	// The correlation id is stable across requests from the same client.
	_, err = c.Get(context.Background(), "/test")
	require.NoError(t, err)
	second := <-requests
	assert.Equal(t, runID, second.Request.Header.Get("X-Test-Run-Id"))
}

func TestAuthenticatedClientSendsBearerToken(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(okJSONHandler())
	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewAuthenticated("my-token", Config{BaseURL: server.URL})
	defer c.Close()

	_, err := c.Get(context.Background(), "/auth/me")
	require.NoError(t, err)
	r := <-requests
	assert.Equal(t, "Bearer my-token", r.Request.Header.Get("Authorization"))
}

func TestErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(http.StatusNotFound))
	defer server.Close()

	c := New(Config{BaseURL: server.URL})
	defer c.Close()

	resp, err := c.Get(context.Background(), "/products/99999")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, IsTransportError(err))
}

func TestConnectionFailureIsATransportError(t *testing.T) {
	server := httptest.NewServer(okJSONHandler())
	c := New(Config{BaseURL: server.URL})
	defer c.Close()
	server.Close()

	resp, err := c.Get(context.Background(), "/test")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsTransportError(err))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "GET", te.Method)
	assert.Contains(t, te.URL, "/test")
}

func TestTimeoutIsATransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond * 500)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Timeout: time.Millisecond * 50})
	defer c.Close()

	_, err := c.Get(context.Background(), "/test")
	assert.True(t, IsTransportError(err))
}

func TestEnvironmentVariableOverridesBaseURL(t *testing.T) {
	server := httptest.NewServer(okJSONHandler())
	defer server.Close()
	t.Setenv(BaseURLEnvVar, server.URL)

	c := New(Config{})
	defer c.Close()
	assert.Equal(t, server.URL, c.BaseURL())

	resp, err := c.Get(context.Background(), "/test")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestExplicitBaseURLWinsOverEnvironment(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "http://localhost:1")
	assert.Equal(t, "http://example.com", Config{BaseURL: "http://example.com/"}.EffectiveBaseURL())
}

func TestDefaultBaseURL(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "")
	assert.Equal(t, DefaultBaseURL, Config{}.EffectiveBaseURL())
}

func TestRateLimiterPacesRequests(t *testing.T) {
	server := httptest.NewServer(okJSONHandler())
	defer server.Close()

	c := New(Config{BaseURL: server.URL, RequestsPerSecond: 50})
	defer c.Close()

	start := time.Now()
	for i := 0; i < 4; i++ {
		_, err := c.Get(context.Background(), "/test")
		require.NoError(t, err)
	}
	// 50 rps with burst 1 spaces requests 20ms apart, so four requests need
	// at least three intervals.
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond*45)
}

func TestRateLimiterCanBeSharedAcrossClients(t *testing.T) {
	server := httptest.NewServer(okJSONHandler())
	defer server.Close()

	config := Config{
		BaseURL: server.URL,
		Limiter: rate.NewLimiter(50, 1),
	}
	c1 := New(config)
	defer c1.Close()
	c2 := New(config)
	defer c2.Close()

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := c1.Get(context.Background(), "/test")
		require.NoError(t, err)
		_, err = c2.Get(context.Background(), "/test")
		require.NoError(t, err)
	}
	// Four requests through one limiter pace the same as from one client.
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond*45)
}

func TestWaitForService(t *testing.T) {
	t.Run("succeeds once the service responds", func(t *testing.T) {
		server := httptest.NewServer(okJSONHandler())
		defer server.Close()
		require.NoError(t, WaitForService(Config{BaseURL: server.URL}, time.Second, nil))
	})

	t.Run("fails after the timeout", func(t *testing.T) {
		server := httptest.NewServer(httphelpers.HandlerWithStatus(http.StatusServiceUnavailable))
		defer server.Close()
		err := WaitForService(Config{BaseURL: server.URL}, time.Millisecond*200, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not respond")
	})
}
