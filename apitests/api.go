// Package apitests contains the contract-test scenarios for the DummyJSON
// API, and the T type they run against.
package apitests

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/dummyjson-contrib/api-contract-tests/client"
	"github.com/dummyjson-contrib/api-contract-tests/endpoints"
	"github.com/dummyjson-contrib/api-contract-tests/framework"
	"github.com/dummyjson-contrib/api-contract-tests/schema"
)

const maxBodyInFailureMessage = 500

// SuiteOpts configures a run of the scenario suite.
type SuiteOpts struct {
	ClientConfig client.Config
	Credentials  Credentials
	Workers      int
}

// Credentials is the account the login scenarios authenticate as.
type Credentials struct {
	Username string
	Password string
}

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Username      string              `json:"username,omitempty"`
	Password      string              `json:"password,omitempty"`
	ExpiresInMins ldvalue.OptionalInt `json:"expiresInMins"` // marshals as null when unset
}

// CartProduct is one product entry in a cart write.
type CartProduct struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// AddCartRequest is the POST /carts/add payload.
type AddCartRequest struct {
	UserID   int           `json:"userId"`
	Products []CartProduct `json:"products"`
}

// UpdateCartRequest is the PUT /carts/{id} payload.
type UpdateCartRequest struct {
	Merge    bool          `json:"merge"`
	Products []CartProduct `json:"products"`
}

// Session is the result of a successful login.
type Session struct {
	Token    string
	UserID   int
	Username string
}

// T represents a test or subtest in the scenario suite.
//
// It implements the same basic functionality as Go's testing.T, but outside
// the Go test runner, with extra features from the framework package such as
// per-test debug logging. To make assertions, use the assert and require
// packages with the *T as if it were a *testing.T.
//
// Every T owns the clients it creates; they are closed automatically when
// the scenario ends, and are never shared with concurrently running
// scenarios.
type T struct {
	context *framework.Context
	opts    *SuiteOpts

	defaultClient *client.Client
	clients       []*client.Client
}

func newTestScope(c *framework.Context, opts *SuiteOpts) *T {
	return &T{context: c, opts: opts}
}

func (t *T) close() {
	for _, c := range t.clients {
		c.Close()
	}
	t.clients = nil
	t.defaultClient = nil
}

// Errorf is called by assertions to record a test failure. It does not cause
// an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and exit
// immediately. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Skip marks the test as skipped with an explanation and exits immediately.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs debug output for the test; it is shown by the test logger when
// the test finishes, depending on its settings.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Run runs a subtest with its own scope: clients created inside it are
// closed when it ends.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		t1 := newTestScope(c, t.opts)
		defer t1.close()
		action(t1)
	})
}

// Scenario pairs a name with a scenario body, for RunParallel.
type Scenario struct {
	Name   string
	Action func(*T)
}

// RunParallel runs independent scenarios across the suite's worker pool.
// Each scenario gets its own scope and clients.
func (t *T) RunParallel(scenarios []Scenario) {
	tests := make([]framework.NamedTest, 0, len(scenarios))
	for _, s := range scenarios {
		action := s.Action
		tests = append(tests, framework.NamedTest{Name: s.Name, Action: func(c *framework.Context) {
			t1 := newTestScope(c, t.opts)
			defer t1.close()
			action(t1)
		}})
	}
	t.context.RunParallel(t.opts.Workers, tests)
}

// Client returns the scenario's plain client, creating it on first use.
func (t *T) Client() *client.Client {
	if t.defaultClient == nil {
		t.defaultClient = client.New(t.opts.ClientConfig)
		t.clients = append(t.clients, t.defaultClient)
	}
	return t.defaultClient
}

// AuthenticatedClient returns a new client that sends the given bearer token
// on every request.
func (t *T) AuthenticatedClient(token string) *client.Client {
	c := client.NewAuthenticated(token, t.opts.ClientConfig)
	t.clients = append(t.clients, c)
	return c
}

// Get issues a GET with the scenario's plain client, failing the scenario on
// any transport error.
func (t *T) Get(path string) *client.Response {
	return t.GetWith(t.Client(), path)
}

// GetWith is Get using a specific client (e.g. an authenticated one).
func (t *T) GetWith(c *client.Client, path string) *client.Response {
	resp, err := c.Get(context.Background(), path)
	require.NoError(t, err)
	t.Debug("GET %s -> %d", path, resp.Status)
	return resp
}

// Post issues a POST with body marshaled as JSON, failing the scenario on
// any transport error.
func (t *T) Post(path string, body interface{}) *client.Response {
	resp, err := t.Client().Post(context.Background(), path, body)
	require.NoError(t, err)
	t.Debug("POST %s -> %d", path, resp.Status)
	return resp
}

// Put issues a PUT with body marshaled as JSON.
func (t *T) Put(path string, body interface{}) *client.Response {
	resp, err := t.Client().Put(context.Background(), path, body)
	require.NoError(t, err)
	t.Debug("PUT %s -> %d", path, resp.Status)
	return resp
}

// Delete issues a DELETE.
func (t *T) Delete(path string) *client.Response {
	resp, err := t.Client().Delete(context.Background(), path)
	require.NoError(t, err)
	t.Debug("DELETE %s -> %d", path, resp.Status)
	return resp
}

// RequireStatus fails the scenario immediately unless the response has the
// expected status, quoting the body so the mismatch can be diagnosed.
func (t *T) RequireStatus(resp *client.Response, expected int) {
	if resp.Status != expected {
		require.Fail(t, "unexpected response status",
			"expected %d, got %d; body: %s", expected, resp.Status, truncate(resp.Body))
	}
}

// ParseAs validates the response body against a contract and returns the
// decoded value, failing the scenario immediately on any violation.
func (t *T) ParseAs(contract *schema.Contract, resp *client.Response) ldvalue.Value {
	v, err := contract.Parse(resp.Body)
	require.NoError(t, err)
	return v
}

// RequireErrorMessage asserts that resp carries the expected error status
// and the standard {message} error payload, returning the message.
func (t *T) RequireErrorMessage(resp *client.Response, expectedStatus int) string {
	t.RequireStatus(resp, expectedStatus)
	v := t.ParseAs(schema.Error, resp)
	return v.GetByKey("message").StringValue()
}

// Login authenticates with the suite's configured credentials and returns
// the bearer token and user identity for follow-up calls.
func (t *T) Login() Session {
	resp := t.Post(endpoints.Auth.Login(), LoginRequest{
		Username: t.opts.Credentials.Username,
		Password: t.opts.Credentials.Password,
	})
	t.RequireStatus(resp, http.StatusOK)
	v := t.ParseAs(schema.Login, resp)
	return Session{
		Token:    v.GetByKey("accessToken").StringValue(),
		UserID:   v.GetByKey("id").IntValue(),
		Username: v.GetByKey("username").StringValue(),
	}
}

func truncate(body []byte) string {
	if len(body) > maxBodyInFailureMessage {
		return string(body[:maxBodyInFailureMessage]) + "..."
	}
	return string(body)
}
