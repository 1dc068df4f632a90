package apitests

import (
	"net/http"

	"github.com/stretchr/testify/assert"

	"github.com/dummyjson-contrib/api-contract-tests/endpoints"
	"github.com/dummyjson-contrib/api-contract-tests/schema"
)

// DoAuthTests covers POST /auth/login and GET /auth/me.
func DoAuthTests(t *T) {
	t.RunParallel([]Scenario{
		{"valid credentials", func(t *T) {
			resp := t.Post(endpoints.Auth.Login(), LoginRequest{
				Username: t.opts.Credentials.Username,
				Password: t.opts.Credentials.Password,
			})
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.Login, resp)
			assert.Equal(t, t.opts.Credentials.Username, v.GetByKey("username").StringValue())
			assert.NotEmpty(t, v.GetByKey("accessToken").StringValue())
			assert.NotEmpty(t, v.GetByKey("refreshToken").StringValue())
		}},

		{"wrong password", func(t *T) {
			resp := t.Post(endpoints.Auth.Login(), LoginRequest{
				Username: t.opts.Credentials.Username,
				Password: "definitely-not-the-password",
			})
			message := t.RequireErrorMessage(resp, http.StatusBadRequest)
			assert.NotEmpty(t, message)
		}},

		{"missing password field", func(t *T) {
			resp := t.Post(endpoints.Auth.Login(), map[string]string{
				"username": t.opts.Credentials.Username,
			})
			message := t.RequireErrorMessage(resp, http.StatusBadRequest)
			assert.NotEmpty(t, message)
		}},

		{"current user with token", func(t *T) {
			session := t.Login()
			authed := t.AuthenticatedClient(session.Token)

			resp := t.GetWith(authed, endpoints.Auth.Me())
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.User, resp)
			assert.Equal(t, session.Username, v.GetByKey("username").StringValue())
			assert.Equal(t, session.UserID, v.GetByKey("id").IntValue())
		}},

		{"current user without token", func(t *T) {
			resp := t.Get(endpoints.Auth.Me())
			message := t.RequireErrorMessage(resp, http.StatusUnauthorized)
			assert.NotEmpty(t, message)
		}},
	})
}
