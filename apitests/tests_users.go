package apitests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/dummyjson-contrib/api-contract-tests/endpoints"
	"github.com/dummyjson-contrib/api-contract-tests/schema"
)

const knownUserID = 1

const absentUserID = 99999

// DoUserTests covers the /users resource family.
func DoUserTests(t *T) {
	t.RunParallel([]Scenario{
		{"by id", func(t *T) {
			resp := t.Get(endpoints.Users.ByID(knownUserID))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.User, resp)
			assert.Equal(t, knownUserID, v.GetByKey("id").IntValue())
		}},

		{"absent id", func(t *T) {
			resp := t.Get(endpoints.Users.ByID(absentUserID))
			message := t.RequireErrorMessage(resp, http.StatusNotFound)
			assert.NotEmpty(t, message)
		}},

		{"list with pagination", func(t *T) {
			resp := t.Get(endpoints.Users.List(ldvalue.NewOptionalInt(5), ldvalue.OptionalInt{}))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.UserList, resp)
			assert.LessOrEqual(t, v.GetByKey("users").Count(), 5)
		}},

		{"search", func(t *T) {
			// Find a real first name to search for so the scenario does not
			// depend on the dataset containing a particular person.
			resp := t.Get(endpoints.Users.List(ldvalue.NewOptionalInt(1), ldvalue.OptionalInt{}))
			t.RequireStatus(resp, http.StatusOK)
			userList := t.ParseAs(schema.UserList, resp).GetByKey("users")
			require.Greater(t, userList.Count(), 0)
			firstName := userList.GetByIndex(0).GetByKey("firstName").StringValue()

			resp = t.Get(endpoints.Users.Search(firstName))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.UserList, resp)
			assert.Greater(t, v.GetByKey("users").Count(), 0)
		}},
	})
}
