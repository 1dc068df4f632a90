package apitests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/dummyjson-contrib/api-contract-tests/endpoints"
	"github.com/dummyjson-contrib/api-contract-tests/schema"
)

const knownProductID = 1

// absentProductID is well past anything in the DummyJSON dataset.
const absentProductID = 99999

// DoProductTests covers the /products resource family.
func DoProductTests(t *T) {
	t.RunParallel([]Scenario{
		{"list with pagination", func(t *T) {
			resp := t.Get(endpoints.Products.List(ldvalue.NewOptionalInt(10), ldvalue.NewOptionalInt(5)))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.ProductList, resp)
			assert.LessOrEqual(t, v.GetByKey("products").Count(), 10)
			assert.Equal(t, 5, v.GetByKey("skip").IntValue())
		}},

		{"by id", func(t *T) {
			resp := t.Get(endpoints.Products.ByID(knownProductID))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.Product, resp)
			assert.Equal(t, knownProductID, v.GetByKey("id").IntValue())
			assert.GreaterOrEqual(t, v.GetByKey("price").Float64Value(), 0.0)
		}},

		{"absent id", func(t *T) {
			resp := t.Get(endpoints.Products.ByID(absentProductID))
			message := t.RequireErrorMessage(resp, http.StatusNotFound)
			assert.NotEmpty(t, message)
		}},

		{"search", func(t *T) {
			resp := t.Get(endpoints.Products.Search("apple"))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.ProductList, resp)
			assert.Equal(t, v.GetByKey("products").Count(), v.GetByKey("limit").IntValue())
		}},

		{"categories", func(t *T) {
			resp := t.Get(endpoints.Products.Categories())
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.CategoryList, resp)
			assert.Greater(t, v.Count(), 0)
		}},

		{"by category", func(t *T) {
			// Discover a real category first so the scenario does not depend
			// on a hard-coded slug surviving dataset changes.
			resp := t.Get(endpoints.Products.Categories())
			t.RequireStatus(resp, http.StatusOK)
			cats := t.ParseAs(schema.CategoryList, resp)
			require.Greater(t, cats.Count(), 0)
			slug := cats.GetByIndex(0).GetByKey("slug").StringValue()

			resp = t.Get(endpoints.Products.Category(slug))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.ProductList, resp)
			items := v.GetByKey("products")
			require.Greater(t, items.Count(), 0)
			for i := 0; i < items.Count(); i++ {
				assert.Equal(t, slug, items.GetByIndex(i).GetByKey("category").StringValue(),
					"product at index %d is outside the requested category", i)
			}
		}},

		{"read idempotence", func(t *T) {
			first := t.Get(endpoints.Products.ByID(knownProductID))
			second := t.Get(endpoints.Products.ByID(knownProductID))
			assert.Equal(t, first.Status, second.Status)
			t.ParseAs(schema.Product, first)
			t.ParseAs(schema.Product, second)
		}},
	})
}
