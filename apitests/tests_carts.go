package apitests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/dummyjson-contrib/api-contract-tests/endpoints"
	"github.com/dummyjson-contrib/api-contract-tests/schema"
)

const knownCartID = 1

const absentCartID = 99999

// requireDiscountInvariant checks the one relational invariant every cart
// must satisfy: the discounted total never exceeds the raw total.
func requireDiscountInvariant(t *T, cart ldvalue.Value) {
	total := cart.GetByKey("total").Float64Value()
	discounted := cart.GetByKey("discountedTotal").Float64Value()
	assert.LessOrEqual(t, discounted, total,
		"cart %d has discountedTotal > total", cart.GetByKey("id").IntValue())
}

// DoCartTests covers the /carts resource family, including writes.
func DoCartTests(t *T) {
	t.RunParallel([]Scenario{
		{"list", func(t *T) {
			resp := t.Get(endpoints.Carts.List(ldvalue.OptionalInt{}, ldvalue.OptionalInt{}))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.CartList, resp)
			carts := v.GetByKey("carts")
			require.Greater(t, carts.Count(), 0)
			for i := 0; i < carts.Count(); i++ {
				requireDiscountInvariant(t, carts.GetByIndex(i))
			}
		}},

		{"by id", func(t *T) {
			resp := t.Get(endpoints.Carts.ByID(knownCartID))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.Cart, resp)
			assert.Equal(t, knownCartID, v.GetByKey("id").IntValue())
			requireDiscountInvariant(t, v)
		}},

		{"absent id", func(t *T) {
			resp := t.Get(endpoints.Carts.ByID(absentCartID))
			message := t.RequireErrorMessage(resp, http.StatusNotFound)
			assert.NotEmpty(t, message)
		}},

		{"by user", func(t *T) {
			// Pick a user that actually has carts by looking at the full list.
			resp := t.Get(endpoints.Carts.List(ldvalue.NewOptionalInt(1), ldvalue.OptionalInt{}))
			t.RequireStatus(resp, http.StatusOK)
			carts := t.ParseAs(schema.CartList, resp).GetByKey("carts")
			require.Greater(t, carts.Count(), 0)
			userID := carts.GetByIndex(0).GetByKey("userId").IntValue()

			resp = t.Get(endpoints.Carts.ByUser(userID))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.CartList, resp)
			userCarts := v.GetByKey("carts")
			require.Greater(t, userCarts.Count(), 0)
			for i := 0; i < userCarts.Count(); i++ {
				assert.Equal(t, userID, userCarts.GetByIndex(i).GetByKey("userId").IntValue(),
					"cart at index %d belongs to a different user", i)
			}
		}},

		{"add", func(t *T) {
			entries := []CartProduct{
				{ID: 1, Quantity: 1},
				{ID: 2, Quantity: 3},
			}
			resp := t.Post(endpoints.Carts.Add(), AddCartRequest{UserID: 1, Products: entries})
			t.RequireStatus(resp, http.StatusCreated)
			v := t.ParseAs(schema.Cart, resp)
			assert.Equal(t, len(entries), v.GetByKey("totalProducts").IntValue())
			assert.Equal(t, 4, v.GetByKey("totalQuantity").IntValue())
			assert.Equal(t, 1, v.GetByKey("userId").IntValue())
			requireDiscountInvariant(t, v)
		}},

		{"update with merge", func(t *T) {
			resp := t.Put(endpoints.Carts.ByID(knownCartID), UpdateCartRequest{
				Merge:    true,
				Products: []CartProduct{{ID: 1, Quantity: 1}},
			})
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.Cart, resp)
			assert.Equal(t, knownCartID, v.GetByKey("id").IntValue())
			requireDiscountInvariant(t, v)
		}},

		{"delete", func(t *T) {
			resp := t.Delete(endpoints.Carts.ByID(knownCartID))
			t.RequireStatus(resp, http.StatusOK)
			v := t.ParseAs(schema.DeletedCart, resp)
			assert.True(t, v.GetByKey("isDeleted").BoolValue())
			assert.NotEmpty(t, v.GetByKey("deletedOn").StringValue())
		}},

		{"login and add to cart flow", func(t *T) {
			session := t.Login()

			resp := t.Get(endpoints.Products.List(ldvalue.NewOptionalInt(1), ldvalue.OptionalInt{}))
			t.RequireStatus(resp, http.StatusOK)
			productList := t.ParseAs(schema.ProductList, resp).GetByKey("products")
			require.Greater(t, productList.Count(), 0)
			productID := productList.GetByIndex(0).GetByKey("id").IntValue()

			resp = t.Post(endpoints.Carts.Add(), AddCartRequest{
				UserID:   session.UserID,
				Products: []CartProduct{{ID: productID, Quantity: 2}},
			})
			t.RequireStatus(resp, http.StatusCreated)
			v := t.ParseAs(schema.Cart, resp)
			assert.Equal(t, 1, v.GetByKey("totalProducts").IntValue())
			assert.Equal(t, 2, v.GetByKey("totalQuantity").IntValue())
			assert.Equal(t, session.UserID, v.GetByKey("userId").IntValue())
		}},
	})
}
