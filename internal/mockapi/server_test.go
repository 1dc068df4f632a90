package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getProductList(t *testing.T, url string) map[string]json.RawMessage {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func productCount(t *testing.T, body map[string]json.RawMessage) int {
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(body["products"], &items))
	return len(items)
}

func TestPaginationDefaultsAndClamping(t *testing.T) {
	server := httptest.NewServer(Handler())
	defer server.Close()

	t.Run("no parameters returns everything under the default limit", func(t *testing.T) {
		body := getProductList(t, server.URL+"/products")
		assert.Equal(t, len(products), productCount(t, body))
	})

	t.Run("skip past the end returns an empty page", func(t *testing.T) {
		body := getProductList(t, server.URL+"/products?skip=100")
		assert.Equal(t, 0, productCount(t, body))
	})

	t.Run("negative limit and skip fall back to the defaults", func(t *testing.T) {
		body := getProductList(t, server.URL+"/products?limit=-5&skip=-2")
		assert.Equal(t, len(products), productCount(t, body))
		assert.Equal(t, json.RawMessage("0"), body["skip"])
	})
}
