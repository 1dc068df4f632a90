package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(parts ...string) TestID { return TestID{Path: parts} }

func TestEmptyFiltersRunEverything(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(id("auth", "valid credentials")))
}

func TestMustMatchFilter(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^carts/"))

	assert.True(t, filters.AsFilter(id("carts", "add")))
	assert.False(t, filters.AsFilter(id("products", "by id")))
}

func TestMustNotMatchFilter(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("idempotence"))

	assert.True(t, filters.AsFilter(id("products", "by id")))
	assert.False(t, filters.AsFilter(id("products", "read idempotence")))
}

func TestFiltersCombine(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^products/"))
	require.NoError(t, filters.MustNotMatch.Set("search"))

	assert.True(t, filters.AsFilter(id("products", "by id")))
	assert.False(t, filters.AsFilter(id("products", "search")))
	assert.False(t, filters.AsFilter(id("users", "by id")))
}

func TestMultiplePatternsAreOredTogether(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^auth/"))
	require.NoError(t, filters.MustMatch.Set("^carts/"))

	assert.True(t, filters.AsFilter(id("auth", "valid credentials")))
	assert.True(t, filters.AsFilter(id("carts", "add")))
	assert.False(t, filters.AsFilter(id("users", "by id")))
	assert.Equal(t, `"^auth/" or "^carts/"`, filters.MustMatch.String())
}

func TestInvalidPatternIsRejected(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("(unclosed"))
}
