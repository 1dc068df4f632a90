// Package endpoints is the catalog of DummyJSON API paths used by the test
// suite, grouped by resource domain. Entries are either fixed paths or pure
// functions from parameters to a path; none of them validate their input or
// have side effects.
package endpoints

import (
	"fmt"
	"net/url"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Health is the API's health-check resource.
func Health() string { return "/test" }

// Auth groups the authentication endpoints.
var Auth authEndpoints

// Products groups the product endpoints.
var Products productEndpoints

// Carts groups the cart endpoints.
var Carts cartEndpoints

// Users groups the user endpoints.
var Users userEndpoints

type authEndpoints struct{}

func (authEndpoints) Login() string { return "/auth/login" }
func (authEndpoints) Me() string    { return "/auth/me" }

type productEndpoints struct{}

func (productEndpoints) List(limit, skip ldvalue.OptionalInt) string {
	return "/products" + pagination(limit, skip)
}

func (productEndpoints) ByID(id int) string {
	return fmt.Sprintf("/products/%d", id)
}

func (productEndpoints) Search(query string) string {
	return "/products/search?q=" + url.QueryEscape(query)
}

func (productEndpoints) Categories() string { return "/products/categories" }

func (productEndpoints) Category(slug string) string {
	return "/products/category/" + slug
}

type cartEndpoints struct{}

func (cartEndpoints) List(limit, skip ldvalue.OptionalInt) string {
	return "/carts" + pagination(limit, skip)
}

func (cartEndpoints) ByID(id int) string {
	return fmt.Sprintf("/carts/%d", id)
}

func (cartEndpoints) ByUser(userID int) string {
	return fmt.Sprintf("/carts/user/%d", userID)
}

func (cartEndpoints) Add() string { return "/carts/add" }

type userEndpoints struct{}

func (userEndpoints) List(limit, skip ldvalue.OptionalInt) string {
	return "/users" + pagination(limit, skip)
}

func (userEndpoints) ByID(id int) string {
	return fmt.Sprintf("/users/%d", id)
}

func (userEndpoints) Search(query string) string {
	return "/users/search?q=" + url.QueryEscape(query)
}

func pagination(limit, skip ldvalue.OptionalInt) string {
	q := url.Values{}
	if limit.IsDefined() {
		q.Set("limit", strconv.Itoa(limit.IntValue()))
	}
	if skip.IsDefined() {
		q.Set("skip", strconv.Itoa(skip.IntValue()))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
