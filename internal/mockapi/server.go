// Package mockapi is an in-process stand-in for the DummyJSON API, faithful
// enough for the scenario suite to run against without network access. Like
// the real thing, it serves a fixed dataset and does not persist writes.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler returns the mock API's HTTP handler.
func Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/test", handleHealth)
	r.Post("/auth/login", handleLogin)
	r.Get("/auth/me", handleMe)

	r.Get("/products", handleProducts)
	r.Get("/products/search", handleProductSearch)
	r.Get("/products/categories", handleCategories)
	r.Get("/products/category/{slug}", handleProductsByCategory)
	r.Get("/products/{id}", handleProductByID)

	r.Get("/carts", handleCarts)
	r.Post("/carts/add", handleAddCart)
	r.Get("/carts/user/{id}", handleCartsByUser)
	r.Get("/carts/{id}", handleCartByID)
	r.Put("/carts/{id}", handleUpdateCart)
	r.Delete("/carts/{id}", handleDeleteCart)

	r.Get("/users", handleUsers)
	r.Get("/users/search", handleUserSearch)
	r.Get("/users/{id}", handleUserByID)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// page applies DummyJSON's limit/skip semantics: skip defaults to 0, limit
// defaults to 30, and limit=0 means "everything". Negative values are
// clamped to 0.
func page(r *http.Request, count int) (from, to int) {
	limit := 30
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			limit = n
		}
	}
	skip := 0
	if s := r.URL.Query().Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			skip = n
		}
	}
	if limit == 0 {
		limit = count
	}
	if skip > count {
		skip = count
	}
	from = skip
	to = skip + limit
	if to > count {
		to = count
	}
	return from, to
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "method": r.Method})
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	u, ok := findUserByName(body.Username)
	if !ok || u.password != body.Password {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken":  fmt.Sprintf("mock-access-token-%d", u.ID),
		"refreshToken": fmt.Sprintf("mock-refresh-token-%d", u.ID),
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"firstName":    u.FirstName,
		"lastName":     u.LastName,
		"gender":       u.Gender,
		"image":        u.Image,
	})
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	var id int
	if _, err := fmt.Sscanf(auth, "Bearer mock-access-token-%d", &id); err != nil {
		writeError(w, http.StatusUnauthorized, "Access Token is required")
		return
	}
	u, ok := findUser(id)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func productListResponse(w http.ResponseWriter, r *http.Request, matched []product) {
	from, to := page(r, len(matched))
	slice := matched[from:to]
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": slice,
		"total":    len(matched),
		"skip":     from,
		"limit":    len(slice),
	})
}

func handleProducts(w http.ResponseWriter, r *http.Request) {
	productListResponse(w, r, products)
}

func handleProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	p, ok := findProduct(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Product with id '%d' not found", id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func handleProductSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	matched := []product{}
	for _, p := range products {
		if matchesQuery(q, p.Title, p.Description) {
			matched = append(matched, p)
		}
	}
	productListResponse(w, r, matched)
}

func handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categories)
}

func handleProductsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	matched := []product{}
	for _, p := range products {
		if p.Category == slug {
			matched = append(matched, p)
		}
	}
	productListResponse(w, r, matched)
}

func cartListResponse(w http.ResponseWriter, r *http.Request, matched []cart) {
	from, to := page(r, len(matched))
	slice := matched[from:to]
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"carts": slice,
		"total": len(matched),
		"skip":  from,
		"limit": len(slice),
	})
}

func handleCarts(w http.ResponseWriter, r *http.Request) {
	cartListResponse(w, r, carts)
}

func handleCartByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart id")
		return
	}
	c, ok := findCart(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Cart with id '%d' not found", id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func handleCartsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	matched := []cart{}
	for _, c := range carts {
		if c.UserID == userID {
			matched = append(matched, c)
		}
	}
	cartListResponse(w, r, matched)
}

type cartWriteBody struct {
	UserID   int  `json:"userId"`
	Merge    bool `json:"merge"`
	Products []struct {
		ID       int `json:"id"`
		Quantity int `json:"quantity"`
	} `json:"products"`
}

func (b cartWriteBody) quantities() map[int]int {
	q := map[int]int{}
	for _, entry := range b.Products {
		q[entry.ID] += entry.Quantity
	}
	return q
}

func handleAddCart(w http.ResponseWriter, r *http.Request) {
	var body cartWriteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Writes are not persisted; the response reflects what the cart would be.
	writeJSON(w, http.StatusCreated, buildCart(len(carts)+51, body.UserID, body.quantities()))
}

func handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart id")
		return
	}
	existing, ok := findCart(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Cart with id '%d' not found", id))
		return
	}
	var body cartWriteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	quantities := body.quantities()
	if body.Merge {
		for _, item := range existing.Products {
			quantities[item.ID] += item.Quantity
		}
	}
	writeJSON(w, http.StatusOK, buildCart(existing.ID, existing.UserID, quantities))
}

func handleDeleteCart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart id")
		return
	}
	c, ok := findCart(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Cart with id '%d' not found", id))
		return
	}
	writeJSON(w, http.StatusOK, deletedCart{
		cart:      c,
		IsDeleted: true,
		DeletedOn: time.Now().UTC().Format(time.RFC3339),
	})
}

func userListResponse(w http.ResponseWriter, r *http.Request, matched []user) {
	from, to := page(r, len(matched))
	slice := matched[from:to]
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": slice,
		"total": len(matched),
		"skip":  from,
		"limit": len(slice),
	})
}

func handleUsers(w http.ResponseWriter, r *http.Request) {
	userListResponse(w, r, users)
}

func handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	u, ok := findUser(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("User with id '%d' not found", id))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func handleUserSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	matched := []user{}
	for _, u := range users {
		if matchesQuery(q, u.FirstName, u.LastName, u.Username) {
			matched = append(matched, u)
		}
	}
	userListResponse(w, r, matched)
}
