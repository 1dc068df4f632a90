package mockapi

import (
	"math"
	"strings"
)

type user struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Image     string `json:"image"`

	password string
}

type product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand,omitempty"`
	Tags               []string `json:"tags"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

type category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type cartItem struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Total              float64 `json:"total"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountedTotal    float64 `json:"discountedTotal"`
	Thumbnail          string  `json:"thumbnail"`
}

type cart struct {
	ID              int        `json:"id"`
	Products        []cartItem `json:"products"`
	Total           float64    `json:"total"`
	DiscountedTotal float64    `json:"discountedTotal"`
	UserID          int        `json:"userId"`
	TotalProducts   int        `json:"totalProducts"`
	TotalQuantity   int        `json:"totalQuantity"`
}

type deletedCart struct {
	cart
	IsDeleted bool   `json:"isDeleted"`
	DeletedOn string `json:"deletedOn"`
}

var users = []user{
	{
		ID: 1, FirstName: "Emily", LastName: "Johnson", Age: 28, Gender: "female",
		Email: "emily.johnson@x.dummyjson.com", Username: "emilys",
		Image:    "https://dummyjson.com/icon/emilys/128",
		password: "emilyspass",
	},
	{
		ID: 2, FirstName: "Michael", LastName: "Williams", Age: 35, Gender: "male",
		Email: "michael.williams@x.dummyjson.com", Username: "michaelw",
		Image:    "https://dummyjson.com/icon/michaelw/128",
		password: "michaelwpass",
	},
}

var products = []product{
	{
		ID: 1, Title: "Essence Mascara Lash Princess",
		Description: "A popular mascara known for its volumizing effects.",
		Category:    "beauty", Price: 9.99, DiscountPercentage: 7.17, Rating: 4.94,
		Stock: 5, Brand: "Essence", Tags: []string{"beauty", "mascara"},
		Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/1/thumbnail.png",
		Images:    []string{"https://cdn.dummyjson.com/products/images/beauty/1/1.png"},
	},
	{
		ID: 2, Title: "Eyeshadow Palette with Mirror",
		Description: "A versatile palette with a built-in mirror.",
		Category:    "beauty", Price: 19.99, DiscountPercentage: 5.5, Rating: 3.28,
		Stock: 44, Brand: "Glamour Beauty", Tags: []string{"beauty", "eyeshadow"},
		Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/2/thumbnail.png",
		Images:    []string{"https://cdn.dummyjson.com/products/images/beauty/2/1.png"},
	},
	{
		ID: 3, Title: "iPhone 9",
		Description: "An apple mobile which is nothing like apple.",
		Category:    "smartphones", Price: 549, DiscountPercentage: 12.96, Rating: 4.69,
		Stock: 94, Brand: "Apple", Tags: []string{"smartphones"},
		Thumbnail: "https://cdn.dummyjson.com/products/images/smartphones/3/thumbnail.png",
		Images:    []string{"https://cdn.dummyjson.com/products/images/smartphones/3/1.png"},
	},
	{
		ID: 4, Title: "Samsung Universe 9",
		Description: "Samsung's new variant which goes beyond Galaxy.",
		Category:    "smartphones", Price: 1249, DiscountPercentage: 15.46, Rating: 4.09,
		Stock: 36, Brand: "Samsung", Tags: []string{"smartphones"},
		Thumbnail: "https://cdn.dummyjson.com/products/images/smartphones/4/thumbnail.png",
		Images:    []string{"https://cdn.dummyjson.com/products/images/smartphones/4/1.png"},
	},
	{
		ID: 5, Title: "MacBook Pro",
		Description: "MacBook Pro 2021 with mini-LED display.",
		Category:    "laptops", Price: 1749, DiscountPercentage: 11.02, Rating: 4.57,
		Stock: 83, Brand: "Apple", Tags: []string{"laptops"},
		Thumbnail: "https://cdn.dummyjson.com/products/images/laptops/5/thumbnail.png",
		Images:    []string{"https://cdn.dummyjson.com/products/images/laptops/5/1.png"},
	},
	{
		ID: 6, Title: "Samsung Galaxy Book",
		Description: "Samsung Galaxy Book S (2020) laptop.",
		Category:    "laptops", Price: 1499, DiscountPercentage: 4.15, Rating: 4.25,
		Stock: 50, Brand: "Samsung", Tags: []string{"laptops"},
		Thumbnail: "https://cdn.dummyjson.com/products/images/laptops/6/thumbnail.png",
		Images:    []string{"https://cdn.dummyjson.com/products/images/laptops/6/1.png"},
	},
}

var categories = []category{
	{Slug: "beauty", Name: "Beauty", URL: "https://dummyjson.com/products/category/beauty"},
	{Slug: "smartphones", Name: "Smartphones", URL: "https://dummyjson.com/products/category/smartphones"},
	{Slug: "laptops", Name: "Laptops", URL: "https://dummyjson.com/products/category/laptops"},
}

// carts is built at init so the totals are always consistent with the
// product table (and discountedTotal <= total by construction).
var carts = []cart{
	buildCart(1, 1, map[int]int{1: 2, 3: 1}),
	buildCart(2, 2, map[int]int{4: 1, 5: 1, 2: 3}),
}

func findUser(id int) (user, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return user{}, false
}

func findUserByName(username string) (user, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return user{}, false
}

func findProduct(id int) (product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return product{}, false
}

func findCart(id int) (cart, bool) {
	for _, c := range carts {
		if c.ID == id {
			return c, true
		}
	}
	return cart{}, false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func buildCart(id, userID int, quantities map[int]int) cart {
	c := cart{ID: id, UserID: userID, Products: []cartItem{}}
	// Walk the product table in order so item order is deterministic.
	for _, p := range products {
		qty, ok := quantities[p.ID]
		if !ok {
			continue
		}
		total := round2(p.Price * float64(qty))
		item := cartItem{
			ID:                 p.ID,
			Title:              p.Title,
			Price:              p.Price,
			Quantity:           qty,
			Total:              total,
			DiscountPercentage: p.DiscountPercentage,
			DiscountedTotal:    round2(total * (1 - p.DiscountPercentage/100)),
			Thumbnail:          p.Thumbnail,
		}
		c.Products = append(c.Products, item)
		c.Total = round2(c.Total + item.Total)
		c.DiscountedTotal = round2(c.DiscountedTotal + item.DiscountedTotal)
		c.TotalProducts++
		c.TotalQuantity += qty
	}
	return c
}

func matchesQuery(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), strings.ToLower(q)) {
			return true
		}
	}
	return false
}
