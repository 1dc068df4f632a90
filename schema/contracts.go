package schema

// The contract registry: one named contract per resource shape the suite
// consumes. Shapes follow what the live DummyJSON API currently returns.

func obj(required []string, props map[string]*Schema) *Schema {
	return &Schema{Type: Object, Required: required, Properties: props}
}

func arr(items *Schema) *Schema { return &Schema{Type: Array, Items: items} }

func str() *Schema      { return &Schema{Type: String} }
func email() *Schema    { return &Schema{Type: String, Format: FormatEmail} }
func link() *Schema     { return &Schema{Type: String, Format: FormatURL} }
func dateTime() *Schema { return &Schema{Type: String, Format: FormatDateTime} }
func num() *Schema      { return &Schema{Type: Number} }
func integer() *Schema  { return &Schema{Type: Integer} }
func boolean() *Schema  { return &Schema{Type: Boolean} }

// extend returns a copy of base with extra required fields and properties.
func extend(base *Schema, required []string, props map[string]*Schema) *Schema {
	merged := &Schema{
		Type:     base.Type,
		Format:   base.Format,
		Items:    base.Items,
		Nullable: base.Nullable,
		Required: append(append([]string(nil), base.Required...), required...),
	}
	merged.Properties = make(map[string]*Schema, len(base.Properties)+len(props))
	for k, v := range base.Properties {
		merged.Properties[k] = v
	}
	for k, v := range props {
		merged.Properties[k] = v
	}
	return merged
}

// Login is the response shape of POST /auth/login. DummyJSON has shipped two
// generations of this payload (token vs accessToken); the contract targets
// the accessToken/refreshToken shape the live API returns today.
var Login = &Contract{Name: "login", Root: obj(
	[]string{"accessToken", "refreshToken", "id", "username", "email", "firstName", "lastName", "gender", "image"},
	map[string]*Schema{
		"accessToken":  str(),
		"refreshToken": str(),
		"id":           integer(),
		"username":     str(),
		"email":        email(),
		"firstName":    str(),
		"lastName":     str(),
		"gender":       str(),
		"image":        link(),
	},
)}

var productSchema = obj(
	[]string{"id", "title", "description", "category", "price", "discountPercentage", "rating", "stock", "thumbnail", "images"},
	map[string]*Schema{
		"id":                 integer(),
		"title":              str(),
		"description":        str(),
		"category":           str(),
		"price":              num(),
		"discountPercentage": num(),
		"rating":             num(),
		"stock":              integer(),
		"brand":              str(),
		"tags":               arr(str()),
		"sku":                str(),
		"weight":             num(),
		"availabilityStatus": str(),
		"thumbnail":          link(),
		"images":             arr(link()),
	},
)

// Product is the response shape of GET /products/{id}.
var Product = &Contract{Name: "product", Root: productSchema}

// ProductList is the paginated shape returned by /products, /products/search,
// and /products/category/{slug}.
var ProductList = &Contract{Name: "product list", Root: obj(
	[]string{"products", "total", "skip", "limit"},
	map[string]*Schema{
		"products": arr(productSchema),
		"total":    integer(),
		"skip":     integer(),
		"limit":    integer(),
	},
)}

// CategoryList is the response shape of GET /products/categories.
var CategoryList = &Contract{Name: "category list", Root: arr(obj(
	[]string{"slug", "name", "url"},
	map[string]*Schema{
		"slug": str(),
		"name": str(),
		"url":  link(),
	},
))}

var cartItemSchema = obj(
	[]string{"id", "title", "price", "quantity", "total", "discountPercentage", "discountedTotal"},
	map[string]*Schema{
		"id":                 integer(),
		"title":              str(),
		"price":              num(),
		"quantity":           integer(),
		"total":              num(),
		"discountPercentage": num(),
		"discountedTotal":    num(),
		"thumbnail":          link(),
	},
)

var cartSchema = obj(
	[]string{"id", "products", "total", "discountedTotal", "userId", "totalProducts", "totalQuantity"},
	map[string]*Schema{
		"id":              integer(),
		"products":        arr(cartItemSchema),
		"total":           num(),
		"discountedTotal": num(),
		"userId":          integer(),
		"totalProducts":   integer(),
		"totalQuantity":   integer(),
	},
)

// Cart is the response shape of GET /carts/{id} and of cart writes.
var Cart = &Contract{Name: "cart", Root: cartSchema}

// CartList is the paginated shape returned by /carts and /carts/user/{id}.
var CartList = &Contract{Name: "cart list", Root: obj(
	[]string{"carts", "total", "skip", "limit"},
	map[string]*Schema{
		"carts": arr(cartSchema),
		"total": integer(),
		"skip":  integer(),
		"limit": integer(),
	},
)}

// DeletedCart is the response shape of DELETE /carts/{id}: a cart plus the
// deletion markers.
var DeletedCart = &Contract{Name: "deleted cart", Root: extend(cartSchema,
	[]string{"isDeleted", "deletedOn"},
	map[string]*Schema{
		"isDeleted": boolean(),
		"deletedOn": dateTime(),
	},
)}

var userSchema = obj(
	[]string{"id", "firstName", "lastName", "gender", "email", "username", "image"},
	map[string]*Schema{
		"id":        integer(),
		"firstName": str(),
		"lastName":  str(),
		"gender":    str(),
		"email":     email(),
		"username":  str(),
		"image":     link(),
		"age":       integer(),
		"phone":     str(),
		"birthDate": str(), // not RFC 3339 on the live API, so no format constraint
	},
)

// User is the response shape of GET /users/{id} and GET /auth/me.
var User = &Contract{Name: "user", Root: userSchema}

// UserList is the paginated shape returned by /users and /users/search.
var UserList = &Contract{Name: "user list", Root: obj(
	[]string{"users", "total", "skip", "limit"},
	map[string]*Schema{
		"users": arr(userSchema),
		"total": integer(),
		"skip":  integer(),
		"limit": integer(),
	},
)}

// Error is the payload DummyJSON sends with every 4xx/5xx status.
var Error = &Contract{Name: "error", Root: obj(
	[]string{"message"},
	map[string]*Schema{"message": str()},
)}
