package models

// Product is the storefront's view of a catalog item.
type Product struct {
	Identity
	SKU      string   `json:"sku,omitempty"`
	Name     string   `json:"name,omitempty"`
	Category Ref      `json:"category"`
	Brand    Ref      `json:"brand"`
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Slug     string   `json:"slug,omitempty"`
}

// Amount returns a pointer to v, for optional monetary fields.
func Amount(v float64) *float64 {
	return &v
}

// CartItem has the product shape; its quantity is always meaningful.
type CartItem Product

// Order is a placed order with its optional line items.
type Order struct {
	Identity
	Total    float64    `json:"total"`
	Products []CartItem `json:"products,omitempty"`
}

// User is the signed-in shopper.
type User struct {
	ID          string `json:"id,omitempty"`
	MongoID     string `json:"_id,omitempty"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// UserID prefers the plain id over the document id.
func (u User) UserID() string {
	if u.ID != "" {
		return u.ID
	}
	return u.MongoID
}

// Promotion is a merchandising banner or slot.
type Promotion struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Creative string `json:"creative,omitempty"`
	Position string `json:"position,omitempty"`
}

// PaymentInfo is what the checkout form reports once a method is chosen.
type PaymentInfo struct {
	Method string `json:"method,omitempty"`
}
