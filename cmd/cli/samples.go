package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"storefront/internal/api"
	"storefront/internal/tracking"
	"storefront/pkg/models"

	"github.com/google/uuid"
)

type sample struct {
	path string
	body any
}

var (
	sessionCartID = uuid.New().String()

	demoUser = models.User{
		ID:        "u-demo",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "ROLE MEMBER",
	}

	demoProducts = []models.Product{
		{Identity: models.Identity{MongoID: "p-100"}, SKU: "TEE-BLK", Name: "Black Tee", Category: models.NamedRef("Apparel"), Brand: models.NamedRef("Acme"), Price: models.Amount(19.99), Slug: "black-tee"},
		{Identity: models.Identity{MongoID: "p-200"}, SKU: "MUG-01", Name: "Logo Mug", Category: models.NamedRef("Home"), Brand: models.NamedRef("Acme"), Price: models.Amount(9.5), Slug: "logo-mug"},
	}
)

func demoCart() []models.CartItem {
	return []models.CartItem{
		models.CartItem(withQuantity(demoProducts[0], 2)),
		models.CartItem(withQuantity(demoProducts[1], 1)),
	}
}

func withQuantity(p models.Product, q int) models.Product {
	p.Quantity = q
	return p
}

func sampleEvents() map[string]sample {
	cart := demoCart()
	return map[string]sample{
		"identify":  {"/identify", demoUser},
		"signup":    {"/events/signup", demoUser},
		"login":     {"/events/login", demoUser},
		"logout":    {"/events/logout", nil},
		"page":      {"/page", api.PageRequest{Name: "Home"}},
		"view":      {"/events/product-viewed", demoProducts[0]},
		"list":      {"/events/product-list-viewed", api.ProductListRequest{ListName: "Acme", Products: demoProducts}},
		"search":    {"/events/products-searched", api.SearchRequest{Query: "tee"}},
		"add":       {"/events/product-added", demoProducts[0]},
		"remove":    {"/events/product-removed", demoProducts[1]},
		"cart":      {"/events/cart-viewed", api.CartRequest{Items: cart}},
		"checkout":  {"/events/checkout-started", api.CartRequest{Items: cart, Total: tracking.CartValue(cart)}},
		"payment":   {"/events/payment-info-entered", models.PaymentInfo{Method: "card"}},
		"order":     {"/events/order-completed", models.Order{Identity: models.Identity{MongoID: "o-" + sessionCartID[:8]}, Total: tracking.CartValue(cart), Products: cart}},
		"cancel":    {"/events/order-cancelled", models.Order{Identity: models.Identity{MongoID: "o-" + sessionCartID[:8]}, Total: tracking.CartValue(cart)}},
		"share":     {"/events/product-shared", api.ShareRequest{Product: demoProducts[0], Channel: "twitter"}},
		"review":    {"/events/product-reviewed", api.ReviewRequest{Product: demoProducts[0], Rating: 5, ReviewText: "Great fit"}},
		"wish":      {"/events/wishlist-added", demoProducts[1]},
		"unwish":    {"/events/wishlist-removed", demoProducts[1]},
		"promo":     {"/events/promotion-viewed", models.Promotion{ID: "summer", Name: "Summer Sale", Creative: "banner-a", Position: "home_top"}},
		"promo-hit": {"/events/promotion-clicked", models.Promotion{ID: "summer", Name: "Summer Sale", Creative: "banner-a", Position: "home_top"}},
	}
}

func sampleNames() []string {
	events := sampleEvents()
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// journey is a typical visit, in order.
var journey = []string{"identify", "page", "list", "view", "add", "cart", "checkout", "payment", "order"}

func sendSample(name string) {
	s, ok := sampleEvents()[name]
	if !ok {
		fmt.Printf("  %s[x] unknown sample %q%s\n", Red, name, Reset)
		return
	}
	status, body, err := postJSON(s.path, s.body)
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	if status == http.StatusAccepted || status == http.StatusOK {
		fmt.Printf("  %s[ok]%s %-10s %s%s%s\n", Green, Reset, name, Dim, s.path, Reset)
	} else {
		fmt.Printf("  %s[x] %d%s %s %s\n", Red, status, Reset, name, body)
	}
}

func sendJourney() {
	fmt.Printf("  %scart %s%s\n", Dim, sessionCartID, Reset)
	for _, name := range journey {
		sendSample(name)
	}
	h := sessionHooks()
	h.run(context.Background(), h.steps())
}

func printShareMessage(slug string) {
	p := demoProducts[0]
	for _, dp := range demoProducts {
		if dp.Slug == slug {
			p = dp
		}
	}
	p.Slug = slug

	status, body, err := postJSON("/share-message", api.ShareRequest{Product: p})
	if err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	if status != http.StatusOK {
		fmt.Printf("  %s[x] %d%s %s\n", Red, status, Reset, body)
		return
	}

	var resp api.ShareMessageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		fmt.Printf("  %s[x] %v%s\n", Red, err, Reset)
		return
	}
	fmt.Printf("  %s\n", resp.Message)
	fmt.Printf("  %schannels: %v%s\n", Dim, resp.Channels, Reset)
}

// postJSON posts body to the API as the demo shopper, carrying the session cart.
func postJSON(path string, body any) (int, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, nil, err
		}
	}

	req, err := http.NewRequest(http.MethodPost, cfg.APIURL+path, &buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: tracking.CartIDKey, Value: sessionCartID})

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	return resp.StatusCode, out, err
}
