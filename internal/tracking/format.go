package tracking

import "storefront/pkg/models"

// Properties is the payload handed to a sink.
type Properties = models.Properties

// FormatProduct shapes a product for single-product events. Quantity
// defaults to 1 and url is built from origin and the product slug.
func FormatProduct(p models.Product, origin string) Properties {
	quantity := p.Quantity
	if quantity == 0 {
		quantity = 1
	}

	props := productFields(models.CartItem(p), quantity)
	props["url"] = origin + "/product/" + p.Slug
	return props
}

// FormatCart shapes cart lines in order. Quantities pass through as given.
func FormatCart(items []models.CartItem) []Properties {
	out := make([]Properties, 0, len(items))
	for _, item := range items {
		out = append(out, productFields(item, item.Quantity))
	}
	return out
}

// CartValue sums price times quantity over the items.
func CartValue(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += priceOf(item) * float64(item.Quantity)
	}
	return total
}

// UserTraits builds the traits attached to an identify call.
func UserTraits(u models.User) Properties {
	traits := Properties{
		"name": u.FirstName + " " + u.LastName,
	}
	setString(traits, "email", u.Email)
	setString(traits, "firstName", u.FirstName)
	setString(traits, "lastName", u.LastName)
	setString(traits, "role", u.Role)
	setString(traits, "phone", u.PhoneNumber)
	return traits
}

func promotionFields(p models.Promotion) Properties {
	props := Properties{}
	setString(props, "promotion_id", p.ID)
	setString(props, "promotion_name", p.Name)
	setString(props, "creative_name", p.Creative)
	setString(props, "position", p.Position)
	return props
}

func productFields(item models.CartItem, quantity int) Properties {
	props := Properties{"quantity": quantity}
	if item.Price != nil {
		props["price"] = *item.Price
	}
	setString(props, "product_id", item.Resolve())
	setString(props, "sku", item.SKU)
	setString(props, "name", item.Name)
	setString(props, "category", item.Category.Name)
	setString(props, "brand", item.Brand.Name)
	setString(props, "image_url", item.ImageURL)
	return props
}

// priceOf treats a missing price as zero.
func priceOf(item models.CartItem) float64 {
	if item.Price == nil {
		return 0
	}
	return *item.Price
}

// setString leaves empty values out of the payload.
func setString(props Properties, key, value string) {
	if value != "" {
		props[key] = value
	}
}

func merge(base Properties, extra Properties) Properties {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
