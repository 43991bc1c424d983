package tracking

// Event names sent to the sink.
const (
	EventUserSignedUp           = "User Signed Up"
	EventUserLoggedIn           = "User Logged In"
	EventUserLoggedOut          = "User Logged Out"
	EventProductViewed          = "Product Viewed"
	EventProductListViewed      = "Product List Viewed"
	EventProductAdded           = "Product Added"
	EventProductRemoved         = "Product Removed"
	EventCartViewed             = "Cart Viewed"
	EventCheckoutStarted        = "Checkout Started"
	EventOrderCompleted         = "Order Completed"
	EventOrderCancelled         = "Order Cancelled"
	EventProductsSearched       = "Products Searched"
	EventProductShared          = "Product Shared"
	EventProductReviewed        = "Product Reviewed"
	EventWishlistProductAdded   = "Wishlist Product Added"
	EventWishlistProductRemoved = "Wishlist Product Removed"
	EventPaymentInfoEntered     = "Payment Info Entered"
	EventPromotionViewed        = "Promotion Viewed"
	EventPromotionClicked       = "Promotion Clicked"
)

// CartIDKey is the storage key holding the shopper's cart id.
const CartIDKey = "cart_id"

// DefaultCurrency is attached to completed orders.
const DefaultCurrency = "USD"
