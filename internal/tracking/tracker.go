package tracking

import (
	"context"

	"storefront/pkg/models"

	"go.uber.org/zap"
)

// Tracker exposes one method per storefront business event.
type Tracker struct {
	slot   *sinkSlot
	env    Env
	logger *zap.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSink attaches a sink at construction.
func WithSink(s Sink) Option {
	return func(t *Tracker) { t.slot.store(s) }
}

// WithEnv sets the ambient context used to enrich payloads.
func WithEnv(env Env) Option {
	return func(t *Tracker) { t.env = env }
}

// WithLogger sets the logger used for dropped-event diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a Tracker. Without WithSink it drops every event until Attach is called.
func New(opts ...Option) *Tracker {
	t := &Tracker{slot: &sinkSlot{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Attach installs (or with nil, removes) the sink. Safe to call while other
// goroutines are tracking.
func (t *Tracker) Attach(s Sink) {
	t.slot.store(s)
}

// Ready reports whether a sink is currently attached.
func (t *Tracker) Ready() bool {
	return t.slot.load() != nil
}

// With returns a tracker bound to env that shares this tracker's sink.
func (t *Tracker) With(env Env) *Tracker {
	return &Tracker{slot: t.slot, env: env, logger: t.logger}
}

// sink returns the attached sink, or nil after logging the drop.
func (t *Tracker) sink(call string) Sink {
	s := t.slot.load()
	if s == nil {
		t.logger.Debug("analytics sink not ready, dropping call", zap.String("call", call))
	}
	return s
}

// track shapes the payload only once a sink is known to be attached.
func (t *Tracker) track(ctx context.Context, event string, shape func() Properties) error {
	s := t.sink(event)
	if s == nil {
		return nil
	}
	return s.Track(ctx, event, shape())
}

func (t *Tracker) product(p models.Product) Properties {
	return FormatProduct(p, t.env.Location.Origin())
}

func (t *Tracker) cartID() any {
	return t.env.item(CartIDKey)
}

// IdentifyUser associates the session with a user and its traits.
func (t *Tracker) IdentifyUser(ctx context.Context, u models.User) error {
	s := t.sink("identify")
	if s == nil {
		return nil
	}
	return s.Identify(ctx, u.UserID(), UserTraits(u))
}

// TrackSignup records a new account. Method falls back to "email".
func (t *Tracker) TrackSignup(ctx context.Context, u models.User) error {
	return t.track(ctx, EventUserSignedUp, func() Properties {
		props := Properties{
			"userId": u.UserID(),
			"method": signInMethod(u),
		}
		setString(props, "email", u.Email)
		setString(props, "firstName", u.FirstName)
		setString(props, "lastName", u.LastName)
		return props
	})
}

// TrackLogin records a sign in.
func (t *Tracker) TrackLogin(ctx context.Context, u models.User) error {
	return t.track(ctx, EventUserLoggedIn, func() Properties {
		props := Properties{
			"userId": u.UserID(),
			"method": signInMethod(u),
		}
		setString(props, "email", u.Email)
		return props
	})
}

// TrackLogout records a sign out. The event carries no properties.
func (t *Tracker) TrackLogout(ctx context.Context) error {
	return t.track(ctx, EventUserLoggedOut, func() Properties { return nil })
}

// TrackProductViewed records a product detail view.
func (t *Tracker) TrackProductViewed(ctx context.Context, p models.Product) error {
	return t.track(ctx, EventProductViewed, func() Properties {
		return t.product(p)
	})
}

// TrackProductListViewed records a named product list such as a category page.
func (t *Tracker) TrackProductListViewed(ctx context.Context, products []models.Product, listName string) error {
	return t.track(ctx, EventProductListViewed, func() Properties {
		shaped := make([]Properties, 0, len(products))
		for _, p := range products {
			shaped = append(shaped, t.product(p))
		}
		return Properties{
			"list_name": listName,
			"products":  shaped,
		}
	})
}

// TrackProductsSearched records a raw search query.
func (t *Tracker) TrackProductsSearched(ctx context.Context, query string) error {
	return t.track(ctx, EventProductsSearched, func() Properties {
		return Properties{"query": query}
	})
}

// TrackProductAdded records a product added to the cart.
func (t *Tracker) TrackProductAdded(ctx context.Context, p models.Product) error {
	return t.track(ctx, EventProductAdded, t.cartProduct(p))
}

// TrackProductRemoved records a product removed from the cart.
func (t *Tracker) TrackProductRemoved(ctx context.Context, p models.Product) error {
	return t.track(ctx, EventProductRemoved, t.cartProduct(p))
}

func (t *Tracker) cartProduct(p models.Product) func() Properties {
	return func() Properties {
		props := t.product(p)
		props["cart_id"] = t.cartID()
		return props
	}
}

// TrackCartViewed records the cart being opened. Revenue is computed from items.
func (t *Tracker) TrackCartViewed(ctx context.Context, items []models.CartItem) error {
	return t.track(ctx, EventCartViewed, func() Properties {
		return Properties{
			"cart_id":  t.cartID(),
			"products": FormatCart(items),
			"revenue":  CartValue(items),
		}
	})
}

// TrackCheckoutStarted records checkout. The caller's total is sent as is.
func (t *Tracker) TrackCheckoutStarted(ctx context.Context, items []models.CartItem, total float64) error {
	return t.track(ctx, EventCheckoutStarted, func() Properties {
		return Properties{
			"order_id": t.cartID(),
			"revenue":  total,
			"products": FormatCart(items),
		}
	})
}

// TrackOrderCompleted records a placed order.
func (t *Tracker) TrackOrderCompleted(ctx context.Context, o models.Order) error {
	return t.track(ctx, EventOrderCompleted, func() Properties {
		props := Properties{
			"revenue":  o.Total,
			"products": FormatCart(o.Products),
			"currency": DefaultCurrency,
		}
		setString(props, "order_id", o.Resolve())
		return props
	})
}

// TrackOrderCancelled records a cancelled order.
func (t *Tracker) TrackOrderCancelled(ctx context.Context, o models.Order) error {
	return t.track(ctx, EventOrderCancelled, func() Properties {
		props := Properties{"revenue": o.Total}
		setString(props, "order_id", o.Resolve())
		return props
	})
}

// TrackProductShared records a share through channel (facebook, twitter, ...).
func (t *Tracker) TrackProductShared(ctx context.Context, p models.Product, channel string) error {
	return t.track(ctx, EventProductShared, func() Properties {
		return merge(t.product(p), Properties{"share_via": channel})
	})
}

// TrackProductReviewed records a rating and review text.
func (t *Tracker) TrackProductReviewed(ctx context.Context, p models.Product, rating float64, reviewText string) error {
	return t.track(ctx, EventProductReviewed, func() Properties {
		return merge(t.product(p), Properties{
			"rating":      rating,
			"review_text": reviewText,
		})
	})
}

// TrackWishlistProductAdded records a wishlist addition.
func (t *Tracker) TrackWishlistProductAdded(ctx context.Context, p models.Product) error {
	return t.track(ctx, EventWishlistProductAdded, func() Properties {
		return t.product(p)
	})
}

// TrackWishlistProductRemoved records a wishlist removal.
func (t *Tracker) TrackWishlistProductRemoved(ctx context.Context, p models.Product) error {
	return t.track(ctx, EventWishlistProductRemoved, func() Properties {
		return t.product(p)
	})
}

// TrackPaymentInfoEntered records the chosen payment method.
func (t *Tracker) TrackPaymentInfoEntered(ctx context.Context, info models.PaymentInfo) error {
	return t.track(ctx, EventPaymentInfoEntered, func() Properties {
		props := Properties{}
		setString(props, "payment_method", info.Method)
		return props
	})
}

// TrackPromotionViewed records a promotion impression.
func (t *Tracker) TrackPromotionViewed(ctx context.Context, p models.Promotion) error {
	return t.track(ctx, EventPromotionViewed, func() Properties {
		return promotionFields(p)
	})
}

// TrackPromotionClicked records a promotion click.
func (t *Tracker) TrackPromotionClicked(ctx context.Context, p models.Promotion) error {
	return t.track(ctx, EventPromotionClicked, func() Properties {
		return promotionFields(p)
	})
}

// TrackPageView records a page view. Nil properties are sent as an empty map.
func (t *Tracker) TrackPageView(ctx context.Context, name string, properties Properties) error {
	s := t.sink("page")
	if s == nil {
		return nil
	}
	if properties == nil {
		properties = Properties{}
	}
	return s.Page(ctx, name, properties)
}

func signInMethod(u models.User) string {
	if u.Provider != "" {
		return u.Provider
	}
	return "email"
}
