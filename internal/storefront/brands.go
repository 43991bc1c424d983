package storefront

import (
	"context"
	"sync"

	"storefront/internal/tracking"
)

// BrandShopPage is the page name reported for brand listings.
const BrandShopPage = "Brand Shop"

// BrandShop reports a page view each time a different brand is shown.
type BrandShop struct {
	Tracker *tracking.Tracker

	mu    sync.Mutex
	shown bool
	slug  string
}

// NewBrandShop creates a BrandShop.
func NewBrandShop(tr *tracking.Tracker) *BrandShop {
	return &BrandShop{Tracker: tr}
}

// Show is called whenever the brand route renders.
func (b *BrandShop) Show(ctx context.Context, slug string) error {
	b.mu.Lock()
	changed := !b.shown || b.slug != slug
	b.shown, b.slug = true, slug
	b.mu.Unlock()

	if !changed {
		return nil
	}
	return b.Tracker.TrackPageView(ctx, BrandShopPage, tracking.Properties{"brand": slug})
}
