package storefront

import (
	"context"
	"sync"

	"storefront/internal/tracking"
	"storefront/pkg/models"
)

// CartDrawer reports Cart Viewed when the cart drawer is opened with items in it.
type CartDrawer struct {
	Tracker *tracking.Tracker

	mu      sync.Mutex
	mounted bool
	open    bool
}

// NewCartDrawer creates a CartDrawer.
func NewCartDrawer(tr *tracking.Tracker) *CartDrawer {
	return &CartDrawer{Tracker: tr}
}

// Update records the drawer state. The first update counts as the mount:
// an already open drawer is tracked once. Afterwards only a closed to open
// transition is tracked. Empty carts are never tracked.
func (d *CartDrawer) Update(ctx context.Context, open bool, items []models.CartItem) error {
	d.mu.Lock()
	wasOpen, mounted := d.open, d.mounted
	d.open, d.mounted = open, true
	d.mu.Unlock()

	opened := open && (!mounted || !wasOpen)
	if !opened || len(items) == 0 {
		return nil
	}
	return d.Tracker.TrackCartViewed(ctx, items)
}
