package storefront

import (
	"context"
	"testing"

	"storefront/internal/tracking"
	"storefront/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedCall struct {
	kind  string
	name  string
	props tracking.Properties
}

type recordingSink struct {
	calls []trackedCall
}

func (r *recordingSink) Identify(_ context.Context, userID string, traits tracking.Properties) error {
	r.calls = append(r.calls, trackedCall{"identify", userID, traits})
	return nil
}

func (r *recordingSink) Track(_ context.Context, event string, props tracking.Properties) error {
	r.calls = append(r.calls, trackedCall{"track", event, props})
	return nil
}

func (r *recordingSink) Page(_ context.Context, name string, props tracking.Properties) error {
	r.calls = append(r.calls, trackedCall{"page", name, props})
	return nil
}

var loc = tracking.Location{Protocol: "https:", Host: "shop.example.com"}

func newTracker() (*tracking.Tracker, *recordingSink) {
	sink := &recordingSink{}
	return tracking.New(tracking.WithSink(sink), tracking.WithEnv(tracking.Env{
		Storage:  tracking.MapStorage{tracking.CartIDKey: "cart-1"},
		Location: loc,
	})), sink
}

var items = []models.CartItem{{Identity: models.Identity{ID: "a"}, Price: models.Amount(10), Quantity: 1}}

func TestCartDrawer_TracksOnOpenTransition(t *testing.T) {
	tr, sink := newTracker()
	drawer := NewCartDrawer(tr)
	ctx := context.Background()

	require.NoError(t, drawer.Update(ctx, false, items))
	assert.Empty(t, sink.calls)

	require.NoError(t, drawer.Update(ctx, true, items))
	require.Len(t, sink.calls, 1)
	assert.Equal(t, tracking.EventCartViewed, sink.calls[0].name)
	assert.Equal(t, 10.0, sink.calls[0].props["revenue"])

	// staying open does not re-track
	require.NoError(t, drawer.Update(ctx, true, items))
	assert.Len(t, sink.calls, 1)

	require.NoError(t, drawer.Update(ctx, false, items))
	require.NoError(t, drawer.Update(ctx, true, items))
	assert.Len(t, sink.calls, 2)
}

func TestCartDrawer_MountedOpen(t *testing.T) {
	tr, sink := newTracker()
	drawer := NewCartDrawer(tr)

	require.NoError(t, drawer.Update(context.Background(), true, items))
	assert.Len(t, sink.calls, 1)
}

func TestCartDrawer_EmptyCartNotTracked(t *testing.T) {
	tr, sink := newTracker()
	drawer := NewCartDrawer(tr)
	ctx := context.Background()

	require.NoError(t, drawer.Update(ctx, true, nil))
	require.NoError(t, drawer.Update(ctx, false, nil))
	require.NoError(t, drawer.Update(ctx, true, []models.CartItem{}))
	assert.Empty(t, sink.calls)
}

func TestBrandShop_TracksSlugChanges(t *testing.T) {
	tr, sink := newTracker()
	shop := NewBrandShop(tr)
	ctx := context.Background()

	require.NoError(t, shop.Show(ctx, "acme"))
	require.NoError(t, shop.Show(ctx, "acme"))
	require.NoError(t, shop.Show(ctx, "globex"))

	require.Len(t, sink.calls, 2)
	assert.Equal(t, "page", sink.calls[0].kind)
	assert.Equal(t, BrandShopPage, sink.calls[0].name)
	assert.Equal(t, tracking.Properties{"brand": "acme"}, sink.calls[0].props)
	assert.Equal(t, tracking.Properties{"brand": "globex"}, sink.calls[1].props)
}

func TestSocialShare_Message(t *testing.T) {
	share := NewSocialShare(nil, "")
	p := models.Product{Name: "Runner", Slug: "runner"}

	tests := []struct {
		name     string
		protocol string
		expected string
	}{
		{"https location", "https:", "I ♥ Runner product on Rudderstack Store!  Here's the link, http://shop.example.com/product/runner"},
		{"http location", "http:", "I ♥ Runner product on Rudderstack Store!  Here's the link, http://shop.example.com/product/runner"},
		{"bare https", "https", "I ♥ Runner product on Rudderstack Store!  Here's the link, https://shop.example.com/product/runner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := share.Message(p, tracking.Location{Protocol: tt.protocol, Host: "shop.example.com"})
			assert.Equal(t, tt.expected, msg)
		})
	}
}

func TestSocialShare_CustomStoreName(t *testing.T) {
	share := NewSocialShare(nil, "Acme Outlet")
	msg := share.Message(models.Product{Name: "Cap", Slug: "cap"}, loc)
	assert.Contains(t, msg, "on Acme Outlet!")
}

func TestSocialShare_ShareTracksEveryChannel(t *testing.T) {
	tr, sink := newTracker()
	share := NewSocialShare(tr, "")
	p := models.Product{Identity: models.Identity{ID: "p-1"}, Name: "Runner", Slug: "runner"}

	for _, ch := range Channels {
		require.NoError(t, share.Share(context.Background(), p, ch))
	}

	require.Len(t, sink.calls, len(Channels))
	for i, ch := range Channels {
		assert.Equal(t, tracking.EventProductShared, sink.calls[i].name)
		assert.Equal(t, ch, sink.calls[i].props["share_via"])
		assert.Equal(t, "p-1", sink.calls[i].props["product_id"])
	}
}
