package main

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"storefront/internal/storefront"
	"storefront/internal/tracking"
	"storefront/pkg/rabbitmq"

	"go.uber.org/zap"
)

// storefrontHooks drives the drawer and brand page components straight onto
// the broker, the way a browser session would.
type storefrontHooks struct {
	tracker *tracking.Tracker
	drawer  *storefront.CartDrawer
	brands  *storefront.BrandShop
}

func newStorefrontHooks(tr *tracking.Tracker) *storefrontHooks {
	return &storefrontHooks{
		tracker: tr,
		drawer:  storefront.NewCartDrawer(tr),
		brands:  storefront.NewBrandShop(tr),
	}
}

// hookStep is one UI interaction replayed by the journey.
type hookStep struct {
	label string
	run   func(ctx context.Context) error
}

// steps opens and closes the drawer and revisits a brand, so only the
// transitions reach the sink.
func (h *storefrontHooks) steps() []hookStep {
	cart := demoCart()
	drawer := func(open bool) hookStep {
		label := "drawer close"
		if open {
			label = "drawer open"
		}
		return hookStep{label, func(ctx context.Context) error { return h.drawer.Update(ctx, open, cart) }}
	}
	brand := func(slug string) hookStep {
		return hookStep{"brand " + slug, func(ctx context.Context) error { return h.brands.Show(ctx, slug) }}
	}
	return []hookStep{
		drawer(false), drawer(true), drawer(true), drawer(false), drawer(true),
		brand("acme"), brand("acme"), brand("globex"),
	}
}

func (h *storefrontHooks) run(ctx context.Context, steps []hookStep) {
	if !h.tracker.Ready() {
		fmt.Printf("  %s[!] broker unreachable, hook events dropped%s\n", Yellow, Reset)
	}
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			fmt.Printf("  %s[x] %s: %v%s\n", Red, s.label, err, Reset)
			continue
		}
		fmt.Printf("  %s[ok]%s %s\n", Green, Reset, s.label)
	}
}

var (
	hooksOnce sync.Once
	hooks     *storefrontHooks
)

// sessionHooks connects to the broker on first use. A failed connect leaves
// the tracker detached.
func sessionHooks() *storefrontHooks {
	hooksOnce.Do(func() {
		tr := tracking.New(tracking.WithEnv(tracking.Env{
			Storage:  tracking.MapStorage{tracking.CartIDKey: sessionCartID},
			Location: storeLocation(cfg.StoreOrigin),
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, zap.NewNop()); err == nil {
			if pub, err := rabbitmq.NewPublisher(conn, zap.NewNop()); err == nil {
				tr.Attach(tracking.NewPublisherSink(pub))
			}
		}
		hooks = newStorefrontHooks(tr)
	})
	return hooks
}

func storeLocation(origin string) tracking.Location {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return tracking.Location{Protocol: "http:", Host: "localhost"}
	}
	return tracking.Location{Protocol: u.Scheme + ":", Host: u.Host}
}

func runDrawer(arg string) {
	h := sessionHooks()
	switch arg {
	case "open", "close":
		open := arg == "open"
		h.run(context.Background(), []hookStep{{"drawer " + arg, func(ctx context.Context) error {
			return h.drawer.Update(ctx, open, demoCart())
		}}})
	default:
		fmt.Printf("  %sUsage: drawer <open|close>%s\n", Red, Reset)
	}
}

func runBrand(slug string) {
	h := sessionHooks()
	h.run(context.Background(), []hookStep{{"brand " + slug, func(ctx context.Context) error {
		return h.brands.Show(ctx, slug)
	}}})
}
