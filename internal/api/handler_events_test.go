package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront/internal/tracking"
	"storefront/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type sentCall struct {
	Kind          string
	Name          string
	Props         tracking.Properties
	CorrelationID string
}

// spySink implements tracking.Sink for testing.
type spySink struct {
	mu    sync.Mutex
	calls []sentCall
	err   error
}

func (s *spySink) record(ctx context.Context, kind, name string, props tracking.Properties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sentCall{
		Kind:          kind,
		Name:          name,
		Props:         props,
		CorrelationID: middleware.CorrelationIDFromContext(ctx),
	})
	return s.err
}

func (s *spySink) Identify(ctx context.Context, userID string, traits tracking.Properties) error {
	return s.record(ctx, "identify", userID, traits)
}

func (s *spySink) Track(ctx context.Context, event string, props tracking.Properties) error {
	return s.record(ctx, "track", event, props)
}

func (s *spySink) Page(ctx context.Context, name string, props tracking.Properties) error {
	return s.record(ctx, "page", name, props)
}

type dropCounter struct {
	drops []string
}

func (d *dropCounter) RecordDropped(call, event string) {
	d.drops = append(d.drops, call+"/"+event)
}

func newTestRouter(sink tracking.Sink) (*gin.Engine, *dropCounter) {
	var opts []tracking.Option
	if sink != nil {
		opts = append(opts, tracking.WithSink(sink))
	}
	drops := &dropCounter{}
	h := NewEventHandler(tracking.New(opts...), "", drops, zap.NewNop())
	return NewRouter(h, nil), drops
}

func post(router http.Handler, path, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestProductAdded_UsesRequestEnvironment(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	w := post(router, "/events/product-added", `{"_id":"p-1","name":"Tee","price":12.5,"slug":"tee"}`, func(r *http.Request) {
		r.Header.Set("Origin", "https://shop.example.com")
		r.Header.Set(middleware.CorrelationIDHeader, "corr-42")
		r.AddCookie(&http.Cookie{Name: tracking.CartIDKey, Value: "cart-9"})
	})

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"accepted"}`, w.Body.String())

	require.Len(t, sink.calls, 1)
	got := sink.calls[0]
	assert.Equal(t, "track", got.Kind)
	assert.Equal(t, tracking.EventProductAdded, got.Name)
	assert.Equal(t, "corr-42", got.CorrelationID)
	assert.Equal(t, "p-1", got.Props["product_id"])
	assert.Equal(t, "cart-9", got.Props["cart_id"])
	assert.Equal(t, 1, got.Props["quantity"])
	assert.Equal(t, "https://shop.example.com/product/tee", got.Props["url"])
}

func TestProductAdded_NoCartCookie(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	w := post(router, "/events/product-added", `{"_id":"p-1"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sink.calls, 1)
	v, ok := sink.calls[0].Props["cart_id"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestEvents_MalformedJSON(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	for _, path := range []string{"/identify", "/page", "/events/product-viewed", "/events/order-completed", "/share-message"} {
		w := post(router, path, `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
	assert.Empty(t, sink.calls)
}

func TestEvents_NoSinkIsAcceptedAndCounted(t *testing.T) {
	router, drops := newTestRouter(nil)

	w := post(router, "/events/products-searched", `{"query":"shoes"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = post(router, "/events/logout", ``)
	assert.Equal(t, http.StatusAccepted, w.Code)

	assert.Equal(t, []string{
		"track/" + tracking.EventProductsSearched,
		"track/" + tracking.EventUserLoggedOut,
	}, drops.drops)
}

func TestEvents_SinkErrorStillAccepted(t *testing.T) {
	sink := &spySink{err: errors.New("broker down")}
	router, _ := newTestRouter(sink)

	w := post(router, "/events/order-completed", `{"_id":"o-1","total":40}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, tracking.EventOrderCompleted, sink.calls[0].Name)
}

func TestIdentify(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	w := post(router, "/identify", `{"id":"u-1","email":"ada@example.com","firstName":"Ada","lastName":"Lovelace"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "identify", sink.calls[0].Kind)
	assert.Equal(t, "u-1", sink.calls[0].Name)
	assert.Equal(t, "Ada Lovelace", sink.calls[0].Props["name"])
}

func TestPage_NilPropertiesBecomeEmpty(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	w := post(router, "/page", `{"name":"Home"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "page", sink.calls[0].Kind)
	assert.Equal(t, "Home", sink.calls[0].Name)
	assert.NotNil(t, sink.calls[0].Props)
	assert.Empty(t, sink.calls[0].Props)
}

func TestCheckoutStarted_UsesGivenTotal(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	body := `{"items":[{"_id":"p-1","price":10,"quantity":2}],"total":99}`
	w := post(router, "/events/checkout-started", body, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: tracking.CartIDKey, Value: "cart-1"})
	})

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, float64(99), sink.calls[0].Props["revenue"])
	assert.Equal(t, "cart-1", sink.calls[0].Props["order_id"])
}

func TestProductShared(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	w := post(router, "/events/product-shared", `{"product":{"_id":"p-1","slug":"tee"},"channel":"twitter"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, tracking.EventProductShared, sink.calls[0].Name)
	assert.Equal(t, "twitter", sink.calls[0].Props["share_via"])
}

func TestShareMessage(t *testing.T) {
	sink := &spySink{}
	router, _ := newTestRouter(sink)

	w := post(router, "/share-message", `{"product":{"name":"Tee","slug":"tee"}}`, func(r *http.Request) {
		r.Header.Set("Origin", "https://shop.example.com")
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp ShareMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "I ♥ Tee product on Rudderstack Store!  Here's the link, http://shop.example.com/product/tee", resp.Message)
	assert.Equal(t, []string{"facebook", "twitter", "email", "whatsapp"}, resp.Channels)
	assert.Empty(t, sink.calls)
}

func TestHealth_ReportsSinkReadiness(t *testing.T) {
	tr := tracking.New()
	router := NewRouter(NewEventHandler(tr, "", nil, zap.NewNop()), nil)

	get := func() map[string]any {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body
	}

	assert.Equal(t, false, get()["sink_ready"])
	tr.Attach(&spySink{})
	assert.Equal(t, true, get()["sink_ready"])
}

func TestRequestLocation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://api.internal/events/logout", nil)
	assert.Equal(t, tracking.Location{Protocol: "http:", Host: "api.internal"}, requestLocation(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, tracking.Location{Protocol: "https:", Host: "api.internal"}, requestLocation(req))

	req = httptest.NewRequest(http.MethodPost, "http://api.internal/events/logout", nil)
	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https:", requestLocation(req).Protocol)

	req.Header.Set("Origin", "http://localhost:3000")
	assert.Equal(t, tracking.Location{Protocol: "http:", Host: "localhost:3000"}, requestLocation(req))

	req.Header.Set("Origin", "null")
	assert.Equal(t, "api.internal", requestLocation(req).Host)
}
