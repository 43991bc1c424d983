package api

import (
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/tracking"
)

// cookieStorage exposes request cookies as tracker storage.
type cookieStorage struct {
	r *http.Request
}

func (s cookieStorage) GetItem(key string) (string, bool) {
	ck, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return ck.Value, true
}

// requestEnv derives the shopper's ambient context from the request.
func requestEnv(r *http.Request) tracking.Env {
	return tracking.Env{
		Storage:  cookieStorage{r: r},
		Location: requestLocation(r),
	}
}

// requestLocation prefers the Origin header. Without one it falls back to
// the Host header, with the scheme taken from TLS or X-Forwarded-Proto.
func requestLocation(r *http.Request) tracking.Location {
	if origin := r.Header.Get("Origin"); origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Scheme != "" && u.Host != "" {
			return tracking.Location{Protocol: u.Scheme + ":", Host: u.Host}
		}
	}

	protocol := "http:"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		protocol = "https:"
	}
	return tracking.Location{Protocol: protocol, Host: r.Host}
}
