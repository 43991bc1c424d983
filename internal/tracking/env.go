package tracking

// Storage is a read-only key/value view of the shopper's session.
type Storage interface {
	GetItem(key string) (string, bool)
}

// MapStorage is a Storage backed by a plain map.
type MapStorage map[string]string

// GetItem implements Storage.
func (m MapStorage) GetItem(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Location describes where the shopper is browsing from.
// Protocol keeps its trailing colon, e.g. "https:".
type Location struct {
	Protocol string
	Host     string
}

// Origin returns scheme and host, e.g. "https://shop.example.com".
func (l Location) Origin() string {
	return l.Protocol + "//" + l.Host
}

// Env is the ambient context a tracker reads to enrich payloads.
// It is never written to.
type Env struct {
	Storage  Storage
	Location Location
}

// item looks up key, returning nil when storage is absent or the key unset.
func (e Env) item(key string) any {
	if e.Storage == nil {
		return nil
	}
	if v, ok := e.Storage.GetItem(key); ok {
		return v
	}
	return nil
}
