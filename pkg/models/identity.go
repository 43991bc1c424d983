package models

import (
	"bytes"
	"encoding/json"
)

// Identity carries the two identifier fields a storefront object may arrive with.
type Identity struct {
	ID      string `json:"id,omitempty"`
	MongoID string `json:"_id,omitempty"`
}

// Resolve returns the document id when present, otherwise the plain id.
func (i Identity) Resolve() string {
	if i.MongoID != "" {
		return i.MongoID
	}
	return i.ID
}

// Ref is a category or brand reference. The storefront sends either a bare
// name or a populated document with a name field; both decode into Name.
type Ref struct {
	Name string
}

// NamedRef builds a Ref from a plain name.
func NamedRef(name string) Ref {
	return Ref{Name: name}
}

// UnmarshalJSON accepts "Shoes" as well as {"name":"Shoes", ...}.
// Any other shape leaves the ref empty.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		r.Name = name
		return nil
	}

	var doc struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &doc); err == nil {
		r.Name = doc.Name
	}
	return nil
}

// MarshalJSON encodes the ref as its name.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Name)
}
