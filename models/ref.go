package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another entity. The API sends either a bare id
// string or a populated object; both decode into the same shape.
type Ref struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON decodes a string id, a populated object, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type alias Ref
	var raw struct {
		alias
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Ref(raw.alias)
	if r.ID == "" {
		r.ID = raw.ID
	}
	return nil
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// Display returns the best human-readable form of the reference.
func (r Ref) Display() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}
