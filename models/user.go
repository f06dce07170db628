package models

import "encoding/json"

// Role is the portal a user belongs to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Roles lists every role in display order.
var Roles = []Role{RoleCustomer, RoleProvider, RoleAdmin}

// ParseRole returns the role named by s and whether it is known.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// Home is the default landing path for the role.
func (r Role) Home() string {
	return "/" + string(r)
}

// User is the profile returned by GET /auth/me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts either "id" or "_id" for the identifier.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.alias)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	return nil
}

// Provider is a provider account as listed for admins.
type Provider struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
	Services []Ref  `json:"services,omitempty"`
}

// UnmarshalJSON accepts either "_id" or "id" for the identifier.
func (p *Provider) UnmarshalJSON(data []byte) error {
	type alias Provider
	var raw struct {
		alias
		PlainID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Provider(raw.alias)
	if p.ID == "" {
		p.ID = raw.PlainID
	}
	return nil
}

// ProviderStatusUpdate is the body of PATCH /users/:id/status.
type ProviderStatusUpdate struct {
	Active bool `json:"active"`
}
