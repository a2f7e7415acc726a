package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of operator roles. There is no ordering between
// roles; permissions are expressed by the predicates below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole converts s to a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", Invalid(fmt.Sprintf("unknown role %q", s))
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanEditCatalog reports whether r may create, update or delete products.
func (r Role) CanEditCatalog() bool { return r == RoleAdmin || r == RoleEditor }

// CanManageUsers reports whether r may list and mutate user accounts.
func (r Role) CanManageUsers() bool { return r == RoleAdmin }

// CanUpdateOrderStatus reports whether r may move an order between statuses.
func (r Role) CanUpdateOrderStatus() bool { return r == RoleAdmin || r == RoleEditor }

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool { return s == UserActive || s == UserInactive }

// User models an operator account.
type User struct {
	ID           string     `json:"id" bson:"_id"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         Role       `json:"role" bson:"role"`
	Status       UserStatus `json:"status" bson:"status"`
	Avatar       *string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
}

// AuthUser is the projection of a User carried by a session.
type AuthUser struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   Role    `json:"role"`
	Avatar *string `json:"avatar,omitempty"`
}

// Projection returns the session view of u.
func (u *User) Projection() AuthUser {
	return AuthUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: cloneString(u.Avatar),
	}
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Avatar = cloneString(u.Avatar)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
