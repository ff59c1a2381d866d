package domain

import (
	"fmt"
	"net/url"
)

// Role is the binary permission level of an account.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

const (
	DefaultUserName  = "Nuevo Usuario"
	DefaultUserColor = "bg-blue-500"
	avatarSize       = 80
)

// User is a team member account.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Color  string `json:"color"`
	Role   Role   `json:"role"`
	Email  string `json:"email,omitempty"`
}

// IsAdmin reports whether u may manage accounts.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserDraft holds the optional fields supplied when an account is created.
type UserDraft struct {
	Name  string
	Email string
	Role  Role
}

// NewUser builds the account for a draft, filling in defaults.
func NewUser(id string, d UserDraft) User {
	name := d.Name
	if name == "" {
		name = DefaultUserName
	}
	role := d.Role
	if role == "" {
		role = RoleEditor
	}
	return User{
		ID:     id,
		Name:   name,
		Email:  d.Email,
		Avatar: AvatarURL(name),
		Color:  DefaultUserColor,
		Role:   role,
	}
}

// AvatarURL derives a stable placeholder avatar from a display name.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d", url.PathEscape(name), avatarSize)
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name   *string
	Avatar *string
	Color  *string
	Role   *Role
	Email  *string
}

// Apply merges p into u and returns the result.
func (u User) Apply(p UserPatch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Color != nil {
		u.Color = *p.Color
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}
