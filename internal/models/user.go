package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// User is a household member. Roles is a comma-separated set of role
// strings; membership is checked with HasRole, no hierarchy involved.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Email     string    `gorm:"size:255" json:"email"`
	Roles     string    `gorm:"size:255;default:'ROLE_USER'" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) RoleSet() []string {
	if u.Roles == "" {
		return nil
	}
	parts := strings.Split(u.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}
	return roles
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleSet() {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// JoinRoles normalizes a role list into the stored representation.
func JoinRoles(roles []string) string {
	cleaned := make([]string, 0, len(roles))
	for _, r := range roles {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return RoleUser
	}
	return strings.Join(cleaned, ",")
}
