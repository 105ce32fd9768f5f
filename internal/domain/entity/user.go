package entity

import "time"

// Role is the coarse authorization level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt digest and never serializes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the store-backed projection of a User attached to
// authenticated requests. It is re-read from the store per request, so a
// role change or deletion takes effect on the next request regardless of
// what an outstanding token claims.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// Identity projects the user's public fields.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
