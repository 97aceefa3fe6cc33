package models

import "time"

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account authenticated via OIDC. Only admins may
// moderate submissions.
type User struct {
	ID        int64     `json:"id"`
	Sub       string    `json:"sub"` // OIDC subject identifier
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user may moderate submissions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
