package account

import "time"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// ValidRole reports whether r is a role accounts may carry.
func ValidRole(r string) bool {
	return r == RoleStudent || r == RoleInstructor
}

type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
	Active       bool      `json:"active"`
}
