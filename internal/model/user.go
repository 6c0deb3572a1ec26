package model

import "time"

// Role names stored in users.role and carried in the JWT role claim.
const (
    RoleCustomer = "CUSTOMER"
    RoleManager  = "MANAGER"
    RoleAdmin    = "ADMIN"
)

// User is a row of the users table.  Only repositories and the auth
// handler see it; the password hash never leaves the server.
type User struct {
    ID           uint64
    Email        string // unique, stored lower case
    PasswordHash string // bcrypt
    Role         string
    IsActive     bool // inactive users cannot log in or refresh
    CreatedAt    time.Time
    UpdatedAt    time.Time
}

// IsPrivileged reports whether the role may act on reservations it
// does not own and manage locations.
func IsPrivileged(role string) bool {
    return role == RoleManager || role == RoleAdmin
}
