package middleware

// identity.go holds the accessors for the caller identity that JWTAuth
// stores in the Echo context.  Handlers and the other middlewares read
// the identity only through these helpers.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

const (
    ctxUserID = "user_id"
    ctxRole   = "role"
)

// SetIdentity records the authenticated user on the context.
func SetIdentity(c echo.Context, userID uint64, role string) {
    c.Set(ctxUserID, userID)
    c.Set(ctxRole, role)
}

// UserID returns the authenticated user's id.  ok is false for guests.
func UserID(c echo.Context) (id uint64, ok bool) {
    id, ok = c.Get(ctxUserID).(uint64)
    return id, ok && id != 0
}

// Role returns the authenticated user's role, or "" for guests.
func Role(c echo.Context) string {
    r, _ := c.Get(ctxRole).(string)
    return r
}

// identityKey identifies the caller in rate limit keys; "guest" when
// no user is authenticated.
func identityKey(c echo.Context) string {
    if id, ok := UserID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "guest"
}
