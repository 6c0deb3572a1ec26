package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// RequireRole admits a request only when the role claim stored by
// JWTAuth is one of roles.  Anything else gets 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    set := make(map[string]struct{}, len(roles))
    for _, r := range roles {
        set[r] = struct{}{}
    }
    return guard(func(role string) bool {
        _, ok := set[role]
        return ok
    })
}

// RequirePrivileged admits managers and admins.
func RequirePrivileged() echo.MiddlewareFunc {
    return guard(model.IsPrivileged)
}

func guard(allow func(role string) bool) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !allow(Role(c)) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
