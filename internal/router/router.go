package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/handler"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/middleware"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// allRoles is accepted on every authenticated endpoint.
var allRoles = []string{model.RoleCustomer, model.RoleManager, model.RoleAdmin}

// RegisterRoutes registers routes that do not require authentication and
// are not part of the API proper.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while /v1/me requires a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// rotates the refresh token
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout needs no access token: a refresh token in the body ends that
	// one session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(allRoles...))
	auth.GET("/me", a.Me)

	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the guest browse and availability endpoints.
// Catalogue responses go through the Redis response cache; a nil cache
// serves everything live.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, r *handler.ReservationHandler, cache *middleware.ResponseCache) {
	e.GET("/v1/locations", p.ListLocations, cache.Middleware(middleware.BrowseScope))
	e.GET("/v1/locations/:id/spaces", p.ListLocationSpaces, cache.Middleware(middleware.BrowseScope))
	e.GET("/v1/spaces/:id", p.GetSpace, cache.Middleware(middleware.SpaceScope))

	// Slots and quotes change with every booking on the space; the
	// service drops the space scope after each write.
	e.GET("/v1/spaces/:id/slots", r.Slots, cache.Middleware(middleware.SpaceScope))
	e.GET("/v1/spaces/:id/quote", r.Quote, cache.Middleware(middleware.SpaceScope))
	e.GET("/v1/spaces/:id/availability", r.Availability)
}
