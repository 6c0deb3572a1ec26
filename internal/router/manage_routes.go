package router

import (
	"github.com/labstack/echo/v4"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/handler"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/middleware"
)

// RegisterManage registers MANAGER and ADMIN endpoints under /v1/manage.
// Managers only reach their own locations; the service enforces that.
func RegisterManage(e *echo.Echo, m *handler.ManageHandler, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1/manage",
		middleware.JWTAuth(jwtSecret),
		middleware.RequirePrivileged(),
	)

	// ---- Locations ----
	g.GET("/locations", m.ListLocations)
	g.POST("/locations", m.CreateLocation)
	g.PUT("/locations/:id", m.UpdateLocation)
	g.DELETE("/locations/:id", m.DeleteLocation)

	// ---- Spaces ----
	g.POST("/spaces", m.CreateSpace)
	g.PUT("/spaces/:id", m.UpdateSpace)
	g.DELETE("/spaces/:id", m.DeleteSpace)
	g.GET("/spaces/:id/reservations", r.ListForSpace)
}
