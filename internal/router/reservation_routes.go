package router

import (
	"github.com/labstack/echo/v4"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/handler"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/middleware"
)

// RegisterReservations registers the reservation endpoints under /v1.
// Every role may book; whether the caller may see or change a given
// reservation is decided by the service.  Recording a payment by hand is
// reserved to managers and admins.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(allRoles...),
	)
	g.POST("/reservations", h.Create)
	g.GET("/my-reservations", h.ListMine)
	g.GET("/reservations/:id", h.Get)
	g.PATCH("/reservations/:id", h.Update)
	g.POST("/reservations/:id/cancel", h.Cancel)
	g.POST("/reservations/:id/payment", h.ApplyPayment,
		middleware.RequirePrivileged())
}
