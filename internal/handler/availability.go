package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
)

// Slots handles GET /v1/spaces/:id/slots?date=2006-01-02&width=60.
// width is in minutes and defaults to the configured slot width.
func (h *ReservationHandler) Slots(c echo.Context) error {
    spaceID, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    date, err := booking.ParseDate(c.QueryParam("date"))
    if err != nil {
        return respondError(c, err)
    }
    width := 0
    if v := c.QueryParam("width"); v != "" {
        width, err = strconv.Atoi(v)
        if err != nil {
            return badRequest(c, "width must be a number of minutes")
        }
    }
    day, err := h.svc.GetDaySlots(c.Request().Context(), spaceID, date, width)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toDaySlots(day))
}

// Availability handles GET /v1/spaces/:id/availability?start=&end=&exclude=.
// It always answers 200 when the request is well formed; the body tells
// whether the interval can be booked and why not.
func (h *ReservationHandler) Availability(c echo.Context) error {
    spaceID, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    iv, err := intervalQuery(c)
    if err != nil {
        return respondError(c, err)
    }
    var exclude uint64
    if v := c.QueryParam("exclude"); v != "" {
        exclude, err = strconv.ParseUint(v, 10, 64)
        if err != nil {
            return badRequest(c, "invalid exclude id")
        }
    }
    a, err := h.svc.CheckAvailability(c.Request().Context(), spaceID, iv, exclude)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toAvailability(a))
}

// Quote handles GET /v1/spaces/:id/quote?start=&end=.
func (h *ReservationHandler) Quote(c echo.Context) error {
    spaceID, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    iv, err := intervalQuery(c)
    if err != nil {
        return respondError(c, err)
    }
    q, err := h.svc.QuotePrice(c.Request().Context(), spaceID, iv)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toQuote(q))
}
