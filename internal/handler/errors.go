package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/logger"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
)

// kindStatus maps booking error kinds to HTTP status codes.
var kindStatus = map[booking.Kind]int{
    booking.KindValidation:        http.StatusBadRequest,
    booking.KindNotFound:          http.StatusNotFound,
    booking.KindPolicyViolation:   http.StatusUnprocessableEntity,
    booking.KindConflict:          http.StatusConflict,
    booking.KindIllegalTransition: http.StatusConflict,
}

// respondError writes err as a JSON error response.  Booking errors keep
// their category and detail; anything unrecognised is logged and
// reported as a 500 without leaking the cause.
func respondError(c echo.Context, err error) error {
    var be *booking.Error
    switch {
    case errors.As(err, &be):
        body := echo.Map{"error": string(be.Kind), "message": be.Message}
        if len(be.Violations) > 0 {
            body["violations"] = be.Violations
        }
        if len(be.ConflictIDs) > 0 {
            body["conflict_ids"] = be.ConflictIDs
        }
        return c.JSON(kindStatus[be.Kind], body)
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflict", "message": "resource is in use or already exists"})
    }
    logger.ErrorLogger.WithField("path", c.Path()).Errorf("unhandled error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": string(booking.KindValidation), "message": msg})
}
