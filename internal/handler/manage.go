package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// ManageHandler lets managers and admins maintain locations and spaces.
// Ownership is enforced by the service; the router only checks roles.
type ManageHandler struct {
    spaces SpaceAPI
}

func NewManageHandler(spaces SpaceAPI) *ManageHandler {
    if spaces == nil {
        panic("nil space service passed to NewManageHandler")
    }
    return &ManageHandler{spaces: spaces}
}

type locationReq struct {
    Name      string  `json:"name" validate:"required,max=255"`
    Address   string  `json:"address" validate:"required,max=255"`
    City      *string `json:"city" validate:"omitempty,max=100"`
    ManagerID uint64  `json:"manager_id"`
}

func (r locationReq) model(id uint64) *model.Location {
    return &model.Location{ID: id, Name: r.Name, Address: r.Address, City: r.City, ManagerID: r.ManagerID}
}

// ListLocations handles GET /v1/manage/locations.
func (h *ManageHandler) ListLocations(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    locs, err := h.spaces.ListManagedLocations(c.Request().Context(), actor)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]locationResp, 0, len(locs))
    for _, l := range locs {
        out = append(out, toLocation(l, true))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateLocation handles POST /v1/manage/locations.
func (h *ManageHandler) CreateLocation(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req locationReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    l := req.model(0)
    if err := h.spaces.CreateLocation(c.Request().Context(), actor, l); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, toLocation(l, true))
}

// UpdateLocation handles PUT /v1/manage/locations/:id.
func (h *ManageHandler) UpdateLocation(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid location id")
    }
    var req locationReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    l := req.model(id)
    if err := h.spaces.UpdateLocation(c.Request().Context(), actor, l); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toLocation(l, true))
}

// DeleteLocation handles DELETE /v1/manage/locations/:id.  A location
// that still has spaces answers 409.
func (h *ManageHandler) DeleteLocation(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid location id")
    }
    if err := h.spaces.DeleteLocation(c.Request().Context(), actor, id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// spaceReq is the body of space create and update.  available_days
// holds ISO weekdays, 1 = Monday through 7 = Sunday.
type spaceReq struct {
    LocationID      uint64  `json:"location_id"`
    Name            string  `json:"name" validate:"required,max=255"`
    Description     *string `json:"description" validate:"omitempty,max=2000"`
    Capacity        uint32  `json:"capacity" validate:"required,min=1"`
    OpeningTime     string  `json:"opening_time" validate:"required"`
    ClosingTime     string  `json:"closing_time" validate:"required"`
    AvailableDays   []int   `json:"available_days" validate:"required,min=1,dive,min=1,max=7"`
    MinBookingHours float64 `json:"min_booking_hours" validate:"gte=0"`
    MaxBookingHours float64 `json:"max_booking_hours" validate:"gte=0"`
    MaxAdvanceDays  int     `json:"max_advance_days" validate:"gte=0"`
    PricePerHour    float64 `json:"price_per_hour" validate:"gte=0"`
    PricePerDay     float64 `json:"price_per_day" validate:"gte=0"`
    Status          string  `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

func (r spaceReq) model(id uint64) *model.Space {
    days := make([]booking.Weekday, 0, len(r.AvailableDays))
    for _, d := range r.AvailableDays {
        days = append(days, booking.Weekday(d))
    }
    return &model.Space{
        ID:              id,
        LocationID:      r.LocationID,
        Name:            r.Name,
        Description:     r.Description,
        Capacity:        r.Capacity,
        OpeningTime:     r.OpeningTime,
        ClosingTime:     r.ClosingTime,
        AvailableDays:   booking.NewWeekdaySet(days...).String(),
        MinBookingHours: r.MinBookingHours,
        MaxBookingHours: r.MaxBookingHours,
        MaxAdvanceDays:  r.MaxAdvanceDays,
        PricePerHour:    r.PricePerHour,
        PricePerDay:     r.PricePerDay,
        Status:          r.Status,
    }
}

// CreateSpace handles POST /v1/manage/spaces.
func (h *ManageHandler) CreateSpace(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req spaceReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    if req.LocationID == 0 {
        return badRequest(c, "location_id is required")
    }
    sp := req.model(0)
    if err := h.spaces.CreateSpace(c.Request().Context(), actor, sp); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, toSpace(sp))
}

// UpdateSpace handles PUT /v1/manage/spaces/:id.  A space cannot be
// moved to another location; location_id is ignored.
func (h *ManageHandler) UpdateSpace(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    var req spaceReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    sp := req.model(id)
    if err := h.spaces.UpdateSpace(c.Request().Context(), actor, sp); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toSpace(sp))
}

// DeleteSpace handles DELETE /v1/manage/spaces/:id.  Spaces with
// upcoming live reservations answer 409.
func (h *ManageHandler) DeleteSpace(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    if err := h.spaces.DeleteSpace(c.Request().Context(), actor, id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
