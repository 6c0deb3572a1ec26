package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/service"
)

// ReservationAPI is the part of service.ReservationService the HTTP
// layer depends on.
type ReservationAPI interface {
    CreateReservation(ctx context.Context, actor service.Actor, in service.CreateInput) (*model.Reservation, error)
    UpdateReservation(ctx context.Context, actor service.Actor, id uint64, in service.UpdateInput) (*model.Reservation, error)
    CancelReservation(ctx context.Context, actor service.Actor, id uint64) (*model.Reservation, error)
    GetReservation(ctx context.Context, actor service.Actor, id uint64) (*model.Reservation, error)
    ListMyReservations(ctx context.Context, actor service.Actor) ([]model.Reservation, error)
    ListSpaceReservations(ctx context.Context, actor service.Actor, spaceID uint64) ([]model.Reservation, error)
    RecordPayment(ctx context.Context, actor service.Actor, id uint64, ev booking.PaymentEvent) (*model.Reservation, error)
    CheckAvailability(ctx context.Context, spaceID uint64, iv booking.Interval, excludeID uint64) (*service.Availability, error)
    GetDaySlots(ctx context.Context, spaceID uint64, date time.Time, widthMinutes int) (booking.DaySlots, error)
    QuotePrice(ctx context.Context, spaceID uint64, iv booking.Interval) (booking.Quote, error)
}

// ReservationHandler serves the reservation endpoints.  Every method
// expects JWTAuth to have run.
type ReservationHandler struct {
    svc ReservationAPI
}

func NewReservationHandler(svc ReservationAPI) *ReservationHandler {
    if svc == nil {
        panic("nil reservation service passed to NewReservationHandler")
    }
    return &ReservationHandler{svc: svc}
}

type createReservationReq struct {
    SpaceID uint64   `json:"space_id" validate:"required"`
    Start   string   `json:"start" validate:"required"`
    End     string   `json:"end" validate:"required"`
    Notes   *string  `json:"notes" validate:"omitempty,max=1000"`
    Price   *float64 `json:"price" validate:"omitempty,gt=0"`
    UserID  uint64   `json:"user_id"`
}

// Create handles POST /v1/reservations.  Start and end use the layout
// "2006-01-02 15:04:05" and are read as wall-clock times of the space.
func (h *ReservationHandler) Create(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createReservationReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    iv, err := booking.ParseInterval(req.Start, req.End)
    if err != nil {
        return respondError(c, err)
    }
    res, err := h.svc.CreateReservation(c.Request().Context(), actor, service.CreateInput{
        SpaceID:  req.SpaceID,
        Interval: iv,
        Notes:    req.Notes,
        Price:    req.Price,
        UserID:   req.UserID,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, toReservation(res))
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid reservation id")
    }
    res, err := h.svc.GetReservation(c.Request().Context(), actor, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toReservation(res))
}

// ListMine handles GET /v1/my-reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    rs, err := h.svc.ListMyReservations(c.Request().Context(), actor)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": toReservations(rs)})
}

type updateReservationReq struct {
    Start  *string `json:"start"`
    End    *string `json:"end"`
    Notes  *string `json:"notes" validate:"omitempty,max=1000"`
    Cancel bool    `json:"cancel"`
}

// Update handles PATCH /v1/reservations/:id.  Start and end must be sent
// together; omitted fields are left as they are.
func (h *ReservationHandler) Update(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid reservation id")
    }
    var req updateReservationReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    in := service.UpdateInput{Notes: req.Notes, Cancel: req.Cancel}
    switch {
    case req.Start != nil && req.End != nil:
        iv, err := booking.ParseInterval(*req.Start, *req.End)
        if err != nil {
            return respondError(c, err)
        }
        in.Interval = &iv
    case req.Start != nil || req.End != nil:
        return badRequest(c, "start and end must be given together")
    }
    res, err := h.svc.UpdateReservation(c.Request().Context(), actor, id, in)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toReservation(res))
}

// Cancel handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid reservation id")
    }
    res, err := h.svc.CancelReservation(c.Request().Context(), actor, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toReservation(res))
}

type paymentReq struct {
    Status    string `json:"status" validate:"required,oneof=pending paid failed refunded"`
    Reference string `json:"reference" validate:"max=255"`
}

// ApplyPayment handles POST /v1/reservations/:id/payment.  It is the
// synchronous twin of the payment event consumer.  The router admits
// managers and admins; the service limits managers to their locations.
func (h *ReservationHandler) ApplyPayment(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid reservation id")
    }
    var req paymentReq
    if msg, ok := bind(c, &req); !ok {
        return badRequest(c, msg)
    }
    res, err := h.svc.RecordPayment(c.Request().Context(), actor, id, booking.PaymentEvent{
        Status:    booking.PaymentStatus(req.Status),
        Reference: req.Reference,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toReservation(res))
}

// ListForSpace handles GET /v1/manage/spaces/:id/reservations.
func (h *ReservationHandler) ListForSpace(c echo.Context) error {
    actor, ok := actorOf(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    spaceID, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid space id")
    }
    rs, err := h.svc.ListSpaceReservations(c.Request().Context(), actor, spaceID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": toReservations(rs)})
}
