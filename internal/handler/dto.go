package handler

import (
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/middleware"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/service"
)

// Response bodies.  Instants are rendered in the wall-clock layout
// "2006-01-02 15:04:05" used on input.

type reservationResp struct {
    ID            uint64    `json:"id"`
    SpaceID       uint64    `json:"space_id"`
    UserID        uint64    `json:"user_id"`
    Start         string    `json:"start"`
    End           string    `json:"end"`
    TotalHours    float64   `json:"total_hours"`
    TotalPrice    float64   `json:"total_price"`
    Status        string    `json:"status"`
    PaymentStatus string    `json:"payment_status"`
    PaymentRef    *string   `json:"payment_ref,omitempty"`
    Notes         *string   `json:"notes,omitempty"`
    CreatedAt     time.Time `json:"created_at"`
}

func toReservation(r *model.Reservation) reservationResp {
    return reservationResp{
        ID:            r.ID,
        SpaceID:       r.SpaceID,
        UserID:        r.UserID,
        Start:         r.StartTime.Format(booking.DateTimeLayout),
        End:           r.EndTime.Format(booking.DateTimeLayout),
        TotalHours:    r.TotalHours,
        TotalPrice:    r.TotalPrice,
        Status:        r.Status,
        PaymentStatus: r.PaymentStatus,
        PaymentRef:    r.PaymentRef,
        Notes:         r.Notes,
        CreatedAt:     r.CreatedAt,
    }
}

func toReservations(rs []model.Reservation) []reservationResp {
    out := make([]reservationResp, 0, len(rs))
    for i := range rs {
        out = append(out, toReservation(&rs[i]))
    }
    return out
}

type locationResp struct {
    ID        uint64  `json:"id"`
    ManagerID uint64  `json:"manager_id,omitempty"`
    Name      string  `json:"name"`
    Address   string  `json:"address"`
    City      *string `json:"city,omitempty"`
}

// toLocation renders a location; the manager is only shown to managers.
func toLocation(l *model.Location, withManager bool) locationResp {
    out := locationResp{ID: l.ID, Name: l.Name, Address: l.Address, City: l.City}
    if withManager {
        out.ManagerID = l.ManagerID
    }
    return out
}

type spaceResp struct {
    ID              uint64  `json:"id"`
    LocationID      uint64  `json:"location_id"`
    Name            string  `json:"name"`
    Description     *string `json:"description,omitempty"`
    Capacity        uint32  `json:"capacity"`
    OpeningTime     string  `json:"opening_time"`
    ClosingTime     string  `json:"closing_time"`
    AvailableDays   []int   `json:"available_days"`
    MinBookingHours float64 `json:"min_booking_hours"`
    MaxBookingHours float64 `json:"max_booking_hours"`
    MaxAdvanceDays  int     `json:"max_advance_days"`
    PricePerHour    float64 `json:"price_per_hour"`
    PricePerDay     float64 `json:"price_per_day"`
    Status          string  `json:"status"`
}

func toSpace(sp *model.Space) spaceResp {
    days := []int{}
    if set, err := booking.ParseWeekdaySet(sp.AvailableDays); err == nil {
        for _, d := range set.Sorted() {
            days = append(days, int(d))
        }
    }
    return spaceResp{
        ID:              sp.ID,
        LocationID:      sp.LocationID,
        Name:            sp.Name,
        Description:     sp.Description,
        Capacity:        sp.Capacity,
        OpeningTime:     sp.OpeningTime,
        ClosingTime:     sp.ClosingTime,
        AvailableDays:   days,
        MinBookingHours: sp.MinBookingHours,
        MaxBookingHours: sp.MaxBookingHours,
        MaxAdvanceDays:  sp.MaxAdvanceDays,
        PricePerHour:    sp.PricePerHour,
        PricePerDay:     sp.PricePerDay,
        Status:          sp.Status,
    }
}

type quoteResp struct {
    Hours       float64 `json:"hours"`
    HourlyTotal float64 `json:"hourly_total"`
    DailyTotal  float64 `json:"daily_total"`
    FinalPrice  float64 `json:"final_price"`
    Basis       string  `json:"basis"`
}

func toQuote(q booking.Quote) quoteResp {
    return quoteResp{
        Hours:       q.Hours,
        HourlyTotal: q.HourlyTotal,
        DailyTotal:  q.DailyTotal,
        FinalPrice:  q.FinalPrice,
        Basis:       string(q.Basis),
    }
}

type slotResp struct {
    Start       string   `json:"start"`
    End         string   `json:"end"`
    Occupied    bool     `json:"occupied"`
    ConflictIDs []uint64 `json:"conflict_ids,omitempty"`
}

type daySlotsResp struct {
    Date         string     `json:"date"`
    DayAvailable bool       `json:"day_available"`
    WidthMinutes int        `json:"width_minutes"`
    Slots        []slotResp `json:"slots"`
    Available    []slotResp `json:"available"`
    Occupied     []slotResp `json:"occupied"`
}

func toSlots(ss []booking.Slot) []slotResp {
    out := make([]slotResp, 0, len(ss))
    for _, s := range ss {
        out = append(out, slotResp{
            Start:       s.Interval.Start.Format(booking.DateTimeLayout),
            End:         s.Interval.End.Format(booking.DateTimeLayout),
            Occupied:    s.Occupied,
            ConflictIDs: s.ConflictIDs,
        })
    }
    return out
}

func toDaySlots(d booking.DaySlots) daySlotsResp {
    return daySlotsResp{
        Date:         d.Date.Format(booking.DateLayout),
        DayAvailable: d.DayAvailable,
        WidthMinutes: d.WidthMinutes,
        Slots:        toSlots(d.All),
        Available:    toSlots(d.Available),
        Occupied:     toSlots(d.Occupied),
    }
}

type availabilityResp struct {
    Available   bool                `json:"available"`
    Violations  []booking.Violation `json:"violations"`
    ConflictIDs []uint64            `json:"conflict_ids"`
    Quote       *quoteResp          `json:"quote,omitempty"`
}

func toAvailability(a *service.Availability) availabilityResp {
    out := availabilityResp{
        Available:   a.Available,
        Violations:  a.Violations,
        ConflictIDs: a.ConflictIDs,
    }
    if out.Violations == nil {
        out.Violations = []booking.Violation{}
    }
    if out.ConflictIDs == nil {
        out.ConflictIDs = []uint64{}
    }
    if a.Quote != nil {
        q := toQuote(*a.Quote)
        out.Quote = &q
    }
    return out
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id > 0
}

// actorOf returns the authenticated caller.
func actorOf(c echo.Context) (service.Actor, bool) {
    id, ok := middleware.UserID(c)
    if !ok {
        return service.Actor{}, false
    }
    return service.Actor{UserID: id, Role: middleware.Role(c)}, true
}

// intervalQuery reads the start and end query parameters.
func intervalQuery(c echo.Context) (booking.Interval, error) {
    return booking.ParseInterval(c.QueryParam("start"), c.QueryParam("end"))
}
