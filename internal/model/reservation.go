package model

import (
    "time"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
)

// Reservation records a user's booking of one space for a span of
// time.  StartTime and EndTime are wall-clock values of the space's
// time zone.  TotalHours and TotalPrice are derived when the interval
// is set and stored so later rate changes do not reprice old bookings.
//
// Fields:
//  ID            – primary key identifier.
//  SpaceID       – space being reserved.
//  UserID        – user who made the reservation.
//  StartTime     – start of the reserved interval (inclusive).
//  EndTime       – end of the reserved interval (exclusive).
//  TotalHours    – length of the interval in hours.
//  TotalPrice    – price charged for the interval.
//  Status        – pending, confirmed, cancelled or completed.
//  PaymentStatus – pending, paid, failed or refunded.
//  PaymentRef    – external payment reference, if any.
//  Notes         – free text left by the customer.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
    ID            uint64    // reservations.id
    SpaceID       uint64    // reservations.space_id
    UserID        uint64    // reservations.user_id
    StartTime     time.Time // reservations.start_time
    EndTime       time.Time // reservations.end_time
    TotalHours    float64   // reservations.total_hours
    TotalPrice    float64   // reservations.total_price
    Status        string    // reservations.status
    PaymentStatus string    // reservations.payment_status
    PaymentRef    *string   // reservations.payment_ref (nullable)
    Notes         *string   // reservations.notes (nullable)
    CreatedAt     time.Time // reservations.created_at
    UpdatedAt     time.Time // reservations.updated_at
}

// Interval returns the reserved span.
func (r *Reservation) Interval() booking.Interval {
    return booking.Interval{Start: r.StartTime, End: r.EndTime}
}

// State returns the status pair with the payment reference.
func (r *Reservation) State() booking.State {
    s := booking.State{Status: booking.Status(r.Status), Payment: booking.PaymentStatus(r.PaymentStatus)}
    if r.PaymentRef != nil {
        s.PaymentRef = *r.PaymentRef
    }
    return s
}

// SetState replaces the status pair and payment reference together.
func (r *Reservation) SetState(s booking.State) {
    r.Status = string(s.Status)
    r.PaymentStatus = string(s.Payment)
    if s.PaymentRef != "" {
        ref := s.PaymentRef
        r.PaymentRef = &ref
    }
}

// Booked is the view of the reservation used by conflict checks.
func (r *Reservation) Booked() booking.Booked {
    return booking.Booked{ID: r.ID, Interval: r.Interval(), Status: booking.Status(r.Status)}
}

// BookedList converts reservations for conflict checks.
func BookedList(rs []Reservation) []booking.Booked {
    out := make([]booking.Booked, 0, len(rs))
    for i := range rs {
        out = append(out, rs[i].Booked())
    }
    return out
}
