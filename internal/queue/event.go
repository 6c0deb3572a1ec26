// Package queue defines message payloads exchanged over the message broker
// and the consumers that process them.
package queue

import (
    "time"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// Reservation event types published on the reservation events queue.
const (
    EventReservationCreated   = "reservation.created"
    EventReservationUpdated   = "reservation.updated"
    EventReservationConfirmed = "reservation.confirmed"
    EventReservationCancelled = "reservation.cancelled"
    EventReservationCompleted = "reservation.completed"
)

// ReservationEvent is published whenever a reservation changes.  It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type ReservationEvent struct {
    EventID       string  `json:"event_id"`
    Type          string  `json:"type"`
    ReservationID uint64  `json:"reservation_id"`
    SpaceID       uint64  `json:"space_id"`
    UserID        uint64  `json:"user_id"`
    ActorID       uint64  `json:"actor_id,omitempty"`
    Start         string  `json:"start"`
    End           string  `json:"end"`
    TotalHours    float64 `json:"total_hours"`
    TotalPrice    float64 `json:"total_price"`
    Status        string  `json:"status"`
    PaymentStatus string  `json:"payment_status"`
    OccurredAt    string  `json:"occurred_at"`
}

// NewReservationEvent snapshots r into an event of the given type.
// EventID is left for the publisher to assign.
func NewReservationEvent(typ string, r *model.Reservation, actorID uint64, at time.Time) ReservationEvent {
    return ReservationEvent{
        Type:          typ,
        ReservationID: r.ID,
        SpaceID:       r.SpaceID,
        UserID:        r.UserID,
        ActorID:       actorID,
        Start:         r.StartTime.Format(booking.DateTimeLayout),
        End:           r.EndTime.Format(booking.DateTimeLayout),
        TotalHours:    r.TotalHours,
        TotalPrice:    r.TotalPrice,
        Status:        r.Status,
        PaymentStatus: r.PaymentStatus,
        OccurredAt:    at.UTC().Format(time.RFC3339),
    }
}

// PaymentMessage is consumed from the payment events queue.  The
// payment provider integration posts one per status change.
type PaymentMessage struct {
    ReservationID uint64 `json:"reservation_id"`
    Status        string `json:"status"`
    Reference     string `json:"reference"`
}

// Event converts the message into the booking payment event.
func (m PaymentMessage) Event() booking.PaymentEvent {
    return booking.PaymentEvent{Status: booking.PaymentStatus(m.Status), Reference: m.Reference}
}
