package queue

import (
    "context"
    "encoding/json"
    "fmt"

    "github.com/sirupsen/logrus"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// BookingLogHandler appends every reservation event to the booking log
// as one structured line.
func BookingLogHandler(out *logrus.Logger) Handler {
    return func(_ context.Context, body []byte) error {
        var ev ReservationEvent
        if err := json.Unmarshal(body, &ev); err != nil {
            return fmt.Errorf("unmarshal: %w", err)
        }
        if ev.Type == "" || ev.ReservationID == 0 {
            return fmt.Errorf("incomplete event %q", body)
        }
        out.WithFields(logrus.Fields{
            "event_id":       ev.EventID,
            "reservation_id": ev.ReservationID,
            "space_id":       ev.SpaceID,
            "user_id":        ev.UserID,
            "start":          ev.Start,
            "end":            ev.End,
            "total_price":    ev.TotalPrice,
            "status":         ev.Status,
            "payment_status": ev.PaymentStatus,
            "occurred_at":    ev.OccurredAt,
        }).Info(ev.Type)
        return nil
    }
}

// PaymentApplier is the part of the reservation service the payment
// consumer drives.
type PaymentApplier interface {
    ApplyPaymentEvent(ctx context.Context, reservationID uint64, ev booking.PaymentEvent) (*model.Reservation, error)
}

// PaymentHandler feeds payment status messages into the reservation
// lifecycle.  Messages for unknown reservations and illegal transitions
// are acknowledged after logging and malformed ones are rejected;
// storage failures are returned as Retryable.
func PaymentHandler(svc PaymentApplier, log *logrus.Logger) Handler {
    return func(ctx context.Context, body []byte) error {
        var msg PaymentMessage
        if err := json.Unmarshal(body, &msg); err != nil {
            return fmt.Errorf("unmarshal: %w", err)
        }
        if msg.ReservationID == 0 {
            return fmt.Errorf("payment message without reservation_id")
        }
        r, err := svc.ApplyPaymentEvent(ctx, msg.ReservationID, msg.Event())
        switch booking.KindOf(err) {
        case "":
            if err != nil {
                return Retryable(fmt.Errorf("apply payment to reservation %d: %w", msg.ReservationID, err))
            }
            log.Infof("payment %s applied to reservation %d: %s/%s", msg.Status, r.ID, r.Status, r.PaymentStatus)
            return nil
        case booking.KindValidation:
            return err
        default:
            log.Warnf("payment %s for reservation %d ignored: %v", msg.Status, msg.ReservationID, err)
            return nil
        }
    }
}
