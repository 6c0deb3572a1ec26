package booking

import "time"

// Status is the reservation status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// PaymentStatus is the payment state mirrored from the payment provider.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// IsLive reports whether a reservation with status s occupies its
// interval.  Pending reservations block the slot as much as confirmed
// ones do.
func IsLive(s Status) bool { return s != StatusCancelled }

// transitions lists the allowed status moves.  Staying in place is
// handled by the callers that allow it.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether the status machine allows from -> to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// State is the status pair of a reservation together with the
// reference of the payment that confirmed it, if any.  The pair is
// always replaced as a whole.
type State struct {
	Status     Status
	Payment    PaymentStatus
	PaymentRef string
}

// NewState is the state of a freshly created reservation.
func NewState() State {
	return State{Status: StatusPending, Payment: PaymentPending}
}

// PaymentEvent is a payment status change reported for a reservation.
type PaymentEvent struct {
	Status    PaymentStatus
	Reference string
}

// ApplyPayment derives the next state from a payment event.
//
//	paid              pending -> confirmed, no-op when already confirmed
//	failed, refunded  pending|confirmed -> cancelled
//	pending           no-op on a pending reservation
//
// Redelivering the event that produced the current state is a no-op.
// A paid event carrying a different reference than the one already
// recorded is a duplicate payment and reported as a conflict.
func ApplyPayment(s State, ev PaymentEvent) (State, error) {
	if !ev.Status.Valid() {
		return s, Validationf("unknown payment status %q", ev.Status)
	}

	if ev.Status == PaymentPaid && s.Payment == PaymentPaid &&
		s.PaymentRef != "" && ev.Reference != "" && ev.Reference != s.PaymentRef {
		return s, Conflictf(nil, "reservation already paid with reference %s", s.PaymentRef)
	}
	if ev.Status == s.Payment && (s.Status != StatusPending || ev.Status == PaymentPending) {
		return s, nil
	}

	var next Status
	switch ev.Status {
	case PaymentPaid:
		next = StatusConfirmed
	case PaymentFailed, PaymentRefunded:
		next = StatusCancelled
	default:
		return s, IllegalTransitionf("payment cannot return to pending from %s/%s", s.Status, s.Payment)
	}
	if !CanTransition(s.Status, next) {
		return s, IllegalTransitionf("payment %s not allowed on a %s reservation", ev.Status, s.Status)
	}

	out := State{Status: next, Payment: ev.Status, PaymentRef: s.PaymentRef}
	if ev.Reference != "" {
		out.PaymentRef = ev.Reference
	}
	return out, nil
}

// Cancel moves a pending or confirmed reservation to cancelled.  The
// payment status is left as it is.
func Cancel(s State) (State, error) {
	if !CanTransition(s.Status, StatusCancelled) {
		return s, IllegalTransitionf("cannot cancel a %s reservation", s.Status)
	}
	s.Status = StatusCancelled
	return s, nil
}

// IsElapsed reports whether the interval is over at now.
func IsElapsed(iv Interval, now time.Time) bool { return now.After(iv.End) }

// Complete marks a confirmed reservation whose interval has elapsed.
func Complete(s State, iv Interval, now time.Time) (State, error) {
	if !CanTransition(s.Status, StatusCompleted) {
		return s, IllegalTransitionf("cannot complete a %s reservation", s.Status)
	}
	if !IsElapsed(iv, now) {
		return s, IllegalTransitionf("reservation ends at %s and has not elapsed", iv.End.Format(DateTimeLayout))
	}
	s.Status = StatusCompleted
	return s, nil
}

// Change describes which parts of a reservation an update touches.
type Change struct {
	Interval bool
	Notes    bool
	Cancel   bool
}

// Empty reports whether the change touches nothing.
func (c Change) Empty() bool { return !c.Interval && !c.Notes && !c.Cancel }

// AuthorizeChange decides whether an actor may apply c to a
// reservation in state s.  Cancellation travels alone: it cannot be
// combined with other edits in one call.  Once a reservation is
// confirmed an ordinary actor may still cancel it but only a
// privileged actor may edit it.
func AuthorizeChange(s State, c Change, privileged bool) error {
	if c.Empty() {
		return Validationf("no changes requested")
	}
	if c.Cancel && (c.Interval || c.Notes) {
		return Validationf("cancellation cannot be combined with other changes")
	}
	switch s.Status {
	case StatusCancelled, StatusCompleted:
		return IllegalTransitionf("a %s reservation cannot be changed", s.Status)
	case StatusConfirmed:
		if !c.Cancel && !privileged {
			return IllegalTransitionf("a confirmed reservation can only be cancelled")
		}
	}
	return nil
}
