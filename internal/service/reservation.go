package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/logger"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/queue"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint64
	Role   string
}

// Privileged reports whether the actor's role is a manager or admin role.
// Whether it applies to a given reservation is decided per location.
func (a Actor) Privileged() bool { return model.IsPrivileged(a.Role) }

// ReservationService runs reservation requests against the booking
// rules.  Every write locks the space row first so that the read of
// live reservations and the insert or update that follows are atomic
// per space.
type ReservationService struct {
	store     ReservationStore
	events    EventPublisher
	cache     CacheInvalidator
	now       Clock
	slotWidth int
}

// NewReservationService wires the service.  events and cache may be nil.
func NewReservationService(store ReservationStore, events EventPublisher, cache CacheInvalidator, now Clock, slotWidth int) *ReservationService {
	if store == nil {
		panic("nil store passed to NewReservationService")
	}
	if events == nil {
		events = NopPublisher{}
	}
	if cache == nil {
		cache = nopInvalidator{}
	}
	if now == nil {
		now = WallClock(time.UTC)
	}
	if slotWidth <= 0 {
		slotWidth = booking.DefaultSlotMinutes
	}
	return &ReservationService{store: store, events: events, cache: cache, now: now, slotWidth: slotWidth}
}

// CreateInput is a request to book a space.
type CreateInput struct {
	SpaceID  uint64
	Interval booking.Interval
	Notes    *string
	// Price overrides the computed price.  Only the space's manager or an
	// admin may set it; for everyone else it is ignored.
	Price *float64
	// UserID books on behalf of another user.  Same restriction as Price.
	UserID uint64
}

// CreateReservation validates the interval against the space schedule,
// rejects overlaps with live reservations, prices the booking and
// stores it as pending/pending.
func (s *ReservationService) CreateReservation(ctx context.Context, actor Actor, in CreateInput) (*model.Reservation, error) {
	if err := in.Interval.Validate(); err != nil {
		return nil, err
	}
	if in.SpaceID == 0 {
		return nil, booking.Validationf("space id is required")
	}
	onBehalf := in.UserID != 0 && in.UserID != actor.UserID
	if onBehalf && !actor.Privileged() {
		return nil, repository.ErrForbidden
	}
	now := s.now()

	var res *model.Reservation
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx ReservationTx) error {
		space, err := tx.LockSpace(ctx, in.SpaceID)
		if err != nil {
			return err
		}
		// Privilege is per location: a manager only acts for others on
		// the spaces of a location they run.
		privileged, err := s.manages(ctx, actor, space.LocationID)
		if err != nil {
			return err
		}
		owner := actor.UserID
		if onBehalf {
			if !privileged {
				return repository.ErrForbidden
			}
			owner = in.UserID
		}
		if in.Price != nil && privileged && *in.Price <= 0 {
			return booking.Validationf("price must be positive")
		}
		sched, err := space.Schedule()
		if err != nil {
			return fmt.Errorf("space %d schedule: %w", space.ID, err)
		}
		if err := booking.Check(in.Interval, sched, now).Err(); err != nil {
			return err
		}
		if err := checkConflicts(ctx, tx, space.ID, in.Interval, 0); err != nil {
			return err
		}

		hours := in.Interval.Hours()
		var total float64
		if in.Price != nil && privileged {
			total = booking.RoundCents(*in.Price)
		} else {
			q, err := booking.Price(hours, space.Rates())
			if err != nil {
				return err
			}
			total = q.FinalPrice
		}

		r := &model.Reservation{
			SpaceID:    space.ID,
			UserID:     owner,
			StartTime:  in.Interval.Start,
			EndTime:    in.Interval.End,
			TotalHours: hours,
			TotalPrice: total,
			Notes:      cleanNotes(in.Notes),
		}
		r.SetState(booking.NewState())
		if err := tx.CreateReservation(ctx, r); err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, queue.EventReservationCreated, res, actor.UserID)
	return res, nil
}

// UpdateInput carries the fields of a partial update.  A nil field is
// left unchanged.
type UpdateInput struct {
	Interval *booking.Interval
	Notes    *string
	Cancel   bool
}

func (in UpdateInput) change() booking.Change {
	return booking.Change{Interval: in.Interval != nil, Notes: in.Notes != nil, Cancel: in.Cancel}
}

// UpdateReservation applies a partial update.  A new interval is checked
// against the schedule and the other live reservations of the space, and
// the reservation is repriced from the space's current rates.
func (s *ReservationService) UpdateReservation(ctx context.Context, actor Actor, id uint64, in UpdateInput) (*model.Reservation, error) {
	if in.Interval != nil {
		if err := in.Interval.Validate(); err != nil {
			return nil, err
		}
	}
	// Read once outside the transaction to learn the space, so that
	// locks are always taken space first, reservation second.
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	privileged, err := s.access(ctx, actor, current)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var (
		res       *model.Reservation
		eventType string
	)
	err = s.store.RunInTx(ctx, func(ctx context.Context, tx ReservationTx) error {
		space, err := tx.LockSpace(ctx, current.SpaceID)
		if err != nil {
			return err
		}
		r, err := tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := booking.AuthorizeChange(r.State(), in.change(), privileged); err != nil {
			return err
		}

		if in.Cancel {
			next, err := booking.Cancel(r.State())
			if err != nil {
				return err
			}
			r.SetState(next)
			eventType = queue.EventReservationCancelled
		} else {
			if in.Interval != nil {
				if err := reschedule(ctx, tx, space, r, *in.Interval, now); err != nil {
					return err
				}
			}
			if in.Notes != nil {
				r.Notes = cleanNotes(in.Notes)
			}
			eventType = queue.EventReservationUpdated
		}

		if err := tx.UpdateReservation(ctx, r); err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterCommit(ctx, eventType, res, actor.UserID)
	return res, nil
}

// CancelReservation cancels a pending or confirmed reservation.  The
// payment status is kept.
func (s *ReservationService) CancelReservation(ctx context.Context, actor Actor, id uint64) (*model.Reservation, error) {
	return s.UpdateReservation(ctx, actor, id, UpdateInput{Cancel: true})
}

func reschedule(ctx context.Context, tx ReservationTx, space *model.Space, r *model.Reservation, iv booking.Interval, now time.Time) error {
	sched, err := space.Schedule()
	if err != nil {
		return fmt.Errorf("space %d schedule: %w", space.ID, err)
	}
	if err := booking.Check(iv, sched, now).Err(); err != nil {
		return err
	}
	if err := checkConflicts(ctx, tx, space.ID, iv, r.ID); err != nil {
		return err
	}
	q, err := booking.Price(iv.Hours(), space.Rates())
	if err != nil {
		return err
	}
	r.StartTime, r.EndTime = iv.Start, iv.End
	r.TotalHours, r.TotalPrice = iv.Hours(), q.FinalPrice
	return nil
}

func checkConflicts(ctx context.Context, tx ReservationTx, spaceID uint64, iv booking.Interval, excludeID uint64) error {
	existing, err := tx.ListLiveReservations(ctx, spaceID, iv.Start, iv.End)
	if err != nil {
		return err
	}
	if ids := booking.Conflicts(iv, model.BookedList(existing), excludeID); len(ids) > 0 {
		return booking.Conflictf(ids, "space %d is already booked during %s", spaceID, iv)
	}
	return nil
}

// Availability is the outcome of CheckAvailability.  Quote is nil when
// the space has no usable rate plan.
type Availability struct {
	Available   bool
	Violations  []booking.Violation
	ConflictIDs []uint64
	Quote       *booking.Quote
}

// CheckAvailability reports, without writing anything, whether iv could
// be booked on the space right now.  excludeID leaves one reservation out
// of the conflict check, for previewing an edit.
func (s *ReservationService) CheckAvailability(ctx context.Context, spaceID uint64, iv booking.Interval, excludeID uint64) (*Availability, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	space, err := s.store.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	sched, err := space.Schedule()
	if err != nil {
		return nil, fmt.Errorf("space %d schedule: %w", space.ID, err)
	}
	existing, err := s.store.ListLiveReservations(ctx, spaceID, iv.Start, iv.End)
	if err != nil {
		return nil, err
	}

	comp := booking.Check(iv, sched, s.now())
	out := &Availability{
		Violations:  comp.Violations,
		ConflictIDs: booking.Conflicts(iv, model.BookedList(existing), excludeID),
	}
	out.Available = comp.OK && len(out.ConflictIDs) == 0
	if q, err := booking.Price(iv.Hours(), space.Rates()); err == nil {
		out.Quote = &q
	}
	return out, nil
}

// GetDaySlots lays out the space's opening hours on date in slots of
// widthMinutes; zero uses the configured default.
func (s *ReservationService) GetDaySlots(ctx context.Context, spaceID uint64, date time.Time, widthMinutes int) (booking.DaySlots, error) {
	if widthMinutes < 0 || widthMinutes > 24*60 {
		return booking.DaySlots{}, booking.Validationf("slot width must be between 1 and 1440 minutes")
	}
	if widthMinutes == 0 {
		widthMinutes = s.slotWidth
	}
	space, err := s.store.GetSpace(ctx, spaceID)
	if err != nil {
		return booking.DaySlots{}, err
	}
	sched, err := space.Schedule()
	if err != nil {
		return booking.DaySlots{}, fmt.Errorf("space %d schedule: %w", space.ID, err)
	}
	day := booking.DateOf(date)
	existing, err := s.store.ListLiveReservations(ctx, spaceID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return booking.DaySlots{}, err
	}
	return booking.Slots(day, sched, model.BookedList(existing), widthMinutes), nil
}

// QuotePrice prices iv with the space's current rates.
func (s *ReservationService) QuotePrice(ctx context.Context, spaceID uint64, iv booking.Interval) (booking.Quote, error) {
	if err := iv.Validate(); err != nil {
		return booking.Quote{}, err
	}
	space, err := s.store.GetSpace(ctx, spaceID)
	if err != nil {
		return booking.Quote{}, err
	}
	return booking.Price(iv.Hours(), space.Rates())
}

// ApplyPaymentEvent folds a payment status change into the reservation.
// A redelivered event leaves the reservation untouched and publishes
// nothing.
func (s *ReservationService) ApplyPaymentEvent(ctx context.Context, id uint64, ev booking.PaymentEvent) (*model.Reservation, error) {
	var (
		res     *model.Reservation
		changed bool
	)
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx ReservationTx) error {
		r, err := tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before := r.State()
		next, err := booking.ApplyPayment(before, ev)
		if err != nil {
			return err
		}
		res = r
		if next == before {
			return nil
		}
		r.SetState(next)
		changed = true
		return tx.UpdateReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		typ := queue.EventReservationConfirmed
		if booking.Status(res.Status) == booking.StatusCancelled {
			typ = queue.EventReservationCancelled
		}
		s.afterCommit(ctx, typ, res, 0)
	}
	return res, nil
}

// RecordPayment is ApplyPaymentEvent on behalf of a person: only an
// admin or the manager of the reservation's location may post payment
// status changes.
func (s *ReservationService) RecordPayment(ctx context.Context, actor Actor, id uint64, ev booking.PaymentEvent) (*model.Reservation, error) {
	r, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	privileged, err := s.access(ctx, actor, r)
	if err != nil {
		return nil, err
	}
	if !privileged {
		return nil, repository.ErrForbidden
	}
	return s.ApplyPaymentEvent(ctx, id, ev)
}

// CompleteElapsed marks up to limit confirmed reservations whose
// interval has ended as completed.  Rows that changed since they were
// listed are skipped.  It returns how many were completed.
func (s *ReservationService) CompleteElapsed(ctx context.Context, limit int) (int, error) {
	now := s.now()
	due, err := s.store.ListCompletable(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	done := 0
	var errs []error
	for i := range due {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r, err := s.complete(ctx, due[i].ID, now)
		switch {
		case booking.IsKind(err, booking.KindIllegalTransition), booking.IsKind(err, booking.KindNotFound):
			logger.DebugLogger.Debugf("complete reservation %d skipped: %v", due[i].ID, err)
		case err != nil:
			errs = append(errs, fmt.Errorf("complete reservation %d: %w", due[i].ID, err))
		default:
			done++
			s.afterCommit(ctx, queue.EventReservationCompleted, r, 0)
		}
	}
	return done, errors.Join(errs...)
}

func (s *ReservationService) complete(ctx context.Context, id uint64, now time.Time) (*model.Reservation, error) {
	var res *model.Reservation
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx ReservationTx) error {
		r, err := tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return err
		}
		next, err := booking.Complete(r.State(), r.Interval(), now)
		if err != nil {
			return err
		}
		r.SetState(next)
		res = r
		return tx.UpdateReservation(ctx, r)
	})
	return res, err
}

// GetReservation returns a reservation the actor may see.  Reservations
// of other users are reported as not found.
func (s *ReservationService) GetReservation(ctx context.Context, actor Actor, id uint64) (*model.Reservation, error) {
	r, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.access(ctx, actor, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListMyReservations lists the actor's own reservations, newest first.
func (s *ReservationService) ListMyReservations(ctx context.Context, actor Actor) ([]model.Reservation, error) {
	return s.store.ListUserReservations(ctx, actor.UserID)
}

// ListSpaceReservations lists every reservation of a space.  Managers see
// the spaces of their own locations; admins see all.
func (s *ReservationService) ListSpaceReservations(ctx context.Context, actor Actor, spaceID uint64) ([]model.Reservation, error) {
	space, err := s.store.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	ok, err := s.manages(ctx, actor, space.LocationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrForbidden
	}
	return s.store.ListSpaceReservations(ctx, spaceID)
}

// access decides whether actor may act on r.  It returns whether the
// actor acts with privilege over it: admins always, managers on the
// spaces of their own locations.  Anyone else must own the reservation.
func (s *ReservationService) access(ctx context.Context, actor Actor, r *model.Reservation) (bool, error) {
	if actor.Privileged() {
		space, err := s.store.GetSpace(ctx, r.SpaceID)
		if err != nil {
			return false, err
		}
		ok, err := s.manages(ctx, actor, space.LocationID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	if r.UserID != actor.UserID {
		return false, repository.ErrReservationNotFound
	}
	return false, nil
}

func (s *ReservationService) manages(ctx context.Context, actor Actor, locationID uint64) (bool, error) {
	switch actor.Role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleManager:
		loc, err := s.store.GetLocation(ctx, locationID)
		if err != nil {
			return false, err
		}
		return loc.ManagerID == actor.UserID, nil
	}
	return false, nil
}

// afterCommit publishes the change and drops cached views of the space.
// Both are best effort: the reservation is already stored.
func (s *ReservationService) afterCommit(ctx context.Context, typ string, r *model.Reservation, actorID uint64) {
	ev := queue.NewReservationEvent(typ, r, actorID, time.Now())
	if err := s.events.PublishReservation(ctx, ev); err != nil {
		logger.ErrorLogger.WithField("reservation_id", r.ID).Warnf("publish %s: %v", typ, err)
	}
	if err := s.cache.InvalidateSpace(ctx, r.SpaceID); err != nil {
		logger.ErrorLogger.WithField("space_id", r.SpaceID).Warnf("cache invalidation: %v", err)
	}
	logger.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": r.ID,
		"space_id":       r.SpaceID,
		"status":         r.Status,
	}).Info(typ)
}

func cleanNotes(n *string) *string {
	if n == nil {
		return nil
	}
	v := strings.TrimSpace(*n)
	if v == "" {
		return nil
	}
	return &v
}
