package service

import (
	"context"
	"time"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
)

// ReservationStore is the persistence the reservation service reads
// from outside a transaction and the entry point for transactional work.
type ReservationStore interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx ReservationTx) error) error
	GetLocation(ctx context.Context, id uint64) (*model.Location, error)
	GetSpace(ctx context.Context, id uint64) (*model.Space, error)
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	ListLiveReservations(ctx context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error)
	ListUserReservations(ctx context.Context, userID uint64) ([]model.Reservation, error)
	ListSpaceReservations(ctx context.Context, spaceID uint64) ([]model.Reservation, error)
	ListCompletable(ctx context.Context, before time.Time, limit int) ([]model.Reservation, error)
}

// ReservationTx is the set of reads and writes that run inside one
// transaction.  LockSpace must be called before reading the live
// reservations a write is checked against.
type ReservationTx interface {
	LockSpace(ctx context.Context, id uint64) (*model.Space, error)
	GetReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error)
	ListLiveReservations(ctx context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, r *model.Reservation) error
	UpdateReservation(ctx context.Context, r *model.Reservation) error
}

// sqlStore adapts the MySQL booking store to ReservationStore.
type sqlStore struct {
	*repository.BookingStore
}

// NewSQLStore wraps a repository.BookingStore.
func NewSQLStore(bs *repository.BookingStore) ReservationStore {
	return sqlStore{bs}
}

func (s sqlStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx ReservationTx) error) error {
	return s.BookingStore.RunInTx(ctx, func(ctx context.Context, tx *repository.BookingTx) error {
		return fn(ctx, tx)
	})
}

// CacheInvalidator drops cached public responses for a space after its
// bookings change.
type CacheInvalidator interface {
	InvalidateSpace(ctx context.Context, spaceID uint64) error
}

type nopInvalidator struct{}

func (nopInvalidator) InvalidateSpace(context.Context, uint64) error { return nil }

// Clock returns the current wall-clock time of the spaces' time zone
// as a naive value in the UTC location, matching stored reservations.
type Clock func() time.Time

// WallClock builds a Clock for loc.
func WallClock(loc *time.Location) Clock {
	return func() time.Time { return ToWall(time.Now(), loc) }
}

// ToWall re-expresses t as the wall-clock reading in loc, labelled UTC.
func ToWall(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), time.UTC)
}
