package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// BookingStore bundles the repositories the reservation service needs
// and runs multi-statement work in one transaction.
type BookingStore struct {
	db           *sql.DB
	Locations    *LocationRepo
	Spaces       *SpaceRepo
	Reservations *ReservationRepo
}

// NewBookingStore wires the repositories on top of db.
func NewBookingStore(db *sql.DB) *BookingStore {
	return &BookingStore{
		db:           db,
		Locations:    NewLocationRepo(db),
		Spaces:       NewSpaceRepo(db),
		Reservations: NewReservationRepo(db),
	}
}

// RunInTx begins a transaction, hands it to fn and commits when fn
// returns nil.  Any error from fn, or a panic, rolls the transaction back.
func (s *BookingStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *BookingTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, &BookingTx{tx: tx, store: s}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *BookingStore) GetLocation(ctx context.Context, id uint64) (*model.Location, error) {
	return s.Locations.GetByID(ctx, id)
}

func (s *BookingStore) GetSpace(ctx context.Context, id uint64) (*model.Space, error) {
	return s.Spaces.GetByID(ctx, id)
}

func (s *BookingStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.Reservations.GetByID(ctx, id)
}

func (s *BookingStore) ListLiveReservations(ctx context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error) {
	return s.Reservations.ListLiveBySpace(ctx, spaceID, from, to)
}

func (s *BookingStore) ListUserReservations(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return s.Reservations.ListByUser(ctx, userID)
}

func (s *BookingStore) ListSpaceReservations(ctx context.Context, spaceID uint64) ([]model.Reservation, error) {
	return s.Reservations.ListBySpace(ctx, spaceID)
}

func (s *BookingStore) ListCompletable(ctx context.Context, before time.Time, limit int) ([]model.Reservation, error) {
	return s.Reservations.ListConfirmedEndedBefore(ctx, before, limit)
}

// BookingTx exposes the reservation writes available inside RunInTx.
type BookingTx struct {
	tx    *sql.Tx
	store *BookingStore
}

// LockSpace reads the space with FOR UPDATE.
func (t *BookingTx) LockSpace(ctx context.Context, id uint64) (*model.Space, error) {
	return t.store.Spaces.GetForUpdateTx(ctx, t.tx, id)
}

func (t *BookingTx) GetReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	return t.store.Reservations.GetForUpdateTx(ctx, t.tx, id)
}

func (t *BookingTx) ListLiveReservations(ctx context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error) {
	return t.store.Reservations.ListLiveBySpaceTx(ctx, t.tx, spaceID, from, to)
}

func (t *BookingTx) CreateReservation(ctx context.Context, r *model.Reservation) error {
	return t.store.Reservations.CreateTx(ctx, t.tx, r)
}

func (t *BookingTx) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	return t.store.Reservations.UpdateTx(ctx, t.tx, r)
}
