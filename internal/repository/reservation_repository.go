package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Start and
// end times are stored as DATETIME wall-clock values of the space's
// time zone; the driver is configured with loc=UTC so they come back
// unchanged.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, space_id, user_id, start_time, end_time, total_hours, total_price,
    status, payment_status, payment_ref, notes, created_at, updated_at`

func scanReservation(s rowScanner) (*model.Reservation, error) {
    var (
        res        model.Reservation
        paymentRef sql.NullString
        notes      sql.NullString
    )
    err := s.Scan(&res.ID, &res.SpaceID, &res.UserID, &res.StartTime, &res.EndTime, &res.TotalHours,
        &res.TotalPrice, &res.Status, &res.PaymentStatus, &paymentRef, &notes, &res.CreatedAt, &res.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if paymentRef.Valid {
        pr := paymentRef.String
        res.PaymentRef = &pr
    }
    if notes.Valid {
        n := notes.String
        res.Notes = &n
    }
    return &res, nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
    defer rows.Close()
    var out []model.Reservation
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *res)
    }
    return out, rows.Err()
}

func getReservation(ctx context.Context, q querier, query string, id uint64) (*model.Reservation, error) {
    res, err := scanReservation(q.QueryRowContext(ctx, query, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrReservationNotFound
    }
    return res, err
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and reads the stored row back into res so the generated
// ID and timestamps are populated.  The caller must commit or rollback
// the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
        (space_id, user_id, start_time, end_time, total_hours, total_price, status, payment_status, payment_ref, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q, res.SpaceID, res.UserID, res.StartTime, res.EndTime,
        res.TotalHours, res.TotalPrice, res.Status, res.PaymentStatus, res.PaymentRef, res.Notes)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    stored, err := getReservation(ctx, tx, "SELECT "+reservationColumns+" FROM reservations WHERE id = ?", uint64(id))
    if err != nil {
        return err
    }
    *res = *stored
    return nil
}

// UpdateTx writes back the interval, totals, status pair, payment
// reference and notes of an existing reservation.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `UPDATE reservations
        SET start_time = ?, end_time = ?, total_hours = ?, total_price = ?, status = ?, payment_status = ?,
            payment_ref = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?`
    result, err := tx.ExecContext(ctx, q, res.StartTime, res.EndTime, res.TotalHours, res.TotalPrice,
        res.Status, res.PaymentStatus, res.PaymentRef, res.Notes, res.ID)
    if err != nil {
        return err
    }
    if n, _ := result.RowsAffected(); n == 0 {
        return ErrReservationNotFound
    }
    return nil
}

// GetByID fetches a reservation regardless of owner.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    return getReservation(ctx, r.db, "SELECT "+reservationColumns+" FROM reservations WHERE id = ?", id)
}

// GetForUpdateTx fetches a reservation and locks its row.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
    return getReservation(ctx, tx, "SELECT "+reservationColumns+" FROM reservations WHERE id = ? FOR UPDATE", id)
}

const qLiveBySpace = `SELECT ` + reservationColumns + ` FROM reservations
    WHERE space_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?
    ORDER BY start_time, id`

// ListLiveBySpace returns the non-cancelled reservations of a space that
// overlap [from, to).
func (r *ReservationRepo) ListLiveBySpace(ctx context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx, qLiveBySpace, spaceID, to, from)
    if err != nil {
        return nil, err
    }
    return scanReservations(rows)
}

// ListLiveBySpaceTx is ListLiveBySpace inside a transaction.
func (r *ReservationRepo) ListLiveBySpaceTx(ctx context.Context, tx *sql.Tx, spaceID uint64, from, to time.Time) ([]model.Reservation, error) {
    rows, err := tx.QueryContext(ctx, qLiveBySpace, spaceID, to, from)
    if err != nil {
        return nil, err
    }
    return scanReservations(rows)
}

// ListByUser returns a user's reservations, most recent start first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE user_id = ? ORDER BY start_time DESC, id DESC", userID)
    if err != nil {
        return nil, err
    }
    return scanReservations(rows)
}

// ListBySpace returns every reservation of a space ordered by start.
func (r *ReservationRepo) ListBySpace(ctx context.Context, spaceID uint64) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE space_id = ? ORDER BY start_time, id", spaceID)
    if err != nil {
        return nil, err
    }
    return scanReservations(rows)
}

// ListConfirmedEndedBefore returns up to limit confirmed reservations
// whose interval ended before the given wall-clock instant.
func (r *ReservationRepo) ListConfirmedEndedBefore(ctx context.Context, before time.Time, limit int) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE status = 'confirmed' AND end_time < ? ORDER BY end_time, id LIMIT ?",
        before, limit)
    if err != nil {
        return nil, err
    }
    return scanReservations(rows)
}
