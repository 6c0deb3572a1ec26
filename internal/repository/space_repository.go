package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"
	"time"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// SpaceRepo provides methods to create, retrieve and lock spaces.
type SpaceRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewSpaceRepo constructs a SpaceRepo with the given DB handle.
func NewSpaceRepo(db *sql.DB) *SpaceRepo {
	return &SpaceRepo{db: db}
}

const spaceColumns = `id, location_id, name, description, capacity, opening_time, closing_time,
	available_days, min_booking_hours, max_booking_hours, max_advance_days,
	price_per_hour, price_per_day, status, created_at, updated_at`

func scanSpace(s rowScanner) (*model.Space, error) {
	var (
		sp   model.Space
		desc sql.NullString
	)
	err := s.Scan(&sp.ID, &sp.LocationID, &sp.Name, &desc, &sp.Capacity, &sp.OpeningTime, &sp.ClosingTime,
		&sp.AvailableDays, &sp.MinBookingHours, &sp.MaxBookingHours, &sp.MaxAdvanceDays,
		&sp.PricePerHour, &sp.PricePerDay, &sp.Status, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		sp.Description = &desc.String
	}
	return &sp, nil
}

func getSpace(ctx context.Context, q querier, query string, id uint64) (*model.Space, error) {
	sp, err := scanSpace(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	return sp, err
}

// Create inserts a new space.  The caller validates the schedule and
// rates beforehand.  After insert the stored row is read back so the
// timestamps are populated.
func (r *SpaceRepo) Create(ctx context.Context, sp *model.Space) error {
	const qInsert = `INSERT INTO spaces (location_id, name, description, capacity, opening_time, closing_time,
	                 available_days, min_booking_hours, max_booking_hours, max_advance_days,
	                 price_per_hour, price_per_day, status)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, sp.LocationID, sp.Name, sp.Description, sp.Capacity,
		sp.OpeningTime, sp.ClosingTime, sp.AvailableDays, sp.MinBookingHours, sp.MaxBookingHours,
		sp.MaxAdvanceDays, sp.PricePerHour, sp.PricePerDay, sp.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*sp = *stored
	return nil
}

// GetByID retrieves a space by its ID.  It returns ErrSpaceNotFound
// when no row is found.
func (r *SpaceRepo) GetByID(ctx context.Context, id uint64) (*model.Space, error) {
	return getSpace(ctx, r.db, "SELECT "+spaceColumns+" FROM spaces WHERE id = ?", id)
}

// GetForUpdateTx reads a space and takes a row lock on it for the rest
// of the transaction.  Every booking write for the space locks this
// row first, which serialises concurrent bookings of the same space.
func (r *SpaceRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Space, error) {
	return getSpace(ctx, tx, "SELECT "+spaceColumns+" FROM spaces WHERE id = ? FOR UPDATE", id)
}

// ListByLocation returns all spaces inside a location ordered by id.
func (r *SpaceRepo) ListByLocation(ctx context.Context, locationID uint64) ([]*model.Space, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+spaceColumns+" FROM spaces WHERE location_id = ? ORDER BY id", locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Space
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// Update rewrites every editable column of a space.
func (r *SpaceRepo) Update(ctx context.Context, sp *model.Space) error {
	const q = `UPDATE spaces
	           SET name = ?, description = ?, capacity = ?, opening_time = ?, closing_time = ?,
	               available_days = ?, min_booking_hours = ?, max_booking_hours = ?, max_advance_days = ?,
	               price_per_hour = ?, price_per_day = ?, status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, sp.Name, sp.Description, sp.Capacity, sp.OpeningTime, sp.ClosingTime,
		sp.AvailableDays, sp.MinBookingHours, sp.MaxBookingHours, sp.MaxAdvanceDays,
		sp.PricePerHour, sp.PricePerDay, sp.Status, sp.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, sp.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a space unless a live reservation still ends after
// now, in which case ErrConflict is returned.  Past reservations are
// removed with the space by the foreign key cascade.
func (r *SpaceRepo) Delete(ctx context.Context, id uint64, now time.Time) error {
	const qLive = `SELECT COUNT(*) FROM reservations
	               WHERE space_id = ? AND status <> 'cancelled' AND end_time > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, qLive, id, now).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM spaces WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSpaceNotFound
	}
	return nil
}
