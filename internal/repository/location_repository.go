// This file defines the repository for locations.  A Location is a
// coworking site that groups the spaces found at one address and is
// run by a single manager.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
)

// LocationRepo encapsulates all database queries related to locations.  It
// depends on a sql.DB connection which should be configured elsewhere.
type LocationRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewLocationRepo constructs a LocationRepo with the provided DB handle.
func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

const locationColumns = "id, manager_id, name, address, city, created_at, updated_at"

func scanLocation(s rowScanner) (*model.Location, error) {
	var (
		l    model.Location
		city sql.NullString
	)
	if err := s.Scan(&l.ID, &l.ManagerID, &l.Name, &l.Address, &city, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if city.Valid {
		l.City = &city.String
	}
	return &l, nil
}

// Create inserts a new location.  On success the location's ID and
// timestamps are populated from the stored row.  A duplicate name for
// the same manager yields ErrConflict.
func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	const qInsert = "INSERT INTO locations (manager_id, name, address, city) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, l.ManagerID, l.Name, l.Address, l.City)
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
	*l = *stored
	return nil
}

// GetByID fetches a location by its ID regardless of manager.  It returns
// ErrLocationNotFound if no row is found.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
	q := "SELECT " + locationColumns + " FROM locations WHERE id = ?"
	l, err := scanLocation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	return l, err
}

// ListAll returns every location ordered by id.  It backs the public
// browsing endpoint.
func (r *LocationRepo) ListAll(ctx context.Context) ([]*model.Location, error) {
	return r.list(ctx, "SELECT "+locationColumns+" FROM locations ORDER BY id")
}

// ListByManager returns the locations run by one manager.
func (r *LocationRepo) ListByManager(ctx context.Context, managerID uint64) ([]*model.Location, error) {
	return r.list(ctx, "SELECT "+locationColumns+" FROM locations WHERE manager_id = ? ORDER BY id", managerID)
}

func (r *LocationRepo) list(ctx context.Context, q string, args ...any) ([]*model.Location, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update rewrites the descriptive fields of a location.  It returns
// ErrLocationNotFound when the row does not exist.
func (r *LocationRepo) Update(ctx context.Context, l *model.Location) error {
	const q = `UPDATE locations
	           SET name = ?, address = ?, city = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, l.Name, l.Address, l.City, l.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, l.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a location that no longer has spaces.  ErrConflict is
// returned while spaces still reference it.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM spaces WHERE location_id = ?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLocationNotFound
	}
	return nil
}
