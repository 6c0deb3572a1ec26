// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource managed by
// someone else, while ErrConflict signals that an operation
// cannot proceed due to existing dependent records (e.g. deleting
// a space that still has upcoming reservations).
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not manage. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a space that still has live reservations. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Lookup failures are booking errors of kind not_found so the service
// layer can pass them through unchanged.
var (
	ErrLocationNotFound    = &booking.Error{Kind: booking.KindNotFound, Message: "location not found"}
	ErrSpaceNotFound       = &booking.Error{Kind: booking.KindNotFound, Message: "space not found"}
	ErrReservationNotFound = &booking.Error{Kind: booking.KindNotFound, Message: "reservation not found"}
)

// isDuplicateKey reports whether err is a MySQL unique constraint
// violation (error 1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
