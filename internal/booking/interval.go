// Package booking holds the scheduling and pricing rules for
// workspace reservations: interval conflicts, weekly schedule
// compatibility, day slots, price selection and the reservation
// status machine.
//
// Every function here is pure.  Callers pass in the current time and
// the snapshot of reservations they loaded; nothing is read from a
// global clock and no input is mutated.
package booking

import (
	"fmt"
	"time"
)

// Wire layouts for values crossing the service boundary.  All
// instants are naive wall-clock times of the space; they are carried
// in time.Time values with the UTC location.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
)

// Interval is a half-open [Start, End) span of wall-clock time.  It
// may cover a single day or run across several calendar dates.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds and validates an interval.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval reads an interval from two wire-format date-times.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseDateTime(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseDateTime(end)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

// ParseDateTime parses a wall-clock instant in DateTimeLayout.
func ParseDateTime(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, Validationf("invalid date-time %q, expected %s", v, DateTimeLayout)
	}
	return t, nil
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q, expected %s", v, DateLayout)
	}
	return t, nil
}

// Validate enforces Start < End.  Zero-length and inverted intervals
// never reach the conflict check.
func (iv Interval) Validate() error {
	if iv.Start.IsZero() || iv.End.IsZero() {
		return Validationf("interval start and end are required")
	}
	if !iv.Start.Before(iv.End) {
		return Validationf("interval start %s must be before end %s",
			iv.Start.Format(DateTimeLayout), iv.End.Format(DateTimeLayout))
	}
	return nil
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Hours returns the length of the interval in fractional hours.
func (iv Interval) Hours() float64 { return iv.Duration().Hours() }

// Overlaps reports whether the two intervals share any instant.  An
// interval ending exactly when the other begins does not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// Dates returns the calendar dates the interval touches.
func (iv Interval) Dates() DateRange { return NewDateRange(iv.Start, iv.End) }

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(DateTimeLayout), iv.End.Format(DateTimeLayout))
}

// Booked is the slice of an existing reservation the conflict check
// needs: its id, the span it occupies and its current status.
type Booked struct {
	ID       uint64
	Interval Interval
	Status   Status
}

// Conflicts returns the ids of the live entries in existing that
// overlap candidate.  The entry whose id equals excludeID is skipped so
// that an edited reservation never collides with itself; pass 0 when
// nothing should be excluded.
func Conflicts(candidate Interval, existing []Booked, excludeID uint64) []uint64 {
	var ids []uint64
	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !IsLive(b.Status) {
			continue
		}
		if candidate.Overlaps(b.Interval) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// HasConflict is Conflicts reduced to a boolean.
func HasConflict(candidate Interval, existing []Booked, excludeID uint64) bool {
	return len(Conflicts(candidate, existing, excludeID)) > 0
}
