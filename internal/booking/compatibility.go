package booking

import (
	"fmt"
	"time"
)

// SpaceStatus is the operating state of a space.  Only active spaces
// accept reservations.
type SpaceStatus string

const (
	SpaceActive      SpaceStatus = "active"
	SpaceInactive    SpaceStatus = "inactive"
	SpaceMaintenance SpaceStatus = "maintenance"
)

// Valid reports whether s is a known status.
func (s SpaceStatus) Valid() bool {
	switch s {
	case SpaceActive, SpaceInactive, SpaceMaintenance:
		return true
	}
	return false
}

// SpaceSchedule is a snapshot of a space's booking policy.
type SpaceSchedule struct {
	OpeningTime       TimeOfDay
	ClosingTime       TimeOfDay
	AvailableWeekdays WeekdaySet
	MinBookingHours   float64
	MaxBookingHours   float64
	MaxAdvanceDays    int
	Status            SpaceStatus
}

// Validate checks the schedule's own invariants.  It runs when a space
// is created or edited, never on the booking path.
func (s SpaceSchedule) Validate() error {
	if s.OpeningTime < 0 || s.ClosingTime >= 24*60 || s.OpeningTime >= s.ClosingTime {
		return Validationf("opening time %s must be before closing time %s", s.OpeningTime, s.ClosingTime)
	}
	if len(s.AvailableWeekdays) == 0 {
		return Validationf("at least one available weekday is required")
	}
	for d := range s.AvailableWeekdays {
		if !d.Valid() {
			return Validationf("weekday %d out of range 1-7", d)
		}
	}
	if s.MinBookingHours <= 0 || s.MaxBookingHours < s.MinBookingHours {
		return Validationf("booking hours must satisfy 0 < min (%g) <= max (%g)", s.MinBookingHours, s.MaxBookingHours)
	}
	if s.MaxAdvanceDays < 0 {
		return Validationf("max advance days must not be negative")
	}
	if !s.Status.Valid() {
		return Validationf("unknown space status %q", s.Status)
	}
	return nil
}

// Bookable reports whether the space accepts reservations on date.
func (s SpaceSchedule) Bookable(date time.Time) bool {
	return s.Status == SpaceActive && s.AvailableWeekdays.Has(ISOWeekday(date))
}

// ViolationCode names one reason a reservation breaks a space's policy.
type ViolationCode string

const (
	SpaceInactiveViolation ViolationCode = "space_inactive"
	DurationTooShort       ViolationCode = "duration_too_short"
	DurationTooLong        ViolationCode = "duration_too_long"
	TooFarInAdvance        ViolationCode = "too_far_in_advance"
	DayNotAvailable        ViolationCode = "day_not_available"
	BeforeOpening          ViolationCode = "before_opening"
	AfterClosing           ViolationCode = "after_closing"
	StartInPast            ViolationCode = "start_in_past"
)

// Violation is a single failed rule.  Date is set for per-day rules
// (day_not_available, before_opening, after_closing).
type Violation struct {
	Code   ViolationCode `json:"code"`
	Date   string        `json:"date,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

func (v Violation) String() string {
	if v.Date != "" {
		return fmt.Sprintf("%s@%s", v.Code, v.Date)
	}
	return string(v.Code)
}

// Compatibility is the outcome of Check.
type Compatibility struct {
	OK         bool
	Violations []Violation
}

// Has reports whether a violation with the given code was found.
func (c Compatibility) Has(code ViolationCode) bool {
	for _, v := range c.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Err returns nil for a compatible interval and a policy_violation
// error otherwise.
func (c Compatibility) Err() error {
	if c.OK {
		return nil
	}
	return PolicyViolation(c.Violations)
}

// Check validates iv against the space schedule.  Every rule is
// evaluated; the result lists all of the failures, in rule order and
// then by date.
func Check(iv Interval, sched SpaceSchedule, now time.Time) Compatibility {
	var vs []Violation
	add := func(code ViolationCode, date time.Time, detail string) {
		v := Violation{Code: code, Detail: detail}
		if !date.IsZero() {
			v.Date = date.Format(DateLayout)
		}
		vs = append(vs, v)
	}

	if sched.Status != SpaceActive {
		add(SpaceInactiveViolation, time.Time{}, fmt.Sprintf("space is %s", sched.Status))
	}

	hours := iv.Hours()
	switch {
	case hours < sched.MinBookingHours:
		add(DurationTooShort, time.Time{}, fmt.Sprintf("%.2fh is below the %gh minimum", hours, sched.MinBookingHours))
	case hours > sched.MaxBookingHours:
		add(DurationTooLong, time.Time{}, fmt.Sprintf("%.2fh exceeds the %gh maximum", hours, sched.MaxBookingHours))
	}

	if days := DaysUntil(iv.Start, now); days > sched.MaxAdvanceDays {
		add(TooFarInAdvance, time.Time{}, fmt.Sprintf("starts in %d days, limit is %d", days, sched.MaxAdvanceDays))
	}

	iv.Dates().Each(func(d time.Time) bool {
		if wd := ISOWeekday(d); !sched.AvailableWeekdays.Has(wd) {
			add(DayNotAvailable, d, fmt.Sprintf("%s is closed", d.Weekday()))
		}
		return true
	})

	if first := DateOf(iv.Start); iv.Start.Before(sched.OpeningTime.On(first)) {
		add(BeforeOpening, first, fmt.Sprintf("opens at %s", sched.OpeningTime))
	}
	if last := DateOf(iv.End); iv.End.After(sched.ClosingTime.On(last)) {
		add(AfterClosing, last, fmt.Sprintf("closes at %s", sched.ClosingTime))
	}

	if iv.Start.Before(now) {
		add(StartInPast, time.Time{}, "start is in the past")
	}

	return Compatibility{OK: len(vs) == 0, Violations: vs}
}
