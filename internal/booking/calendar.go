package booking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday is an ISO-8601 day ordinal: 1 is Monday and 7 is Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ISOWeekday converts t's weekday into the ISO ordinal.
func ISOWeekday(t time.Time) Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// Valid reports whether d is within 1..7.
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// WeekdaySet is the set of weekdays a space opens on.
type WeekdaySet map[Weekday]struct{}

// NewWeekdaySet builds a set from ordinals.  Out-of-range values are
// kept so Validate can report them.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	s := make(WeekdaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// Has reports whether d is in the set.
func (s WeekdaySet) Has(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the members in ascending order.
func (s WeekdaySet) Sorted() []Weekday {
	out := make([]Weekday, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as a comma separated list, e.g. "1,2,3,4,5".
// It is the storage format of spaces.available_days.
func (s WeekdaySet) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s.Sorted() {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

// ParseWeekdaySet is the inverse of WeekdaySet.String.
func ParseWeekdaySet(v string) (WeekdaySet, error) {
	s := WeekdaySet{}
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || !Weekday(n).Valid() {
			return nil, Validationf("invalid weekday %q", p)
		}
		s[Weekday(n)] = struct{}{}
	}
	return s, nil
}

// DateOf truncates t to midnight of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil is the number of calendar days from now's date to t's date.
// It is negative when t lies on an earlier date.
func DaysUntil(t, now time.Time) int {
	a := DateOf(now.In(t.Location()))
	b := DateOf(t)
	// Count on UTC midnights so DST shifts cannot skew the result.
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// DateRange is an inclusive range of calendar dates.  It is a plain
// value: iterating it never changes it, so the same range can be
// walked any number of times.
type DateRange struct {
	First time.Time
	Last  time.Time
}

// NewDateRange covers every calendar date from start's date to end's
// date inclusive.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{First: DateOf(start), Last: DateOf(end)}
}

// Each calls fn for every date in order until fn returns false.
func (r DateRange) Each(fn func(time.Time) bool) {
	for d := r.First; !d.After(r.Last); d = d.AddDate(0, 0, 1) {
		if !fn(d) {
			return
		}
	}
}

// Dates collects the range into a slice.
func (r DateRange) Dates() []time.Time {
	var out []time.Time
	r.Each(func(d time.Time) bool {
		out = append(out, d)
		return true
	})
	return out
}

// Len is the number of dates in the range.
func (r DateRange) Len() int {
	if r.Last.Before(r.First) {
		return 0
	}
	return DaysUntil(r.Last, r.First) + 1
}

// TimeOfDay is a wall-clock time within a day, stored as minutes past
// midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "15:04" or "15:04:05"; seconds are dropped.
func ParseTimeOfDay(v string) (TimeOfDay, error) {
	layout := ClockLayout
	if len(v) == len("15:04:05") {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return 0, Validationf("invalid time of day %q, expected %s", v, ClockLayout)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustTimeOfDay is ParseTimeOfDay for literals.
func MustTimeOfDay(v string) TimeOfDay {
	t, err := ParseTimeOfDay(v)
	if err != nil {
		panic(err)
	}
	return t
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// On anchors the time of day on the given date.
func (c TimeOfDay) On(date time.Time) time.Time {
	d := DateOf(date)
	return d.Add(time.Duration(c) * time.Minute)
}

func (c TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
