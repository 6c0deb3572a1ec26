package booking

import "time"

// DefaultSlotMinutes is the slot width used when the caller passes none.
const DefaultSlotMinutes = 60

// Slot is one fixed-width window of a day view.
type Slot struct {
	Interval    Interval
	Occupied    bool
	ConflictIDs []uint64
}

// DaySlots is the day view returned by Slots.  All is the ordered full
// sequence; Available and Occupied partition it.
type DaySlots struct {
	Date         time.Time
	DayAvailable bool
	WidthMinutes int
	All          []Slot
	Available    []Slot
	Occupied     []Slot
}

// Slots lays the day's opening hours out in contiguous slots of
// widthMinutes and marks each slot occupied when it overlaps a live
// reservation in existing.  A trailing remainder shorter than the
// width is not offered.  Days the space does not open on, and spaces
// that are not active, yield an empty view with DayAvailable unset.
func Slots(date time.Time, sched SpaceSchedule, existing []Booked, widthMinutes int) DaySlots {
	if widthMinutes <= 0 {
		widthMinutes = DefaultSlotMinutes
	}
	day := DaySlots{Date: DateOf(date), WidthMinutes: widthMinutes}
	if !sched.Bookable(day.Date) {
		return day
	}
	day.DayAvailable = true

	step := time.Duration(widthMinutes) * time.Minute
	closing := sched.ClosingTime.On(day.Date)
	for start := sched.OpeningTime.On(day.Date); !start.Add(step).After(closing); start = start.Add(step) {
		s := Slot{Interval: Interval{Start: start, End: start.Add(step)}}
		s.ConflictIDs = Conflicts(s.Interval, existing, 0)
		s.Occupied = len(s.ConflictIDs) > 0
		day.All = append(day.All, s)
		if s.Occupied {
			day.Occupied = append(day.Occupied, s)
		} else {
			day.Available = append(day.Available, s)
		}
	}
	return day
}
