package model

import (
    "time"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
)

// Space represents a bookable workspace inside a location: a desk, a
// meeting room or a private office.  Besides descriptive fields a space
// carries its weekly opening schedule, booking limits and both rates.
//
// Fields:
//  ID              – primary key identifier.
//  LocationID      – ID of the containing location.
//  Name            – unique space name per location.
//  Description     – optional description of the space.
//  Capacity        – number of people the space fits.
//  OpeningTime     – daily opening time, "15:04".
//  ClosingTime     – daily closing time, "15:04".
//  AvailableDays   – ISO weekdays the space opens on, e.g. "1,2,3,4,5".
//  MinBookingHours – shortest reservation accepted.
//  MaxBookingHours – longest reservation accepted.
//  MaxAdvanceDays  – how many days ahead a reservation may start.
//  PricePerHour    – hourly rate, 0 when not offered.
//  PricePerDay     – daily rate, 0 when not offered.
//  Status          – active, inactive or maintenance.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Space struct {
    ID              uint64    // spaces.id
    LocationID      uint64    // spaces.location_id
    Name            string    // spaces.name
    Description     *string   // spaces.description (nullable)
    Capacity        uint32    // spaces.capacity
    OpeningTime     string    // spaces.opening_time
    ClosingTime     string    // spaces.closing_time
    AvailableDays   string    // spaces.available_days
    MinBookingHours float64   // spaces.min_booking_hours
    MaxBookingHours float64   // spaces.max_booking_hours
    MaxAdvanceDays  int       // spaces.max_advance_days
    PricePerHour    float64   // spaces.price_per_hour
    PricePerDay     float64   // spaces.price_per_day
    Status          string    // spaces.status
    CreatedAt       time.Time // spaces.created_at
    UpdatedAt       time.Time // spaces.updated_at
}

// Schedule converts the stored columns into the booking policy snapshot.
func (s *Space) Schedule() (booking.SpaceSchedule, error) {
    open, err := booking.ParseTimeOfDay(s.OpeningTime)
    if err != nil {
        return booking.SpaceSchedule{}, err
    }
    closing, err := booking.ParseTimeOfDay(s.ClosingTime)
    if err != nil {
        return booking.SpaceSchedule{}, err
    }
    days, err := booking.ParseWeekdaySet(s.AvailableDays)
    if err != nil {
        return booking.SpaceSchedule{}, err
    }
    return booking.SpaceSchedule{
        OpeningTime:       open,
        ClosingTime:       closing,
        AvailableWeekdays: days,
        MinBookingHours:   s.MinBookingHours,
        MaxBookingHours:   s.MaxBookingHours,
        MaxAdvanceDays:    s.MaxAdvanceDays,
        Status:            booking.SpaceStatus(s.Status),
    }, nil
}

// Rates returns the space's rate plan.
func (s *Space) Rates() booking.RatePlan {
    return booking.RatePlan{PricePerHour: s.PricePerHour, PricePerDay: s.PricePerDay}
}
