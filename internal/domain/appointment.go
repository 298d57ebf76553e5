package domain

import "time"

// Appointment represents a confirmed booking between a buyer and a seller,
// mirrored as an event on the seller's calendar.
type Appointment struct {
	ID            int64
	SellerID      int64
	BuyerID       int64
	StartTime     time.Time
	EndTime       time.Time
	GoogleEventID string
	Summary       string
	Location      *string // conferencing URI, if the calendar created one

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked time range as a half-open interval
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// IsUpcoming returns true if the appointment has not started yet
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return a.StartTime.After(now)
}
