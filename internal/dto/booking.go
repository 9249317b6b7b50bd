package dto

import (
	"fmt"
	"time"
)

// Wire formats of the booking backend. Timestamps travel as
// local-time strings without a timezone offset, second resolution.
const (
	TimeLayout = "2006-01-02T15:04:05"
	DateLayout = "2006-01-02"
)

// BookingRequest is the body of POST /bookings
type BookingRequest struct {
	SeatplaceID string `json:"seatplaceId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// NewBookingRequest formats the interval into the wire layout
func NewBookingRequest(seatplaceID string, start, end time.Time) BookingRequest {
	return BookingRequest{
		SeatplaceID: seatplaceID,
		StartTime:   start.Format(TimeLayout),
		EndTime:     end.Format(TimeLayout),
	}
}

// Validate checks the request is well-formed before it goes out
func (r *BookingRequest) Validate() (bool, string) {
	if r.SeatplaceID == "" {
		return false, "Seat place is required"
	}
	start, err := time.ParseInLocation(TimeLayout, r.StartTime, time.Local)
	if err != nil {
		return false, fmt.Sprintf("Invalid start time %q", r.StartTime)
	}
	end, err := time.ParseInLocation(TimeLayout, r.EndTime, time.Local)
	if err != nil {
		return false, fmt.Sprintf("Invalid end time %q", r.EndTime)
	}
	if !end.After(start) {
		return false, "End time must be after start time"
	}
	return true, ""
}

// Booking is the booking resource as returned by the backend
type Booking struct {
	ID          string `json:"id"`
	SeatplaceID string `json:"seatplaceId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	UserID      string `json:"userId"`
}

// Start parses the booking start timestamp
func (b *Booking) Start() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, b.StartTime, time.Local)
}

// End parses the booking end timestamp
func (b *Booking) End() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, b.EndTime, time.Local)
}

// SeatPlace is one entry of GET /seatplaces. Space fields are
// optional, older backends return a flat seat list.
type SeatPlace struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpaceID   string `json:"spaceId,omitempty"`
	SpaceName string `json:"spaceName,omitempty"`
}
