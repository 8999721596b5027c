package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the review status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusRejected  BookingStatus = "Rejected"
	StatusCancelled BookingStatus = "Cancelled"
)

// Booking is a single customer reservation of a slot
type Booking struct {
	ID      string
	Name    string
	Phone   string
	Service string
	Date    string // YYYY-MM-DD
	Time    types.TimeString
	Notes   string
	Deposit float64
	SlipURL string
	Status  BookingStatus

	AdminNote  *string
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotKey returns the key of the slot held by the booking
func (b *Booking) SlotKey() SlotKey {
	return SlotKey{Date: b.Date, Time: b.Time}
}

// IsActive returns true if the booking still counts against availability
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsActive returns true for statuses that hold a slot (Pending, Confirmed)
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsValid reports whether the status belongs to the closed enumeration
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return status, nil
}

// StatusUpdate describes an admin review of a booking
type StatusUpdate struct {
	BookingID  string
	Status     BookingStatus
	AdminNote  *string
	ReviewedAt time.Time
}

// BookingEventType kind of change published to the admin feed
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventBookingDeleted       BookingEventType = "booking.deleted"
)

// BookingEvent notification about a booking change
type BookingEvent struct {
	Type      BookingEventType
	BookingID string
	Slot      SlotKey
	Status    BookingStatus
	At        time.Time
}
