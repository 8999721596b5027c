package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// SlotKey identifies a bookable interval by date and start time
// Two bookings collide iff their keys are equal
type SlotKey struct {
	Date string // YYYY-MM-DD
	Time types.TimeString
}

// NewSlotKey validates and normalizes date and time
func NewSlotKey(date, clock string) (SlotKey, error) {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return SlotKey{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	t, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return SlotKey{}, err
	}
	return SlotKey{Date: date, Time: t}, nil
}

// ParseSlotKey parses the "date_time" representation
func ParseSlotKey(s string) (SlotKey, error) {
	date, clock, ok := strings.Cut(s, SlotKeySeparator)
	if !ok {
		return SlotKey{}, fmt.Errorf("invalid slot key %q", s)
	}
	return NewSlotKey(date, clock)
}

// String returns the storage id of the slot, e.g. "2024-01-01_09:00"
func (k SlotKey) String() string {
	return k.Date + SlotKeySeparator + k.Time.String()
}

// SlotLedger tracks how many bookings hold a slot
// Occupied is only changed inside the transaction that creates the booking
type SlotLedger struct {
	Key       SlotKey
	Capacity  int
	Occupied  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSlotLedger creates an empty ledger for the first booking attempt on a slot
func NewSlotLedger(key SlotKey, capacity int, now time.Time) *SlotLedger {
	return &SlotLedger{
		Key:       key,
		Capacity:  capacity,
		Occupied:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasRoom reports whether one more booking fits under the given capacity
func (l *SlotLedger) HasRoom(capacity int) bool {
	return l.Occupied < capacity
}

// Occupy takes one unit of capacity
// capacity is the currently configured limit and replaces the stored one,
// so raising or lowering the setting applies to existing slots too
// Returns false and leaves the ledger untouched when the slot is full
func (l *SlotLedger) Occupy(capacity int, now time.Time) bool {
	if !l.HasRoom(capacity) {
		return false
	}
	l.Capacity = capacity
	l.Occupied++
	l.UpdatedAt = now
	return true
}
