package firestoredb

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

func TestBookingDoc_RoundTripKeepsSlotID(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	note := "ok"
	booking := &domain.Booking{
		ID:        "b-1",
		Name:      "Nok",
		Phone:     "0812345678",
		Service:   "ทำสี",
		Date:      "2024-01-01",
		Time:      "09:00",
		Deposit:   500,
		SlipURL:   "https://cdn/slip.png",
		Status:    domain.StatusConfirmed,
		AdminNote: &note,
		CreatedAt: created,
		UpdatedAt: created,
	}

	doc := toBookingDoc(booking)

	assert.Equal(t, "2024-01-01_09:00", doc.SlotID)
	assert.Equal(t, "Confirmed", doc.Status)
	assert.Equal(t, booking, doc.toDomain("b-1"))
}

func TestBookingDoc_MissingStatusIsPending(t *testing.T) {
	got := bookingDoc{Date: "2024-01-01", Time: "10:00"}.toDomain("legacy")

	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestSlotDoc_UsesBookedField(t *testing.T) {
	key := domain.SlotKey{Date: "2024-01-01", Time: "09:00"}
	ledger := &domain.SlotLedger{Key: key, Capacity: 2, Occupied: 1}

	doc := toSlotDoc(ledger)

	assert.Equal(t, 1, doc.Booked)
	assert.Equal(t, ledger, doc.toDomain(key))
}

func TestErrorClassification(t *testing.T) {
	aborted := status.Error(codes.Aborted, "contention")
	notFound := status.Error(codes.NotFound, "no doc")

	assert.True(t, isTransient(aborted))
	assert.True(t, isNotFound(notFound))
	assert.False(t, isTransient(notFound))
	assert.False(t, isTransient(errors.New("plain")))

	assert.ErrorIs(t, wrapQueryErr("op", aborted), storage.ErrTransient)
	assert.ErrorIs(t, wrapQueryErr("op", fmt.Errorf("boom")), ErrQuery)
}
