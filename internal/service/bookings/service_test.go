package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type recordingPublisher struct {
	events []domain.BookingEvent
}

func (p *recordingPublisher) Publish(event domain.BookingEvent) {
	p.events = append(p.events, event)
}

func seed(t *testing.T) (*Service, *memory.Store, *recordingPublisher) {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewBookingRepository(store)
	for _, b := range []*domain.Booking{
		{ID: "late", Name: "A", Date: "2024-01-01", Time: "15:00", Status: domain.StatusPending},
		{ID: "early", Name: "B", Date: "2024-01-01", Time: "09:00", Status: domain.StatusConfirmed},
		{ID: "rejected", Name: "C", Date: "2024-01-01", Time: "09:00", Status: domain.StatusRejected},
		{ID: "other-day", Name: "D", Date: "2024-01-02", Time: "10:00", Status: domain.StatusPending},
	} {
		require.NoError(t, repo.Create(context.Background(), b))
	}

	publisher := &recordingPublisher{}
	return NewService(repo, publisher, logger.NewNop()), store, publisher
}

func TestService_ListByDateOrderedByTime(t *testing.T) {
	svc, _, _ := seed(t)

	resp, err := svc.ListByDate(context.Background(), "2024-01-01")

	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "09:00", resp.Bookings[0].Time)
	assert.Equal(t, "15:00", resp.Bookings[2].Time)
	assert.Equal(t, "2024-01-01_15:00", resp.Bookings[2].SlotID)
}

func TestService_BookedTimesAnyStatus(t *testing.T) {
	svc, _, _ := seed(t)

	resp, err := svc.BookedTimes(context.Background(), "2024-01-01")

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "15:00"}, resp.Times)
}

func TestService_InvalidDate(t *testing.T) {
	svc, _, _ := seed(t)

	_, err := svc.ListByDate(context.Background(), "tomorrow")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := seed(t)

	got, err := svc.GetByID(context.Background(), "early")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)

	_, err = svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_DeleteKeepsLedger(t *testing.T) {
	svc, store, publisher := seed(t)
	key := domain.SlotKey{Date: "2024-01-01", Time: types.TimeString("15:00")}
	require.NoError(t, memory.NewSlotRepository(store).Save(context.Background(), &domain.SlotLedger{Key: key, Capacity: 2, Occupied: 1}))

	require.NoError(t, svc.Delete(context.Background(), "late"))

	_, err := svc.GetByID(context.Background(), "late")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	ledger, err := memory.NewSlotRepository(store).Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, 1, ledger.Occupied)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.EventBookingDeleted, publisher.events[0].Type)

	assert.ErrorIs(t, svc.Delete(context.Background(), "late"), ErrBookingNotFound)
}
