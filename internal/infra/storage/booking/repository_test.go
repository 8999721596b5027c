package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

type execCall struct {
	query string
	args  []interface{}
}

type fakeExecutor struct {
	DBExecutor
	calls        []execCall
	err          error
	rowsAffected int64
}

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return fakeResult{rows: f.rowsAffected}, nil
}

func newBooking() *domain.Booking {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:        "b-1",
		Name:      "Nok",
		Phone:     "0812345678",
		Service:   "ทำสี",
		Date:      "2024-01-01",
		Time:      "09:00",
		Deposit:   500,
		SlipURL:   "https://cdn/slips/1.png",
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepository_Create(t *testing.T) {
	exec := &fakeExecutor{rowsAffected: 1}
	repo := NewRepository(exec)

	err := repo.Create(context.Background(), newBooking())

	require.NoError(t, err)
	require.Len(t, exec.calls, 1)
	assert.Contains(t, exec.calls[0].query, "INSERT INTO bookings")
	assert.Contains(t, exec.calls[0].query, "$13")
	assert.Contains(t, exec.calls[0].args, "2024-01-01_09:00")
}

func TestRepository_Create_DuplicateID(t *testing.T) {
	exec := &fakeExecutor{err: &pq.Error{Code: "23505", Constraint: bookingsPrimaryKey}}
	repo := NewRepository(exec)

	err := repo.Create(context.Background(), newBooking())

	assert.ErrorIs(t, err, ErrBookingExists)
	assert.False(t, txmanager.IsRetryable(err), "duplicate id must not be retried")
}

func TestRepository_Create_SerializationFailureIsRetryable(t *testing.T) {
	exec := &fakeExecutor{err: &pq.Error{Code: "40001"}}
	repo := NewRepository(exec)

	err := repo.Create(context.Background(), newBooking())

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsRetryable(err))
}

func TestRepository_Delete(t *testing.T) {
	exec := &fakeExecutor{rowsAffected: 1}
	repo := NewRepository(exec)

	require.NoError(t, repo.Delete(context.Background(), "b-1"))
	assert.Equal(t, "DELETE FROM bookings WHERE id = $1", exec.calls[0].query)
	assert.Equal(t, []interface{}{"b-1"}, exec.calls[0].args)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo := NewRepository(&fakeExecutor{rowsAffected: 0})

	err := repo.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Delete_ExecError(t *testing.T) {
	repo := NewRepository(&fakeExecutor{err: errors.New("connection reset")})

	err := repo.Delete(context.Background(), "b-1")

	assert.ErrorIs(t, err, ErrExecQuery)
}
