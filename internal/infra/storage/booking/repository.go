package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const (
	tableBookings      = "bookings"
	bookingsPrimaryKey = "bookings_pkey"
)

var bookingColumns = []string{
	"id",
	"name",
	"phone",
	"service",
	"booking_date",
	"start_time",
	"notes",
	"deposit",
	"slip_url",
	"status",
	"admin_note",
	"reviewed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование с заранее выделенным ID
// Внутри транзакции слота (dbmetrics.WithTx) вставка фиксируется вместе со счётчиком слота
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"name",
			"phone",
			"service",
			"booking_date",
			"start_time",
			"notes",
			"deposit",
			"slip_url",
			"status",
			"slot_id",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.Name,
			booking.Phone,
			booking.Service,
			booking.Date,
			booking.Time,
			booking.Notes,
			booking.Deposit,
			booking.SlipURL,
			booking.Status,
			booking.SlotKey().String(),
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == bookingsPrimaryKey {
			// Без %w: дубликат ID не должен считаться конфликтом сериализации
			return fmt.Errorf("%w: id=%s: %v", ErrBookingExists, booking.ID, err)
		}
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByDate получает все бронирования на дату в порядке времени
func (r *Repository) ListByDate(ctx context.Context, date string) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByDate", squirrel.Eq{"booking_date": date})
}

// ListByPeriod получает бронирования за период [from, to] включительно
func (r *Repository) ListByPeriod(ctx context.Context, from, to string) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByPeriod", squirrel.And{
		squirrel.GtOrEq{"booking_date": from},
		squirrel.LtOrEq{"booking_date": to},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(where).
		OrderBy("booking_date ASC", "start_time ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус, заметку администратора и время проверки
// Счётчик слота не изменяется
func (r *Repository) UpdateStatus(ctx context.Context, update domain.StatusUpdate) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableBookings).
		Set("status", update.Status).
		Set("reviewed_at", update.ReviewedAt).
		Set("updated_at", update.ReviewedAt).
		Where(squirrel.Eq{"id": update.BookingID})

	if update.AdminNote != nil {
		builder = builder.Set("admin_note", *update.AdminNote)
	}

	query, args, err := builder.Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// Delete удаляет бронирование навсегда
// Счётчик слота не уменьшается
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		adminNote  sql.NullString
		reviewedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Phone,
		&booking.Service,
		&booking.Date,
		&booking.Time,
		&booking.Notes,
		&booking.Deposit,
		&booking.SlipURL,
		&booking.Status,
		&adminNote,
		&reviewedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if adminNote.Valid {
		booking.AdminNote = &adminNote.String
	}
	if reviewedAt.Valid {
		booking.ReviewedAt = &reviewedAt.Time
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %w", ErrScanRow, err)
	}

	return bookings, nil
}
