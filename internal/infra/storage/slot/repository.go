package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const tableSlots = "slots"

// Repository счётчики занятости слотов в PostgreSQL
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// rowScanner *sql.Row или его подмена в тестах
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Get читает счётчик слота
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) Get(ctx context.Context, key domain.SlotKey) (*domain.SlotLedger, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectLedgerQuery(key, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	ledger, err := scanLedger(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrLedgerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Get - scan ledger %s: %w", ErrScanRow, key, err)
	}

	return ledger, nil
}

// Save создает или обновляет счётчик слота
func (r *Repository) Save(ctx context.Context, ledger *domain.SlotLedger) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertLedgerQuery(ledger)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert %s: %w", ErrExecQuery, ledger.Key, err)
	}

	return nil
}

func selectLedgerQuery(key domain.SlotKey, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(
		"slot_date",
		"slot_time",
		"capacity",
		"occupied",
		"created_at",
		"updated_at",
	).
		From(tableSlots).
		Where(squirrel.Eq{"slot_key": key.String()})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func upsertLedgerQuery(ledger *domain.SlotLedger) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableSlots).
		Columns(
			"slot_key",
			"slot_date",
			"slot_time",
			"capacity",
			"occupied",
			"created_at",
			"updated_at",
		).
		Values(
			ledger.Key.String(),
			ledger.Key.Date,
			ledger.Key.Time,
			ledger.Capacity,
			ledger.Occupied,
			ledger.CreatedAt,
			ledger.UpdatedAt,
		).
		Suffix("ON CONFLICT (slot_key) DO UPDATE SET capacity = EXCLUDED.capacity, occupied = EXCLUDED.occupied, updated_at = EXCLUDED.updated_at").
		ToSql()
}

// scanLedger sql.ErrNoRows означает, что слот ещё ни разу не бронировали
func scanLedger(row rowScanner) (*domain.SlotLedger, error) {
	var ledger domain.SlotLedger
	err := row.Scan(
		&ledger.Key.Date,
		&ledger.Key.Time,
		&ledger.Capacity,
		&ledger.Occupied,
		&ledger.CreatedAt,
		&ledger.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLedgerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}
