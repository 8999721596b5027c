package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Runner выполняет функцию в транзакции READ COMMITTED с повторами при deadlock
type Runner interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxManager транзакция слота для PostgreSQL
// Транзакции одного слота выстраиваются в очередь через pg_advisory_xact_lock,
// транзакции разных слотов не мешают друг другу.
// На уровне READ COMMITTED чтение счётчика после ожидания блокировки видит коммит предыдущего владельца
type TxManager struct {
	runner Runner
	db     dbmetrics.DBExecutor
}

// NewTxManager создает менеджер транзакций слота
func NewTxManager(runner Runner, db dbmetrics.DBExecutor) *TxManager {
	return &TxManager{runner: runner, db: db}
}

// WithSlotTransaction выполняет fn атомарно относительно других попыток на тот же слот
func (m *TxManager) WithSlotTransaction(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	err := m.runner.DoReadCommitted(ctx, func(txCtx context.Context) error {
		executor := dbmetrics.GetExecutor(txCtx, m.db)
		if _, err := executor.ExecContext(txCtx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			return fmt.Errorf("%w: lock slot %s: %w", ErrExecQuery, key, err)
		}
		return fn(txCtx)
	})

	if errors.Is(err, txmanager.ErrRetriesExhausted) ||
		errors.Is(err, txmanager.ErrBeginTx) ||
		errors.Is(err, txmanager.ErrCommitTx) {
		return fmt.Errorf("%w: slot %s: %w", storage.ErrTransient, key, err)
	}
	return err
}
