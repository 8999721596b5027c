package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

var (
	// ErrBeginTx не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted транзакция конфликтовала на каждой попытке
	ErrRetriesExhausted = errors.New("txmanager: transaction retries exhausted")
)

const (
	defaultMaxAttempts = 5
	defaultBackoff     = 10 * time.Millisecond
)

// Коды PostgreSQL, при которых транзакцию безопасно выполнить заново
var retryableCodes = map[pq.ErrorCode]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"23505": {}, // unique_violation: параллельная вставка того же ключа
}

// TxBeginner *dbmetrics.DB или любая обёртка, умеющая начинать транзакции
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции с повтором при конфликтах
type TransactionManager struct {
	db          TxBeginner
	maxAttempts int
	backoff     time.Duration
	onRetry     func(attempt int, err error)
}

// Option настройка менеджера
type Option func(*TransactionManager)

// WithMaxAttempts ограничивает число попыток
func WithMaxAttempts(n int) Option {
	return func(m *TransactionManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithBackoff базовая пауза между попытками (растёт линейно)
func WithBackoff(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.backoff = d
	}
}

// WithRetryHook вызывается перед каждым повтором
func WithRetryHook(hook func(attempt int, err error)) Option {
	return func(m *TransactionManager) {
		m.onRetry = hook
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:          db,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DoReadCommitted выполняет fn в транзакции уровня READ COMMITTED
// Транзакция передаётся через контекст (см. dbmetrics.GetExecutor)
// Взаимное исключение обеспечивает вызывающий: блокировки строк или advisory lock.
// При deadlock или конфликте fn выполняется заново целиком
func (m *TransactionManager) DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		// Вложенный вызов работает в уже открытой транзакции
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}

		lastErr = err
		if attempt == m.maxAttempts {
			break
		}
		if m.onRetry != nil {
			m.onRetry(attempt, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("%w: %d attempts: %w", ErrRetriesExhausted, m.maxAttempts, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

// IsRetryable проверяет, что ошибка вызвана конфликтом конкурентных транзакций
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	_, ok := retryableCodes[pqErr.Code]
	return ok
}
