package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

// ErrNestedTransaction транзакции слотов не вкладываются друг в друга
var ErrNestedTransaction = errors.New("memory: nested slot transaction")

// Store транзакционное хранилище в памяти процесса
// Используется для локального запуска и тестов; данные теряются при перезапуске
type Store struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	ledgers  map[string]*domain.SlotLedger
	settings *domain.ShopSettings

	locksMu   sync.Mutex
	slotLocks map[string]*sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings:  make(map[string]*domain.Booking),
		ledgers:   make(map[string]*domain.SlotLedger),
		slotLocks: make(map[string]*sync.Mutex),
	}
}

// txState изменения, накопленные внутри транзакции слота
type txState struct {
	ledgers  map[string]*domain.SlotLedger
	bookings []*domain.Booking
}

type txKey struct{}

func txFromContext(ctx context.Context) (*txState, bool) {
	tx, ok := ctx.Value(txKey{}).(*txState)
	return tx, ok
}

// WithSlotTransaction выполняет fn под эксклюзивной блокировкой слота
// Записи fn буферизуются и применяются только если fn вернула nil
func (s *Store) WithSlotTransaction(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return ErrNestedTransaction
	}

	lock := s.slotLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &txState{ledgers: make(map[string]*domain.SlotLedger)}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	return s.commit(tx)
}

func (s *Store) commit(tx *txState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, booking := range tx.bookings {
		if _, exists := s.bookings[booking.ID]; exists {
			return storage.ErrBookingExists
		}
	}

	for id, ledger := range tx.ledgers {
		s.ledgers[id] = ledger
	}
	for _, booking := range tx.bookings {
		s.bookings[booking.ID] = booking
	}
	return nil
}

func (s *Store) slotLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.slotLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.slotLocks[key] = lock
	}
	return lock
}

// TxManager адаптер Store к интерфейсу менеджера транзакций слота
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) WithSlotTransaction(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return m.store.WithSlotTransaction(ctx, key, fn)
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.AdminNote != nil {
		note := *b.AdminNote
		c.AdminNote = &note
	}
	if b.ReviewedAt != nil {
		at := *b.ReviewedAt
		c.ReviewedAt = &at
	}
	return &c
}

func sortBookings(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		if bookings[i].Time != bookings[j].Time {
			return bookings[i].Time < bookings[j].Time
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
