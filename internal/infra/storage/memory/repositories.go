package memory

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// Create внутри транзакции откладывает запись до commit
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if tx, ok := txFromContext(ctx); ok {
		tx.bookings = append(tx.bookings, copyBooking(booking))
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.bookings[booking.ID]; exists {
		return storage.ErrBookingExists
	}
	r.store.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return copyBooking(booking), nil
}

func (r *BookingRepository) ListByDate(_ context.Context, date string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.Date == date }), nil
}

func (r *BookingRepository) ListByPeriod(_ context.Context, from, to string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.Date >= from && b.Date <= to }), nil
}

func (r *BookingRepository) filter(match func(b *domain.Booking) bool) []*domain.Booking {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range r.store.bookings {
		if match(booking) {
			result = append(result, copyBooking(booking))
		}
	}
	sortBookings(result)
	return result
}

func (r *BookingRepository) UpdateStatus(_ context.Context, update domain.StatusUpdate) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	booking, ok := r.store.bookings[update.BookingID]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}

	reviewedAt := update.ReviewedAt
	booking.Status = update.Status
	booking.ReviewedAt = &reviewedAt
	booking.UpdatedAt = update.ReviewedAt
	if update.AdminNote != nil {
		note := *update.AdminNote
		booking.AdminNote = &note
	}
	return copyBooking(booking), nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bookings[id]; !ok {
		return storage.ErrBookingNotFound
	}
	delete(r.store.bookings, id)
	return nil
}

// SlotRepository счётчики слотов в памяти
type SlotRepository struct {
	store *Store
}

func NewSlotRepository(store *Store) *SlotRepository {
	return &SlotRepository{store: store}
}

// Get внутри транзакции видит собственные незафиксированные изменения
func (r *SlotRepository) Get(ctx context.Context, key domain.SlotKey) (*domain.SlotLedger, error) {
	id := key.String()
	if tx, ok := txFromContext(ctx); ok {
		if ledger, staged := tx.ledgers[id]; staged {
			c := *ledger
			return &c, nil
		}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ledger, ok := r.store.ledgers[id]
	if !ok {
		return nil, storage.ErrLedgerNotFound
	}
	c := *ledger
	return &c, nil
}

func (r *SlotRepository) Save(ctx context.Context, ledger *domain.SlotLedger) error {
	c := *ledger
	if tx, ok := txFromContext(ctx); ok {
		tx.ledgers[ledger.Key.String()] = &c
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ledgers[ledger.Key.String()] = &c
	return nil
}

// SettingsRepository настройки магазина в памяти
type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) Get(_ context.Context) (*domain.ShopSettings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.settings == nil {
		return nil, storage.ErrSettingsNotFound
	}
	c := *r.store.settings
	c.Services = append([]string(nil), r.store.settings.Services...)
	return &c, nil
}

func (r *SettingsRepository) Save(_ context.Context, settings *domain.ShopSettings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := *settings
	c.Services = append([]string(nil), settings.Services...)
	r.store.settings = &c
	return nil
}
