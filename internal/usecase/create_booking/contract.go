package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
}

// SlotRepository интерфейс репозитория счётчиков слотов
// Внутри WithSlotTransaction методы работают в рамках транзакции из контекста
type SlotRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.SlotLedger, error)
	Save(ctx context.Context, ledger *domain.SlotLedger) error
}

// SettingsRepository интерфейс репозитория настроек магазина
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
}

// TransactionManager атомарная транзакция над одним слотом
// При конфликте реализация повторяет fn целиком, заново читая счётчик
type TransactionManager interface {
	WithSlotTransaction(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// EventPublisher получатель событий о новых бронированиях (лента администратора)
type EventPublisher interface {
	Publish(event domain.BookingEvent)
}

// Metrics учёт результатов бронирования
type Metrics interface {
	RecordBookingSubmission(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
