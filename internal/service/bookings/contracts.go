package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByDate(ctx context.Context, date string) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher получатель событий об удалении бронирований
type EventPublisher interface {
	Publish(event domain.BookingEvent)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
