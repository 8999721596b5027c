package reports

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListByPeriod бронирования с датой в интервале [from, to] включительно
	ListByPeriod(ctx context.Context, from, to string) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
