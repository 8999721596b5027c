package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type BookingService interface {
	ListByDate(ctx context.Context, date string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
