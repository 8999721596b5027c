package get_booked_times

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

type BookingService interface {
	BookedTimes(ctx context.Context, date string) (*models.BookedTimesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
