package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID   string
	Status      string
	Note        *string // nil оставляет заметку без изменений
	CallerEmail string  // Email из проверенного токена
}

// Response бронирование после изменения
type Response struct {
	Booking *domain.Booking
}

// ReviewedAt время проверки администратором
func (r *Response) ReviewedAt() time.Time {
	if r.Booking == nil || r.Booking.ReviewedAt == nil {
		return time.Time{}
	}
	return *r.Booking.ReviewedAt
}
