package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Service string  `json:"service"`
	Date    string  `json:"date"` // "2024-01-01"
	Time    string  `json:"time"` // "09:00"
	Notes   string  `json:"notes,omitempty"`
	SlipURL string  `json:"slipUrl"`
	Deposit float64 `json:"deposit"`
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	ID        string  `json:"id"`
	SlotID    string  `json:"slotId"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Status    string  `json:"status"`
	Deposit   float64 `json:"deposit"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Разбор даты и времени выполняет use case, чтобы ошибка содержала имя поля
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Name:    r.Name,
		Phone:   r.Phone,
		Service: r.Service,
		Date:    r.Date,
		Time:    r.Time,
		Notes:   r.Notes,
		SlipURL: r.SlipURL,
		Deposit: r.Deposit,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:        resp.ID,
		SlotID:    resp.Slot.String(),
		Date:      resp.Slot.Date,
		Time:      resp.Slot.Time.String(),
		Status:    string(resp.Status),
		Deposit:   resp.Deposit,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
