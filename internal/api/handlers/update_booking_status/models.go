package update_booking_status

import (
	updateStatus "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID, callerEmail string) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID:   bookingID,
		Status:      r.Status,
		Note:        r.Note,
		CallerEmail: callerEmail,
	}
}
