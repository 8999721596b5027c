package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	times := make([]string, len(resp.Times))
	for i, t := range resp.Times {
		times[i] = t.String()
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date,
		Times: times,
	}
}
