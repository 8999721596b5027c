package get_booked_times

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booked-times
// Query params: date (required, YYYY-MM-DD)
// Возвращает времена всех бронирований на дату, независимо от статуса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	result, err := h.service.BookedTimes(r.Context(), dateStr)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /booked-times - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondValidation(w, err, "")

		default:
			h.logger.Error("GET /booked-times - Failed to get booked times: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booked-times - Booked times retrieved: date=%s, count=%d", result.Date, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, result)
}
