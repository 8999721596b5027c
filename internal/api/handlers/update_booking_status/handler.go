package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	updateStatus "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingIdentity    = "отсутствует личность вызывающего"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	// Личность кладёт middleware AdminAuth
	caller, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, caller.Email))
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondValidation(w, err, "")

		case errors.Is(err, updateStatus.ErrForbidden):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Access denied: booking_id=%s, email=%s",
				bookingID, caller.Email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/status - Failed to update status: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Status updated successfully: booking_id=%s, status=%s",
		bookingID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
