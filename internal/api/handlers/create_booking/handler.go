package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotFull           = "выбранный временной слот уже занят"
	msgDuplicateBooking   = "бронирование уже создано, обновите страницу"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondValidation(w, err, "")

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondSlotFull(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, handlers.KindValidation, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrTransient):
			h.logger.Warn("POST /bookings - Store unavailable: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot=%s",
		result.ID, response.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
