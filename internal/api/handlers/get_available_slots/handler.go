package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "дата обязательна"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondError(w, http.StatusBadRequest, handlers.KindValidation, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: dateStr})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondValidation(w, err, "")

		default:
			h.logger.Error("GET /availability - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved successfully: date=%s, slots_count=%d",
		dateStr, len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
