package check_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
// Query params: date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getAvailableSlots.CheckRequest{
		Date: query.Get("date"),
		Time: query.Get("time"),
	}

	result, err := h.useCase.Check(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/check - Invalid input: date=%s, time=%s, error=%v", req.Date, req.Time, err)
			handlers.RespondValidation(w, err, "")

		default:
			h.logger.Error("GET /availability/check - Failed to check slot: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/check - Slot checked: date=%s, time=%s, available=%t",
		result.Date, result.Time, result.Available)
	handlers.RespondJSON(w, http.StatusOK, &CheckSlotResponse{
		Date:      result.Date,
		Time:      result.Time.String(),
		Available: result.Available,
	})
}
