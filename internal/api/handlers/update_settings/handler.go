package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/settings
// Частичное обновление: отсутствующие поля не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/settings - Invalid data: %v", err)
			handlers.RespondValidation(w, err, "")

		default:
			h.logger.Error("PUT /admin/settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated successfully: shop_name=%s", result.ShopName)
	handlers.RespondJSON(w, http.StatusOK, result)
}
