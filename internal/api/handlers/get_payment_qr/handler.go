package get_payment_qr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/promptpay"
)

const (
	msgInvalidAmount  = "некорректная сумма"
	msgNotConfigured  = "номер PromptPay не настроен"
	msgInvalidAccount = "номер PromptPay в настройках некорректен"
)

type Handler struct {
	settings SettingsService
	qr       QRProvider
	logger   Logger
}

func NewHandler(settings SettingsService, qr QRProvider, logger Logger) *Handler {
	return &Handler{
		settings: settings,
		qr:       qr,
		logger:   logger,
	}
}

// Handle GET /api/v1/payment/qr
// Query params: amount (опционально, по умолчанию депозит из настроек)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shop, err := h.settings.Current(r.Context())
	if err != nil {
		h.logger.Error("GET /payment/qr - Failed to load settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	if shop.PromptPayNumber == "" {
		h.logger.Warn("GET /payment/qr - PromptPay number is not configured")
		handlers.RespondNotFound(w, msgNotConfigured)
		return
	}

	amount := shop.Deposit
	if raw := r.URL.Query().Get("amount"); raw != "" {
		amount, err = strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			h.logger.Warn("GET /payment/qr - Invalid amount: %s", raw)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindValidation, msgInvalidAmount)
			return
		}
	}

	png, err := h.qr.QRWithGracefulDegradation(r.Context(), shop.PromptPayNumber, amount)
	if err != nil {
		switch {
		case errors.Is(err, promptpay.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, promptpay.ErrInvalidTarget):
			h.logger.Error("GET /payment/qr - Configured number is invalid: %v", err)
			handlers.RespondInternalErrorMessage(w, msgInvalidAccount)

		default:
			h.logger.Error("GET /payment/qr - Failed to render QR: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
