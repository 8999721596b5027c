package upload_asset

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers/upload_slip"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/service/uploads"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const (
	formField = "file"

	msgUnknownKind = "допустимые виды: logo, qr"
	msgInvalidForm = "ожидается multipart-форма с полем file"
	msgTooLarge    = "файл больше 5 МБ"
)

// UploadAssetResponse HTTP response model
type UploadAssetResponse struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type Handler struct {
	uploads  UploadService
	settings SettingsService
	logger   Logger
}

func NewHandler(uploadService UploadService, settingsService SettingsService, logger Logger) *Handler {
	return &Handler{
		uploads:  uploadService,
		settings: settingsService,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/uploads/{kind}
// После загрузки ссылка сохраняется в настройках (logoUrl или qrUrl)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := uploads.ParseKind(mux.Vars(r)["kind"])
	if err != nil || kind == uploads.KindSlip {
		h.logger.Warn("POST /admin/uploads/{kind} - Unknown kind: %s", mux.Vars(r)["kind"])
		handlers.RespondBadRequest(w, msgUnknownKind)
		return
	}

	file, err := handlers.ReadMultipartFile(w, r, formField, uploads.MaxFileSize)
	if err != nil {
		h.logger.Warn("POST /admin/uploads/{kind} - Invalid form: %v", err)
		if errors.Is(err, handlers.ErrFileTooLarge) {
			handlers.RespondBadRequest(w, msgTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	result, err := h.uploads.Upload(r.Context(), kind, uploads.File{
		Name:        file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		upload_slip.RespondUploadError(w, h.logger, "POST /admin/uploads/{kind}", err)
		return
	}

	patch := &models.UpdateSettingsRequest{}
	switch kind {
	case uploads.KindLogo:
		patch.LogoURL = ptr.Ptr(result.URL)
	case uploads.KindQR:
		patch.QRURL = ptr.Ptr(result.URL)
	}

	if _, err := h.settings.Update(r.Context(), patch); err != nil {
		h.logger.Error("POST /admin/uploads/{kind} - Failed to save %s url: %v", kind, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/uploads/{kind} - Asset uploaded successfully: kind=%s, object=%s", kind, result.ObjectName)
	handlers.RespondJSON(w, http.StatusCreated, &UploadAssetResponse{Kind: string(kind), URL: result.URL})
}
