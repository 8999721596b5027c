package upload_slip

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/uploads"
)

const (
	formField = "file"

	msgInvalidForm     = "ожидается multipart-форма с полем file"
	msgTooLarge        = "файл больше 5 МБ"
	msgUnsupportedType = "допускаются только изображения JPEG и PNG"
	msgInvalidImage    = "файл не является изображением"
	msgStorageFailed   = "не удалось сохранить файл, повторите попытку"
)

// UploadResponse HTTP response model
type UploadResponse struct {
	URL string `json:"url"`
}

type Handler struct {
	service UploadService
	logger  Logger
}

func NewHandler(service UploadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/uploads/slip
// Чек загружается до создания бронирования, ссылка передаётся в POST /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	file, err := handlers.ReadMultipartFile(w, r, formField, uploads.MaxFileSize)
	if err != nil {
		h.logger.Warn("POST /uploads/slip - Invalid form: %v", err)
		if errors.Is(err, handlers.ErrFileTooLarge) {
			handlers.RespondBadRequest(w, msgTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	result, err := h.service.Upload(r.Context(), uploads.KindSlip, uploads.File{
		Name:        file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		RespondUploadError(w, h.logger, "POST /uploads/slip", err)
		return
	}

	h.logger.Info("POST /uploads/slip - Slip uploaded successfully: object=%s", result.ObjectName)
	handlers.RespondJSON(w, http.StatusCreated, &UploadResponse{URL: result.URL})
}

// RespondUploadError переводит ошибки сервиса загрузок в HTTP-ответ
func RespondUploadError(w http.ResponseWriter, logger Logger, route string, err error) {
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		logger.Warn("%s - File too large", route)
		handlers.RespondBadRequest(w, msgTooLarge)

	case errors.Is(err, uploads.ErrUnsupportedType), errors.Is(err, uploads.ErrEmptyFile):
		logger.Warn("%s - Unsupported file: %v", route, err)
		handlers.RespondBadRequest(w, msgUnsupportedType)

	case errors.Is(err, uploads.ErrInvalidImage):
		logger.Warn("%s - Invalid image: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidImage)

	case errors.Is(err, uploads.ErrStorage):
		logger.Error("%s - Storage failed: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, handlers.KindTransient, msgStorageFailed)

	default:
		logger.Error("%s - Failed to upload file: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
