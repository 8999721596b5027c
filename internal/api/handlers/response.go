package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Виды ошибок в ответе API
const (
	KindValidation    = "ValidationError"
	KindSlotFull      = "SlotFullError"
	KindAuthorization = "AuthorizationError"
	KindNotFound      = "NotFoundError"
	KindTransient     = "TransientStoreError"
	KindInternal      = "InternalError"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgServiceUnavailable = "хранилище временно недоступно, повторите запрос"
)

// maxBodySize ограничение тела JSON-запроса
const maxBodySize = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// DecodeJSON читает тело запроса в dst; неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON-ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку {kind, message}
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

// RespondValidation отправляет 400; поле берётся из *domain.ValidationError, если он есть в цепочке
func RespondValidation(w http.ResponseWriter, err error, message string) {
	resp := ErrorResponse{Kind: KindValidation, Message: message}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		resp.Field = vErr.Field
		if message == "" {
			resp.Message = vErr.Error()
		}
	}
	RespondJSON(w, http.StatusBadRequest, resp)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindValidation, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindAuthorization, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindAuthorization, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

func RespondSlotFull(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, KindSlotFull, message)
}

func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, KindTransient, msgServiceUnavailable)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, KindValidation, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, msgInternalError)
}

// RespondInternalErrorMessage 500 с пояснением для администратора
func RespondInternalErrorMessage(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, KindInternal, message)
}
