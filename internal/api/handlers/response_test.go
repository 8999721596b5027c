package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondValidation_TakesFieldFromChain(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("wrapped: %w", domain.NewValidationError("phone", "is required"))

	RespondValidation(rec, err, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, KindValidation, body.Kind)
	assert.Equal(t, "phone", body.Field)
	assert.Equal(t, "phone: is required", body.Message)
}

func TestRespondHelpers_StatusAndKind(t *testing.T) {
	tests := []struct {
		name   string
		call   func(w http.ResponseWriter)
		status int
		kind   string
	}{
		{"slot full", func(w http.ResponseWriter) { RespondSlotFull(w, "x") }, http.StatusConflict, KindSlotFull},
		{"unauthorized", func(w http.ResponseWriter) { RespondUnauthorized(w, "x") }, http.StatusUnauthorized, KindAuthorization},
		{"forbidden", func(w http.ResponseWriter) { RespondForbidden(w, "x") }, http.StatusForbidden, KindAuthorization},
		{"not found", func(w http.ResponseWriter) { RespondNotFound(w, "x") }, http.StatusNotFound, KindNotFound},
		{"transient", RespondServiceUnavailable, http.StatusServiceUnavailable, KindTransient},
		{"internal", RespondInternalError, http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.call(rec)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.kind, decodeError(t, rec).Kind)
		})
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))

	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "a", dst.Name)
}
