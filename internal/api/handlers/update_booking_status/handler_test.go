package update_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	updateStatus "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

const adminEmail = "owner@salon.example"

func setup(t *testing.T) (*mux.Router, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	repo := memory.NewBookingRepository(store)
	require.NoError(t, repo.Create(context.Background(), &domain.Booking{
		ID:        "b-1",
		Name:      "Ploy",
		Phone:     "0812345678",
		Service:   "ตัดผม",
		Date:      "2024-01-01",
		Time:      "09:00",
		Status:    domain.StatusPending,
		CreatedAt: time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
	}))

	uc := updateStatus.NewUseCase(repo, nil, adminEmail, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/bookings/{bookingId}/status", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)
	return r, store
}

func patch(r http.Handler, id, body, email string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/status", strings.NewReader(body))
	if email != "" {
		req = req.WithContext(middleware.WithIdentity(req.Context(), &identity.Identity{UID: "u", Email: email}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Confirms(t *testing.T) {
	r, _ := setup(t)

	rec := patch(r, "b-1", `{"status":"Confirmed","note":"slip ok"}`, adminEmail)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Confirmed", body.Status)
	require.NotNil(t, body.AdminNote)
	assert.Equal(t, "slip ok", *body.AdminNote)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		email  string
		status int
		kind   string
	}{
		{name: "unknown booking", id: "missing", body: `{"status":"Confirmed"}`, email: adminEmail, status: http.StatusNotFound, kind: handlers.KindNotFound},
		{name: "bad status", id: "b-1", body: `{"status":"Done"}`, email: adminEmail, status: http.StatusBadRequest, kind: handlers.KindValidation},
		{name: "not admin", id: "b-1", body: `{"status":"Confirmed"}`, email: "x@mail.example", status: http.StatusForbidden, kind: handlers.KindAuthorization},
		{name: "no identity", id: "b-1", body: `{"status":"Confirmed"}`, email: "", status: http.StatusUnauthorized, kind: handlers.KindAuthorization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setup(t)

			rec := patch(r, tt.id, tt.body, tt.email)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Kind)
		})
	}
}
