package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

const adminEmail = "owner@salon.example"

func adminOnly(t *testing.T, verifier TokenVerifier) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := GetIdentity(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Caller", ident.Email)
		w.WriteHeader(http.StatusNoContent)
	})
	return AdminAuth(verifier, adminEmail, logger.NewNop())(next)
}

func TestAdminAuth(t *testing.T) {
	verifier := identity.NewHMACVerifier("test-secret")
	adminToken, err := verifier.Issue("uid-1", "Owner@Salon.Example", time.Hour)
	require.NoError(t, err)
	customerToken, err := verifier.Issue("uid-2", "customer@mail.example", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + adminToken, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer " + customerToken, status: http.StatusForbidden},
		{name: "admin with other case", header: "Bearer " + adminToken, status: http.StatusNoContent},
	}

	h := adminOnly(t, verifier)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAdminAuth_WebSocketTokenFromQuery(t *testing.T) {
	verifier := identity.NewHMACVerifier("test-secret")
	token, err := verifier.Issue("uid-1", adminEmail, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/feed?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()

	adminOnly(t, verifier).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, adminEmail, rec.Header().Get("X-Caller"))
}

func TestAdminAuth_QueryTokenIgnoredForPlainRequests(t *testing.T) {
	verifier := identity.NewHMACVerifier("test-secret")
	token, err := verifier.Issue("uid-1", adminEmail, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings?token="+token, nil)
	rec := httptest.NewRecorder()

	adminOnly(t, verifier).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("salon-test", prometheus.NewRegistry())
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "salon-test"))
	r.HandleFunc("/api/v1/admin/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/"+id, nil))
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/admin/bookings/{bookingId}", "404"))
	assert.Equal(t, float64(2), count)
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(1, 2, logger.NewNop())
	fixed := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))

	fixed = fixed.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", clientIP(req))
}
