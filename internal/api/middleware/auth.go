package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/identity"
)

const (
	msgMissingToken = "требуется токен авторизации"
	msgInvalidToken = "недействительный токен авторизации"
	msgNotAdmin     = "доступ разрешён только администратору"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier проверяет ID-токен и возвращает личность
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает только запросы с Bearer-токеном администратора
// 401 если токена нет или он недействителен, 403 если email не совпадает с adminEmail
func AdminAuth(verifier TokenVerifier, adminEmail string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			ident, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrInvalidToken) || errors.Is(err, identity.ErrNoEmail) {
					logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				} else {
					logger.Error("%s %s - Token verification failed: %v", r.Method, r.URL.Path, err)
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			if adminEmail == "" || !strings.EqualFold(ident.Email, adminEmail) {
				logger.Warn("%s %s - Not an admin: email=%s", r.Method, r.URL.Path, ident.Email)
				handlers.RespondForbidden(w, msgNotAdmin)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// WithIdentity кладёт личность в контекст
func WithIdentity(ctx context.Context, ident *identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity достаёт личность, положенную AdminAuth
func GetIdentity(ctx context.Context) (*identity.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*identity.Identity)
	return ident, ok && ident != nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		// Браузерный WebSocket не умеет ставить заголовки
		if r.Header.Get("Upgrade") != "" {
			return r.URL.Query().Get("token")
		}
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
