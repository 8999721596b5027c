package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims содержимое токена, подписанного общим секретом
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// HMACVerifier проверяет HS256-токены; используется без Firebase (локально и в тестах)
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

// Issue выпускает токен для uid и email
func (v *HMACVerifier) Issue(uid, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *HMACVerifier) Verify(_ context.Context, tokenStr string) (*Identity, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, ErrNoEmail
	}

	return &Identity{UID: claims.Subject, Email: strings.TrimSpace(claims.Email)}, nil
}
