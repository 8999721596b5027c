package identity

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier подмножество *auth.Client
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier проверяет ID-токены Firebase Authentication
type FirebaseVerifier struct {
	client TokenVerifier
}

func NewFirebaseVerifier(client TokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify проверяет подпись и срок действия токена и извлекает email
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrNoEmail
	}

	return &Identity{UID: token.UID, Email: email}, nil
}
