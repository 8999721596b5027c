package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifier_RoundTrip(t *testing.T) {
	v := NewHMACVerifier("secret")
	token, err := v.Issue("uid-1", "owner@salon.example", time.Minute)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "uid-1", Email: "owner@salon.example"}, id)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	v := NewHMACVerifier("secret")
	expired, err := v.Issue("uid-1", "owner@salon.example", -time.Minute)
	require.NoError(t, err)
	foreign, err := NewHMACVerifier("other").Issue("uid-1", "owner@salon.example", time.Minute)
	require.NoError(t, err)
	noEmail, err := v.Issue("uid-1", "", time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = v.Verify(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = v.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = v.Verify(context.Background(), noEmail)
	assert.ErrorIs(t, err, ErrNoEmail)
}

type fakeFirebase struct {
	token *auth.Token
	err   error
}

func (f fakeFirebase) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	v := NewFirebaseVerifier(fakeFirebase{token: &auth.Token{UID: "u1", Claims: map[string]interface{}{"email": "owner@salon.example"}}})

	id, err := v.Verify(context.Background(), "token")

	require.NoError(t, err)
	assert.Equal(t, "owner@salon.example", id.Email)
	assert.Equal(t, "u1", id.UID)
}

func TestFirebaseVerifier_Errors(t *testing.T) {
	_, err := NewFirebaseVerifier(fakeFirebase{err: errors.New("ID token has expired")}).Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewFirebaseVerifier(fakeFirebase{token: &auth.Token{UID: "anon", Claims: map[string]interface{}{}}}).Verify(context.Background(), "token")
	assert.ErrorIs(t, err, ErrNoEmail)
}
