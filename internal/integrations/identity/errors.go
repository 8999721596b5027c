package identity

import "errors"

var (
	// ErrInvalidToken возвращается, если токен не прошёл проверку
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrNoEmail возвращается, если в токене нет email
	ErrNoEmail = errors.New("identity: token has no email claim")
)
