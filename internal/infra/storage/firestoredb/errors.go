package firestoredb

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

var (
	// ErrQuery ошибка чтения или записи документа
	ErrQuery = errors.New("firestore.repository: query failed")

	// ErrDecode документ не удалось разобрать
	ErrDecode = errors.New("firestore.repository: failed to decode document")
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// isTransient коды, при которых всю операцию можно безопасно повторить
func isTransient(err error) bool {
	switch status.Code(err) {
	case codes.Aborted, codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}

// wrapQueryErr приводит ошибку gRPC к ошибкам хранилища
func wrapQueryErr(op string, err error) error {
	if isTransient(err) {
		return fmt.Errorf("%w: %s: %w", storage.ErrTransient, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrQuery, op, err)
}
