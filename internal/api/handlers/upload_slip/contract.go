package upload_slip

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/uploads"
)

type UploadService interface {
	Upload(ctx context.Context, kind uploads.Kind, file uploads.File) (*uploads.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
