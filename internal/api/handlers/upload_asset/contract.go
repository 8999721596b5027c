package upload_asset

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/service/uploads"
)

type UploadService interface {
	Upload(ctx context.Context, kind uploads.Kind, file uploads.File) (*uploads.Result, error)
}

type SettingsService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
