package cloudinary

import "errors"

var (
	// ErrNotConfigured возвращается, если не заданы учётные данные
	ErrNotConfigured = errors.New("cloudinary: credentials are not configured")

	// ErrUploadFailed возвращается, если загрузка завершилась ошибкой
	ErrUploadFailed = errors.New("cloudinary: upload failed")
)
