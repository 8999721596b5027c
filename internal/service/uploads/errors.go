package uploads

import "errors"

var (
	// ErrUnsupportedType возвращается для файлов, отличных от JPEG и PNG
	ErrUnsupportedType = errors.New("uploads: only image/jpeg and image/png are accepted")

	// ErrTooLarge возвращается, если файл больше допустимого размера
	ErrTooLarge = errors.New("uploads: file is too large")

	// ErrEmptyFile возвращается для пустого файла
	ErrEmptyFile = errors.New("uploads: file is empty")

	// ErrInvalidImage возвращается, если содержимое не декодируется как изображение
	ErrInvalidImage = errors.New("uploads: file is not a valid image")

	// ErrUnknownKind возвращается для неизвестного вида загрузки
	ErrUnknownKind = errors.New("uploads: unknown upload kind")

	// ErrStorage возвращается при ошибке объектного хранилища
	ErrStorage = errors.New("uploads: storage error")
)
