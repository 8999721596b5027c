package uploads

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

var allowedTypes = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
}

// Service загрузка чеков об оплате, логотипа и QR-кода магазина
type Service struct {
	storage ObjectStorage
	clock   TimeProvider
	logger  Logger
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewService создает новый экземпляр сервиса загрузок
func NewService(storage ObjectStorage, logger Logger) *Service {
	return &Service{
		storage: storage,
		clock:   realClock{},
		logger:  logger,
	}
}

// Upload проверяет файл и кладёт его в хранилище
// Объект называется {folder}/{unix-ms}-{safeName}
func (s *Service) Upload(ctx context.Context, kind Kind, file File) (*Result, error) {
	folder, ok := folders[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	// 1. Проверяем размер и тип
	if len(file.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(file.Data) > MaxFileSize {
		s.logger.Warn("Upload: %s %q is %d bytes", kind, file.Name, len(file.Data))
		return nil, fmt.Errorf("%w: max %d MB", ErrTooLarge, MaxFileSize>>20)
	}

	contentType := mediaType(http.DetectContentType(file.Data))
	format, ok := allowedTypes[contentType]
	if declared := mediaType(file.ContentType); declared != "" && declared != "application/octet-stream" {
		_, declaredOK := allowedTypes[declared]
		ok = ok && declaredOK
	}
	if !ok {
		s.logger.Warn("Upload: %s %q has type %s (declared %q)", kind, file.Name, contentType, file.ContentType)
		return nil, ErrUnsupportedType
	}

	// 2. Проверяем, что это действительно изображение
	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		s.logger.Warn("Upload: %s %q failed to decode: %v", kind, file.Name, err)
		return nil, ErrInvalidImage
	}

	data := file.Data
	if kind == KindLogo && img.Bounds().Dx() > maxLogoWidth {
		data, err = resize(img, format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}

	// 3. Загружаем
	objectName := fmt.Sprintf("%s/%d-%s", folder, s.clock.Now().UnixMilli(), SafeName(file.Name, contentType))
	url, err := s.storage.Put(ctx, objectName, data)
	if err != nil {
		s.logger.Error("Upload: failed to store %s: %v", objectName, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.logger.Info("Upload: stored %s (%d bytes)", objectName, len(data))
	return &Result{URL: url, ObjectName: objectName}, nil
}

// mediaType отбрасывает параметры вида "; charset=utf-8"
func mediaType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func resize(img image.Image, format imaging.Format) ([]byte, error) {
	resized := imaging.Resize(img, maxLogoWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SafeName оставляет в имени файла только латиницу, цифры, точку, дефис и подчёркивание
func SafeName(name, contentType string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	safe := strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if safe == "" {
		safe = "file"
	}

	ext := strings.ToLower(path.Ext(safe))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		switch contentType {
		case "image/png":
			safe += ".png"
		default:
			safe += ".jpg"
		}
	}
	return safe
}
