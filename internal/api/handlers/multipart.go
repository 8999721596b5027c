package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrFileTooLarge тело multipart-запроса превышает лимит
var ErrFileTooLarge = errors.New("multipart file is too large")

// multipartOverhead запас на заголовки частей multipart
const multipartOverhead = 64 << 10

// UploadedFile файл из multipart-формы
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadMultipartFile читает поле формы field; файлы больше maxSize отклоняются
func ReadMultipartFile(w http.ResponseWriter, r *http.Request, field string, maxSize int64) (*UploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("form file %q: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}

	return &UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
