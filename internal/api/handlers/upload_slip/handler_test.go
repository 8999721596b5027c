package upload_slip

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/uploads"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeStorage struct {
	objects []string
}

func (f *fakeStorage) Put(_ context.Context, objectName string, _ []byte) (string, error) {
	f.objects = append(f.objects, objectName)
	return "https://cdn.example/" + objectName, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/slip", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandle_UploadsSlip(t *testing.T) {
	storage := &fakeStorage{}
	h := NewHandler(uploads.NewService(storage, logger.NewNop()), logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, multipartRequest(t, "file", "slip.png", pngBytes(t)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body UploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, storage.objects, 1)
	assert.True(t, strings.HasPrefix(storage.objects[0], "slips/"))
	assert.Equal(t, "https://cdn.example/"+storage.objects[0], body.URL)
}

func TestHandle_RejectsNonImage(t *testing.T) {
	storage := &fakeStorage{}
	h := NewHandler(uploads.NewService(storage, logger.NewNop()), logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, multipartRequest(t, "file", "slip.pdf", []byte("%PDF-1.4 not an image")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, storage.objects)
}

func TestHandle_MissingField(t *testing.T) {
	h := NewHandler(uploads.NewService(&fakeStorage{}, logger.NewNop()), logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, multipartRequest(t, "other", "slip.png", pngBytes(t)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_TooLarge(t *testing.T) {
	storage := &fakeStorage{}
	h := NewHandler(uploads.NewService(storage, logger.NewNop()), logger.NewNop())
	rec := httptest.NewRecorder()

	h.Handle(rec, multipartRequest(t, "file", "slip.png", make([]byte, uploads.MaxFileSize+1)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, storage.objects)
}
