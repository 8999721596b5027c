package uploads

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeStorage struct {
	objects map[string][]byte
	err     error
}

func (f *fakeStorage) Put(_ context.Context, objectName string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[objectName] = data
	return "https://cdn.example/" + objectName, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.UnixMilli(1700000000000) }

func newService(storage ObjectStorage) *Service {
	svc := NewService(storage, logger.NewNop())
	svc.clock = fixedClock{}
	return svc
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))
	return buf.Bytes()
}

func TestUpload_Slip(t *testing.T) {
	storage := &fakeStorage{}
	svc := newService(storage)

	res, err := svc.Upload(context.Background(), KindSlip, File{Name: "my slip (1).PNG", ContentType: "image/png", Data: pngBytes(t, 10, 10)})

	require.NoError(t, err)
	assert.Equal(t, "slips/1700000000000-my_slip_1_.PNG", res.ObjectName)
	assert.Equal(t, "https://cdn.example/slips/1700000000000-my_slip_1_.PNG", res.URL)
}

func TestUpload_JPEGWithoutExtension(t *testing.T) {
	svc := newService(&fakeStorage{})

	res, err := svc.Upload(context.Background(), KindQR, File{Name: "qr", Data: jpegBytes(t)})

	require.NoError(t, err)
	assert.Equal(t, "qrs/1700000000000-qr.jpg", res.ObjectName)
}

func TestUpload_LogoIsDownsized(t *testing.T) {
	storage := &fakeStorage{}
	svc := newService(storage)

	res, err := svc.Upload(context.Background(), KindLogo, File{Name: "logo.png", Data: pngBytes(t, 1024, 256)})
	require.NoError(t, err)

	stored, _, err := image.Decode(bytes.NewReader(storage.objects[res.ObjectName]))
	require.NoError(t, err)
	assert.Equal(t, 512, stored.Bounds().Dx())
	assert.Equal(t, 128, stored.Bounds().Dy())
}

func TestUpload_Rejects(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		file File
		err  error
	}{
		{name: "empty", kind: KindSlip, file: File{Name: "a.png"}, err: ErrEmptyFile},
		{name: "text", kind: KindSlip, file: File{Name: "a.png", Data: []byte("hello world")}, err: ErrUnsupportedType},
		{name: "declared pdf", kind: KindSlip, file: File{Name: "a.pdf", ContentType: "application/pdf", Data: pngBytes(t, 4, 4)}, err: ErrUnsupportedType},
		{name: "too large", kind: KindSlip, file: File{Name: "a.png", Data: make([]byte, MaxFileSize+1)}, err: ErrTooLarge},
		{name: "truncated png", kind: KindSlip, file: File{Name: "a.png", Data: pngBytes(t, 4, 4)[:20]}, err: ErrInvalidImage},
		{name: "unknown kind", kind: Kind("avatar"), file: File{Name: "a.png", Data: pngBytes(t, 4, 4)}, err: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(&fakeStorage{}).Upload(context.Background(), tt.kind, tt.file)

			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUpload_StorageFailure(t *testing.T) {
	svc := newService(&fakeStorage{err: errors.New("503")})

	_, err := svc.Upload(context.Background(), KindSlip, File{Name: "a.png", Data: pngBytes(t, 4, 4)})

	assert.ErrorIs(t, err, ErrStorage)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("logo")
	require.NoError(t, err)
	assert.Equal(t, KindLogo, kind)

	_, err = ParseKind("slip/../x")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
