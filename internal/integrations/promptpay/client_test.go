package promptpay

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func TestCRC16(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}

func TestPayload_Phone(t *testing.T) {
	payload, err := Payload("081-234-5678", 0)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "000201010211"))
	assert.Contains(t, payload, "29370016A000000677010111011300668123456785802TH5303764")
	assert.Len(t, payload, 74)
	assert.Equal(t, payload[len(payload)-4:], strings.ToUpper(payload[len(payload)-4:]))
}

func TestPayload_WithAmount(t *testing.T) {
	payload, err := Payload("0812345678", 500)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload, "000201010212"))
	assert.Contains(t, payload, "5406500.00")

	body := payload[:len(payload)-4]
	assert.True(t, strings.HasSuffix(body, "6304"))
}

func TestPayload_Targets(t *testing.T) {
	_, err := Payload("1234567890123", 0)
	require.NoError(t, err)
	_, err = Payload("123456789012345", 0)
	require.NoError(t, err)

	_, err = Payload("12345", 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = Payload("0812345678", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRenderQR(t *testing.T) {
	data, err := RenderQR("0812345678", 500)

	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, qrSize, qrSize), img.Bounds())
}

func TestClient_FetchQR(t *testing.T) {
	pngData, err := RenderQR("0812345678", 0)
	require.NoError(t, err)

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	data, err := client.FetchQR(context.Background(), "081-234-5678", 500)

	require.NoError(t, err)
	assert.Equal(t, "/0812345678/500.png", gotPath)
	assert.Equal(t, pngData, data)
}

func TestClient_GracefulDegradation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.FetchQR(context.Background(), "0812345678", 100)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	data, err := client.QRWithGracefulDegradation(context.Background(), "0812345678", 100)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)

	_, err = client.QRWithGracefulDegradation(context.Background(), "bad", 100)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestClient_NoBaseURLRendersLocally(t *testing.T) {
	client := NewClient("", time.Second, logger.NewNop())

	data, err := client.QRWithGracefulDegradation(context.Background(), "0812345678", 0)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
