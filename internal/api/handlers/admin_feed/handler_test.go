package admin_feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/livefeed"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func TestHandle_StreamsPublishedEvents(t *testing.T) {
	hub := livefeed.NewHub(4, logger.NewNop())
	server := httptest.NewServer(http.HandlerFunc(NewHandler(hub, nil, logger.NewNop()).Handle))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(domain.BookingEvent{
		Type:      domain.EventBookingCreated,
		BookingID: "b-1",
		Slot:      domain.SlotKey{Date: "2024-01-01", Time: "09:00"},
		Status:    domain.StatusPending,
		At:        time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg livefeed.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "booking.created", msg.Type)
	assert.Equal(t, "2024-01-01_09:00", msg.SlotID)
	assert.Equal(t, "Pending", msg.Status)
}

func TestHandle_UnsubscribesOnClose(t *testing.T) {
	hub := livefeed.NewHub(4, logger.NewNop())
	server := httptest.NewServer(http.HandlerFunc(NewHandler(hub, nil, logger.NewNop()).Handle))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandle_RejectsForeignOrigin(t *testing.T) {
	hub := livefeed.NewHub(4, logger.NewNop())
	server := httptest.NewServer(http.HandlerFunc(NewHandler(hub, []string{"https://salon.example"}, logger.NewNop()).Handle))
	defer server.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.Subscribers())
}
