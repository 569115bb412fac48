package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*httptest.Server, *Hub, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.New("test-secret", time.Hour)
	hub := NewHub(logger.Discard())
	t.Cleanup(hub.Close)

	router := gin.New()
	NewHandler(hub, tokens, nil, logger.Discard()).RegisterRoutes(router.Group("/api/v1"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub, tokens
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/bookings?token=" + token
}

func TestFeed_BroadcastsToAdmins(t *testing.T) {
	srv, hub, tokens := setupServer(t)

	token, err := tokens.GenerateToken(1, string(domain.RoleAdmin))
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello Message
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "connected", hello.Type)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	evt := domain.BookingEvent{ID: "e1", Type: domain.EventBookingCreated, BookingID: 5, Status: domain.BookingPending}
	require.NoError(t, hub.SendBookingEvent(context.Background(), evt))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "booking_event", got.Type)
	require.NotNil(t, got.Event)
	assert.Equal(t, int64(5), got.Event.BookingID)
	assert.Equal(t, domain.EventBookingCreated, got.Event.Type)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestFeed_RejectsNonAdmins(t *testing.T) {
	srv, hub, tokens := setupServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "garbage"), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := tokens.GenerateToken(7, string(domain.RoleCustomer))
	require.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	assert.Equal(t, 0, hub.Count())
}

func TestHub_SendWithoutClients(t *testing.T) {
	hub := NewHub(logger.Discard())
	assert.NoError(t, hub.SendBookingEvent(context.Background(), domain.BookingEvent{ID: "x"}))
}
