package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type bookingData struct {
	Booking domain.Booking `json:"booking"`
}

type testServer struct {
	router *gin.Engine
	room   *domain.Room
}

// actorHeader lets tests pick the caller without minting tokens.
const actorHeader = "X-Test-Actor"

func setupRouter(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	rooms := repository.NewRoomRepository(db)
	room := &domain.Room{
		RoomNumber: "101",
		RoomType:   domain.RoomDouble,
		Price:      1000,
		Capacity:   domain.RoomCapacity{Adults: 2, Children: 1},
		BedType:    domain.BedQueen,
		Floor:      1,
		IsActive:   true,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	service := NewService(repository.NewBookingRepository(db), rooms, nil, nil,
		WithClock(func() time.Time { return testNow }))
	handler := NewHandler(service, logger.Discard())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(func(c *gin.Context) {
		switch c.GetHeader(actorHeader) {
		case "":
			c.Next()
			return
		case "admin":
			middleware.SetActor(c, admin)
		case "other":
			middleware.SetActor(c, domain.Actor{UserID: 8, Role: domain.RoleCustomer})
		default:
			middleware.SetActor(c, customer)
		}
		c.Next()
	})
	handler.RegisterProtectedRoutes(protected)

	return &testServer{router: router, room: room}
}

func (s *testServer) do(t *testing.T, method, path, as string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set(actorHeader, as)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) createBooking(t *testing.T, checkIn, checkOut string) domain.Booking {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/bookings", "customer", s.bookingBody(checkIn, checkOut, 2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data bookingData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Booking
}

func (s *testServer) bookingBody(checkIn, checkOut string, adults int) gin.H {
	return gin.H{
		"room_id":   s.room.ID,
		"check_in":  checkIn,
		"check_out": checkOut,
		"guests":    gin.H{"adults": adults, "children": 0},
		"guest_details": gin.H{
			"primary_guest": gin.H{"first_name": "Asha", "last_name": "Rao", "email": "asha@example.com"},
		},
		"payment_method": "credit-card",
	}
}

func TestHandler_CreateBooking(t *testing.T) {
	s := setupRouter(t)

	b := s.createBooking(t, "2026-06-10", "2026-06-12")

	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, "BK2026000001", b.BookingNumber)
	assert.Equal(t, 2, b.Pricing.Nights)
	assert.Equal(t, 2360.0, b.Pricing.Total)
	assert.Equal(t, "Asha", b.GuestDetails.PrimaryGuest.FirstName)
}

func TestHandler_CreateBooking_Errors(t *testing.T) {
	s := setupRouter(t)

	w, env := s.do(t, http.MethodPost, "/api/v1/bookings", "customer", s.bookingBody("2026-06-12", "2026-06-10", 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/bookings", "customer", s.bookingBody("2026-06-10", "2026-06-12", 3))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CAPACITY_EXCEEDED", env.Error.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/bookings", "customer", gin.H{"check_in": "2026-06-10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/bookings", "", s.bookingBody("2026-06-10", "2026-06-12", 1))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestHandler_PaymentConfirmationClaimsRoom(t *testing.T) {
	s := setupRouter(t)

	first := s.createBooking(t, "2026-06-10", "2026-06-12")
	second := s.createBooking(t, "2026-06-11", "2026-06-13")

	w, env := s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/payment", first.ID), "customer",
		gin.H{"status": "completed", "transaction_id": "txn_1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data bookingData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, domain.BookingConfirmed, data.Booking.Status)

	w, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/payment", second.ID), "customer",
		gin.H{"status": "completed"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ROOM_UNAVAILABLE", env.Error.Code)

	// the room is now taken for overlapping dates
	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/availability", s.room.ID), "",
		gin.H{"check_in": "2026-06-11", "check_out": "2026-06-12"})
	require.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		Available bool `json:"available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &avail))
	assert.False(t, avail.Available)

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/availability", s.room.ID), "",
		gin.H{"check_in": "2026-06-12", "check_out": "2026-06-14"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &avail))
	assert.True(t, avail.Available)
}

func TestHandler_CancelBooking(t *testing.T) {
	s := setupRouter(t)
	b := s.createBooking(t, "2026-06-10", "2026-06-12")
	path := fmt.Sprintf("/api/v1/bookings/%d/cancel", b.ID)

	w, env := s.do(t, http.MethodPut, path, "other", gin.H{"reason": "not mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	w, env = s.do(t, http.MethodPut, path, "customer", gin.H{"reason": "changed plans"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res CancellationResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 2360.0, res.RefundAmount)
	assert.Equal(t, domain.RefundFull, res.RefundStatus)

	w, env = s.do(t, http.MethodPut, path, "customer", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOT_CANCELLABLE", env.Error.Code)
}

func TestHandler_CheckInRequiresAdmin(t *testing.T) {
	s := setupRouter(t)
	b := s.createBooking(t, "2026-06-01", "2026-06-03")
	path := fmt.Sprintf("/api/v1/bookings/%d/checkin", b.ID)

	w, _ := s.do(t, http.MethodPut, path, "customer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(t, http.MethodPut, path, "admin", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	w, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/bookings/%d/payment", b.ID), "customer", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodPut, path, "admin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data bookingData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, domain.BookingCheckedIn, data.Booking.Status)
}

func TestHandler_GetAndList(t *testing.T) {
	s := setupRouter(t)
	b := s.createBooking(t, "2026-06-10", "2026-06-12")
	s.createBooking(t, "2026-07-10", "2026-07-12")

	w, _ := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", b.ID), "other", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bookings/999", "customer", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bookings/abc", "customer", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/bookings?limit=1&sort=check_in", "customer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Bookings   []domain.Booking `json:"bookings"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, b.ID, list.Bookings[0].ID)
	assert.Equal(t, int64(2), list.Pagination.TotalItems)
	assert.Equal(t, 2, list.Pagination.TotalPages)
}
