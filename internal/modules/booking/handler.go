package booking

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/rooms/:id/availability", h.CheckAvailability)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	bookings := protected.Group("/bookings")
	{
		bookings.GET("", h.ListMyBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.ModifyBooking)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.PUT("/:id/payment", h.ConfirmPayment)
		bookings.PUT("/:id/checkin", middleware.AdminOnly(), h.CheckIn)
		bookings.PUT("/:id/checkout", middleware.AdminOnly(), h.CheckOut)
	}
}

// CheckAvailability quotes a stay without reserving anything.
// @Summary		Check room availability
// @Description	Reports whether no confirmed or checked-in booking overlaps [check_in, check_out) and prices the stay.
// @Tags		Bookings
// @Accept		json
// @Produce		json
// @Param		id		path	int					true	"Room id"
// @Param		body	body	AvailabilityRequest	true	"Stay"
// @Success		200	{object}	AvailabilityResult
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/rooms/{id}/availability [POST]
func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID, ok := parseID(c)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out dates are required")
		return
	}

	res, err := h.service.RoomAvailability(c.Request.Context(), roomID, req.CheckIn.Time, req.CheckOut.Time)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateBooking reserves a room for the caller.
// @Summary		Create booking
// @Description	Creates a pending booking. Fails with ROOM_UNAVAILABLE when an occupying booking overlaps.
// @Tags		Bookings
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		body	body	CreateBookingRequest	true	"Booking"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Booking created successfully", gin.H{"booking": b})
}

// @Summary		List my bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Param		status	query	string	false	"Booking status"
// @Param		sort	query	string	false	"created_at or check_in, prefix - for descending"
// @Param		page	query	int		false	"Page number"	default(1)
// @Param		limit	query	int		false	"Page size"	default(10)
// @Success		200	{object}	map[string]interface{}
// @Router		/bookings [GET]
func (h *Handler) ListMyBookings(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	q = q.normalize()

	rows, total, err := h.service.ListMyBookings(c.Request.Context(), actor, q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"bookings":   rows,
		"pagination": response.NewPagination(q.Page, q.Limit, total),
	})
}

func (h *Handler) GetBooking(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ModifyBooking(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req ModifyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.service.ModifyBooking(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Booking updated successfully", gin.H{"booking": b})
}

// CancelBooking applies the refund policy and frees the room.
// @Summary		Cancel booking
// @Description	Allowed for pending or confirmed bookings more than 24 hours before check-in.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id		path	int						true	"Booking id"
// @Param		body	body	CancelBookingRequest	false	"Reason"
// @Success		200	{object}	CancellationResult
// @Failure		403	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/bookings/{id}/cancel [PUT]
func (h *Handler) CancelBooking(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	res, err := h.service.CancelBooking(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Booking cancelled successfully", res)
}

// @Summary		Record payment outcome
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id		path	int						true	"Booking id"
// @Param		body	body	ConfirmPaymentRequest	true	"completed or failed"
// @Success		200	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/bookings/{id}/payment [PUT]
func (h *Handler) ConfirmPayment(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.service.ConfirmPayment(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Payment status updated", gin.H{"booking": b})
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Guest checked in", gin.H{"booking": b})
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Guest checked out", gin.H{"booking": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidDateRange):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", err.Error())
	case errors.Is(err, ErrCapacityExceeded):
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrRoomUnavailable):
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusConflict, "NOT_CANCELLABLE", "Booking cannot be cancelled. Cancellation must be made at least 24 hours before check-in.")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("booking request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func bindError(c *gin.Context, err error) {
	if fields := validator.Fields(err); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", fields)
		return
	}
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func actorAndID(c *gin.Context) (actor domain.Actor, id int64, ok bool) {
	actor, ok = middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return actor, 0, false
	}
	id, ok = parseID(c)
	return actor, id, ok
}
