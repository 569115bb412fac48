package admin

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/export", h.ExportBookings)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/status", h.SetUserStatus)
	}
}

// ListBookings returns bookings of every guest.
// @Summary		List all bookings
// @Description	Filtered, paginated list of bookings across all users. Admin only.
// @Tags		Admin
// @Security	BearerAuth
// @Param		status	query	string	false	"Booking status"
// @Param		user_id	query	int		false	"Owner id"
// @Param		room_id	query	int		false	"Room id"
// @Param		from	query	string	false	"Stays ending after this date (YYYY-MM-DD)"
// @Param		to		query	string	false	"Stays starting before this date (YYYY-MM-DD)"
// @Param		sort	query	string	false	"Sort field, prefix with - for descending"	default(-created_at)
// @Param		page	query	int		false	"Page number"	default(1)
// @Param		limit	query	int		false	"Page size"	default(20)
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/admin/bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	var q BookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	rows, total, err := h.service.ListBookings(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	page, limit := normalizePage(q.Page, q.Limit)
	response.Success(c, http.StatusOK, gin.H{
		"bookings":   rows,
		"pagination": response.NewPagination(page, limit, total),
	})
}

// ExportBookings streams the filtered ledger as a spreadsheet.
// @Summary		Export bookings
// @Description	Same filters as the list endpoint, rendered as an .xlsx workbook (max 10000 rows).
// @Tags		Admin
// @Security	BearerAuth
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200	{file}		file
// @Failure		403	{object}	map[string]interface{}
// @Router		/admin/bookings/export [GET]
func (h *Handler) ExportBookings(c *gin.Context) {
	var q BookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	rows, err := h.service.ExportBookings(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}

	// render fully before writing headers so failures still get a JSON error
	var buf bytes.Buffer
	if err := WriteBookingsXLSX(&buf, rows); err != nil {
		h.writeError(c, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// @Summary		List users
// @Tags		Admin
// @Security	BearerAuth
// @Param		role		query	string	false	"customer or admin"
// @Param		is_active	query	bool	false	"Active flag"
// @Param		search		query	string	false	"Name or email"
// @Param		page		query	int		false	"Page number"	default(1)
// @Param		limit		query	int		false	"Page size"	default(20)
// @Success		200	{object}	map[string]interface{}
// @Router		/admin/users [GET]
func (h *Handler) ListUsers(c *gin.Context) {
	var q UsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	page, limit := normalizePage(q.Page, q.Limit)
	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": response.NewPagination(page, limit, total),
	})
}

// SetUserStatus activates or deactivates an account.
// @Summary		Set user status
// @Description	Admins cannot deactivate themselves or another admin.
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int						true	"User id"
// @Param		body	body	SetUserStatusRequest	true	"New status"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/users/{id}/status [PUT]
func (h *Handler) SetUserStatus(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return
	}

	var req SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.service.SetUserStatus(c.Request.Context(), actor, id, *req.IsActive)
	if err != nil {
		h.writeError(c, err)
		return
	}

	msg := "User deactivated successfully"
	if u.IsActive {
		msg = "User activated successfully"
	}
	response.SuccessWithMessage(c, http.StatusOK, msg, UserStatus{ID: u.ID, Email: u.Email, IsActive: u.IsActive})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrCannotDeactivateSelf), errors.Is(err, ErrCannotDeactivateAdmin):
		response.Error(c, http.StatusBadRequest, "INVALID_OPERATION", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("admin request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func bindError(c *gin.Context, err error) {
	if fields := validator.Fields(err); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", fields)
		return
	}
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
}
