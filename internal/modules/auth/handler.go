package auth

import (
	"errors"
	"net/http"

	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service   *Service
	limit     gin.HandlerFunc
	expiresIn int64
	log       logrus.FieldLogger
}

// NewHandler: limit guards the credential endpoints (register, login,
// change-password). expiresIn is the token TTL reported to clients.
func NewHandler(service *Service, limit gin.HandlerFunc, expiresInSeconds int64, log logrus.FieldLogger) *Handler {
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	return &Handler{service: service, limit: limit, expiresIn: expiresInSeconds, log: log}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.limit, h.Register)
		auth.POST("/login", h.limit, h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	auth := protected.Group("/auth")
	{
		auth.GET("/profile", h.GetProfile)
		auth.PUT("/profile", h.UpdateProfile)
		auth.PUT("/change-password", h.limit, h.ChangePassword)
		auth.POST("/logout", h.Logout)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "User registered successfully", gin.H{
		"token":      res.Token,
		"expires_in": h.expiresIn,
		"user":       toPublic(res.User),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Login successful", gin.H{
		"token":      res.Token,
		"expires_in": h.expiresIn,
		"user":       toPublic(res.User),
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	u, err := h.service.GetProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(u)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), actor.UserID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Profile updated successfully", gin.H{"user": toPublic(u)})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), actor.UserID, req); err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Password changed successfully", nil)
}

// Logout is an acknowledgement only; tokens are stateless and the client drops its copy.
func (h *Handler) Logout(c *gin.Context) {
	response.SuccessWithMessage(c, http.StatusOK, "Logged out successfully. Please remove token from client.", nil)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "User with this email already exists")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, ErrAccountDeactivated):
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_DEACTIVATED", "Account is deactivated. Please contact support.")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrWrongPassword):
		response.Error(c, http.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect")
	case errors.Is(err, ErrInvalidPhone):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", map[string]string{"phone": "phone10"})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("auth request failed")
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
