package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/database"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type tokenData struct {
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expires_in"`
	User      UserPublic `json:"user"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:auth_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := database.Connect(dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	users := repository.NewUserRepository(db)
	tokens := jwt.New("test-secret", time.Hour)
	service := NewService(users, tokens, logger.Discard())
	service.cost = bcrypt.MinCost
	handler := NewHandler(service, nil, int64(tokens.TTL().Seconds()), logger.Discard())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterPublicRoutes(v1)
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(tokens), middleware.RequireActiveUser(users))
	handler.RegisterProtectedRoutes(protected)
	return router
}

func performRequest(router *gin.Engine, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var env envelope
	_ = json.Unmarshal(resp.Body.Bytes(), &env)
	return resp, env
}

func registerBody() gin.H {
	return gin.H{
		"first_name": "Asha",
		"last_name":  "Rao",
		"email":      "asha@example.com",
		"password":   "secret123",
		"phone":      "9876543210",
	}
}

func TestHandler_RegisterLoginProfile(t *testing.T) {
	router := setupRouter(t)

	resp, env := performRequest(router, http.MethodPost, "/api/v1/auth/register", registerBody(), "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var reg tokenData
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, int64(3600), reg.ExpiresIn)
	assert.Equal(t, "customer", reg.User.Role)
	assert.Equal(t, "Asha Rao", reg.User.FullName)

	resp, env = performRequest(router, http.MethodPost, "/api/v1/auth/register", registerBody(), "")
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "EMAIL_EXISTS", env.Error.Code)

	resp, env = performRequest(router, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "asha@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	resp, env = performRequest(router, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ASHA@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var login tokenData
	require.NoError(t, json.Unmarshal(env.Data, &login))

	resp, env = performRequest(router, http.MethodGet, "/api/v1/auth/profile", nil, login.Token)
	require.Equal(t, http.StatusOK, resp.Code)
	var profile struct {
		User UserPublic `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "asha@example.com", profile.User.Email)

	resp, _ = performRequest(router, http.MethodPut, "/api/v1/auth/change-password",
		gin.H{"current_password": "secret123", "new_password": "newsecret"}, login.Token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp, _ = performRequest(router, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "asha@example.com", "password": "newsecret"}, "")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp, _ = performRequest(router, http.MethodPost, "/api/v1/auth/logout", nil, login.Token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHandler_RegisterValidation(t *testing.T) {
	router := setupRouter(t)

	body := registerBody()
	body["email"] = "not-an-email"
	body["password"] = "123"
	resp, env := performRequest(router, http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["email"])
	assert.Equal(t, "min", env.Error.Details["password"])

	body = registerBody()
	body["phone"] = "12345"
	resp, env = performRequest(router, http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "phone10", env.Error.Details["phone"])
}

func TestHandler_ProfileRequiresToken(t *testing.T) {
	router := setupRouter(t)

	resp, env := performRequest(router, http.MethodGet, "/api/v1/auth/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	resp, env = performRequest(router, http.MethodGet, "/api/v1/auth/profile", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "INVALID_TOKEN", env.Error.Code)
}
