package middleware

import (
	"context"
	"net/http"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth requires a valid Bearer token and stores the caller in the context.
func JWTAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Access denied. No token provided.")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		SetActor(c, domain.Actor{UserID: claims.UserID, Role: domain.UserRole(claims.Role)})
		c.Next()
	}
}

type ActiveUserChecker interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireActiveUser rejects tokens of deleted or deactivated accounts.
// It must run after JWTAuth.
func RequireActiveUser(users ActiveUserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		u, err := users.GetByID(c.Request.Context(), actor.UserID)
		if err != nil || u == nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "User not found")
			return
		}
		if !u.IsActive {
			response.Abort(c, http.StatusUnauthorized, "ACCOUNT_DEACTIVATED", "Account is deactivated")
			return
		}
		// role changes take effect without re-login
		SetActor(c, domain.Actor{UserID: u.ID, Role: u.Role})
		c.Next()
	}
}

func SetActor(c *gin.Context, a domain.Actor) {
	c.Set(ctxUserID, a.UserID)
	c.Set(ctxRole, string(a.Role))
}

// ActorFrom returns the authenticated caller placed by JWTAuth.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	id := c.GetInt64(ctxUserID)
	if id == 0 {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: id, Role: domain.UserRole(c.GetString(ctxRole))}, true
}
