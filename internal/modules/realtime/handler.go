package realtime

import (
	"net/http"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Message is the envelope written to feed clients.
type Message struct {
	Type  string               `json:"type"`
	Event *domain.BookingEvent `json:"event,omitempty"`
}

type Handler struct {
	hub      *Hub
	tokens   middleware.TokenValidator
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewHandler serves the admin booking feed. Browsers cannot set headers on
// a websocket handshake, so the JWT comes in the token query parameter.
// An empty allowedOrigins accepts any origin.
func NewHandler(hub *Hub, tokens middleware.TokenValidator, allowedOrigins []string, log logrus.FieldLogger) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Handler{
		hub:    hub,
		tokens: tokens,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok || r.Header.Get("Origin") == ""
			},
		},
	}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/ws/bookings", h.Feed)
}

// Feed: GET /ws/bookings?token=JWT
func (h *Handler) Feed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}
	if domain.UserRole(claims.Role) != domain.RoleAdmin {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	cl := &client{userID: claims.UserID, conn: conn}
	h.hub.register(cl)
	log := h.log.WithField("user_id", claims.UserID)
	log.Info("admin feed connected")

	done := make(chan struct{})
	defer func() {
		close(done)
		h.hub.unregister(cl)
		log.Info("admin feed disconnected")
	}()

	_ = cl.writeJSON(Message{Type: "connected"})

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.pingLoop(cl, done)
	h.readLoop(cl)
}

func (h *Handler) pingLoop(cl *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := cl.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards client frames; it exists to process control frames
// and notice disconnects.
func (h *Handler) readLoop(cl *client) {
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("user_id", cl.userID).Debug("websocket read error")
			}
			return
		}
	}
}
