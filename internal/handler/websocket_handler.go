package handler

import (
	"net/http"

	"github.com/24studio/finance-backend/internal/middleware"
	"github.com/24studio/finance-backend/internal/ws"
	gws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades authenticated clients onto the event hub
type WebSocketHandler struct {
	hub            *ws.Hub
	sessionManager *middleware.SessionManager
	allowedOrigins map[string]bool
	upgrader       gws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *ws.Hub, sessionManager *middleware.SessionManager, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		sessionManager: sessionManager,
		allowedOrigins: originMap,
	}

	h.upgrader = gws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Same-origin or non-browser clients
		return true
	}
	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().Str("origin", origin).Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws. The session
// cookie rides along on the handshake, so the same token that gates the
// HTTP API gates the event stream.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		log.Debug().Msg("WebSocket connection rejected: missing session")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	principal := h.sessionManager.Parse(cookie.Value)
	if principal == nil {
		log.Debug().Msg("WebSocket connection rejected: invalid session")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := ws.NewClient(conn, principal.Role, h.hub)
	h.hub.Register(client)

	log.Info().
		Int32("user_id", principal.UserID).
		Str("role", string(principal.Role)).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
