package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/nirmaantech/portal_backend/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades an authenticated dashboard connection and
// registers it with the hub. The JWT middleware already ran, so the
// caller passes the verified username and role.
func HandleWebSocket(c echo.Context, hub *Hub, username string, role models.Role) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		Username: username,
		Role:     role,
		Conn:     conn,
	}

	hub.register <- client

	conn.WriteJSON(Notification{
		Type:    "connected",
		Message: "WebSocket connection established",
	})

	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			// Drain client messages; the portal only pushes
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
