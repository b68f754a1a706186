package handlers

import (
	"log"

	"github.com/anjiri1684/stackfit/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ServeCheckinFeed streams live attendance check-ins to an admin dashboard.
// The client authenticates by sending its JWT as the first frame, the same
// handshake the messaging hub used before it.
func ServeCheckinFeed(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	if role, _ := claims["role"].(string); role != "admin" {
		_ = c.WriteJSON(fiber.Map{"error": "Admin access required"})
		c.Close()
		return
	}

	rawID, _ := claims["admin_id"].(string)
	adminID, err := uuid.Parse(rawID)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid admin ID"})
		c.Close()
		return
	}

	log.Printf("Check-in feed client connected: %s", adminID)
	client := &websocket.Client{AdminID: adminID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	// Keep reading so close frames are processed; inbound messages are
	// ignored.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
