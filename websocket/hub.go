package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// The hub pushes gym check-ins to every connected admin dashboard as they are
// marked, so the front desk view updates without polling.

type Client struct {
	AdminID uuid.UUID
	Conn    *websocket.Conn
}

type CheckinEvent struct {
	MemberID   uuid.UUID `json:"member_id"`
	MemberName string    `json:"member_name"`
	Status     string    `json:"status"`
	Date       string    `json:"date"`
	MarkedAt   time.Time `json:"marked_at"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan CheckinEvent, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Dashboard client registered: %s", client.AdminID)
			clientsMu.Lock()
			clients[client.AdminID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Dashboard client unregistered: %s", client.AdminID)
			clientsMu.Lock()
			if conn, ok := clients[client.AdminID]; ok && conn == client.Conn {
				delete(clients, client.AdminID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			for adminID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending check-in event to %s: %v", adminID, err)
				}
			}
			clientsMu.RUnlock()
		}
	}
}

// PublishCheckin hands an event to the hub without blocking the request that
// marked the attendance.
func PublishCheckin(event CheckinEvent) {
	select {
	case Broadcast <- event:
	default:
		log.Println("Check-in feed buffer full, dropping event")
	}
}
