package eventws

import (
	"encoding/json"
	"log"

	"github.com/elif-d/StudioFitBack/internal/services"
	websocket "github.com/gofiber/contrib/websocket"
)

// Hub fans studio mutation events out to every connected member. It replaces
// the refresh-callback hooks the screens used to share: services publish on
// mutation, screens subscribe over the websocket feed.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan services.Event
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	memberID string
	send     chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan services.Event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, memberID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		memberID: memberID,
		send:     make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish enqueues an event for broadcast. Non-blocking so a slow feed never
// stalls the mutating request.
func (h *Hub) Publish(event services.Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("event hub dropped %s event for entity %d", event.Type, event.EntityID)
	}
}

func (h *Hub) deliver(event services.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("event hub encode event: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ReadPump drains the connection until the peer goes away. The feed is
// one-way; inbound frames are ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
