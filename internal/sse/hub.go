package sse

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one connected browser session. Events are filtered to the
// session's user: a client only ever receives notifications it owns.
type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *UserMessage
	mu         sync.RWMutex
}

type UserMessage struct {
	UserID uuid.UUID
	Event  Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *UserMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.UserID != msg.UserID {
					continue
				}
				select {
				case client.Send <- data:
				default:
					// Client buffer full, drop the event. The feed is
					// rebuilt from the store on reconnect.
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastNotification pushes a freshly persisted notification to every
// live session belonging to its owner. Fire-and-forget.
func (h *Hub) BroadcastNotification(userID uuid.UUID, notification *models.Notification) {
	h.broadcast <- &UserMessage{
		UserID: userID,
		Event: Event{
			Type: "notification_created",
			Data: notification,
		},
	}
}
