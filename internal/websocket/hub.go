package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event types pushed to the UI.
const (
	EventState          = "state"
	EventProgress       = "progress"
	EventReport         = "report"
	EventUsernameReport = "username_report"
	EventSubError       = "sub_error"
)

// Event is the wire envelope for everything the hub pushes.
type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// Hub manages a single active UI connection. The investigation view is a
// one-person tool: a newer connection displaces the previous one instead of
// fanning out.
type Hub struct {
	client     *Client // nil when no UI is connected
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Client represents one active websocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.client != nil {
				close(h.client.send)
			}
			h.client = client
			h.mutex.Unlock()
			log.Info("UI client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if h.client == client {
				close(h.client.send)
				h.client = nil
				log.Info("UI client disconnected")
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			if h.client != nil {
				select {
				case h.client.send <- message:
				default:
					// Slow consumer; drop the connection rather than block
					// the controllers behind it.
					log.Warn("UI client send buffer full, closing connection")
					close(h.client.send)
					h.client = nil
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish marshals one event and hands it to the active client, if any.
func (h *Hub) Publish(eventType string, data any) {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("failed to marshal %s event: %v", eventType, err)
		return
	}

	h.mutex.RLock()
	clientExists := h.client != nil
	h.mutex.RUnlock()

	if clientExists {
		h.broadcast <- payload
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// The UI never sends anything meaningful; reading only detects the
		// disconnect.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("websocket read: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		c.conn.WriteMessage(websocket.TextMessage, message)
	}
}
