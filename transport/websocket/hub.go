package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"battleship-server/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. setup_complete with a full
	// fleet is the largest legitimate envelope.
	maxMessageSize = 4096

	// Outbound buffer per client.
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client represents one WebSocket connection and its player identity.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID string
}

// Hub maintains the set of active clients and bridges them to the lobby.
type Hub struct {
	lobby   *service.Lobby
	mu      sync.Mutex
	clients map[string]*Client
}

// NewHub creates a hub serving the given lobby.
func NewHub(lobby *service.Lobby) *Hub {
	return &Hub{
		lobby:   lobby,
		clients: make(map[string]*Client),
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and starts the
// client pumps. The connection gets a fresh player ID; a player record is
// created only when the client sends join_game.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		playerID: uuid.NewString(),
	}

	h.mu.Lock()
	h.clients[client.playerID] = client
	h.mu.Unlock()

	log.Printf("Connection %s opened (total clients: %d)", client.playerID, h.ClientCount())

	go client.writePump()
	go client.readPump()
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// deliver marshals and queues directed envelopes for their recipients.
// Envelopes for connections that are already gone are dropped silently;
// sends never block.
func (h *Hub) deliver(outs []service.Directed) {
	for _, out := range outs {
		data, err := json.Marshal(out.Message)
		if err != nil {
			log.Printf("Failed to marshal outbound message: %v", err)
			continue
		}

		// The send channel is closed under the same mutex in drop, so a
		// queued envelope can never hit a closed channel.
		h.mu.Lock()
		client, ok := h.clients[out.To]
		if !ok {
			h.mu.Unlock()
			continue
		}
		select {
		case client.send <- data:
			h.mu.Unlock()
		default:
			h.mu.Unlock()
			// Client cannot keep up; drop the connection.
			log.Printf("Connection %s send buffer full, dropping", out.To)
			go client.conn.Close()
		}
	}
}

// drop removes a client from the hub and runs the lobby teardown exactly
// once per connection.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.playerID]
	if !ok || current != client {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.playerID)
	close(client.send)
	h.mu.Unlock()
	log.Printf("Connection %s closed (remaining clients: %d)", client.playerID, h.ClientCount())

	h.deliver(h.lobby.Disconnect(client.playerID))
}

// readPump pumps messages from the WebSocket connection into the lobby.
// Processing is strictly sequential per connection: each inbound message is
// dispatched to completion before the next is read.
func (c *Client) readPump() {
	defer func() {
		c.hub.drop(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on %s: %v", c.playerID, err)
			}
			break
		}

		c.hub.deliver(c.hub.lobby.Dispatch(c.playerID, data))
	}
}

// writePump pumps queued messages to the WebSocket connection and keeps it
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
