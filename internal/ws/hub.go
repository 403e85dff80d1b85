package ws

import (
	"sync"
	"time"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192

	// MaxSessionsPerUser caps concurrent chat sessions for one user.
	MaxSessionsPerUser = 3
)

// Client represents a single WebSocket connection. Each connection is its own
// chat session and owns its conversation history.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
	UserID    string

	// History is only touched from the connection's read goroutine.
	History []ai.Message
}

// Hub tracks the active chat sessions. Sessions are added with TryRegister
// and removed through Unregister.
type Hub struct {
	Sessions   map[string]*Client // sessionID -> client
	Unregister chan *Client
	stop       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Sessions:   make(map[string]*Client),
		Unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

// TryRegister adds client unless its user already holds MaxSessionsPerUser
// sessions. The count and the insert happen under one lock.
func (h *Hub) TryRegister(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, c := range h.Sessions {
		if c.UserID == client.UserID {
			n++
		}
	}
	if n >= MaxSessionsPerUser {
		return false
	}
	h.Sessions[client.SessionID] = client

	logger.Get().Info("chat session registered",
		zap.String("session_id", client.SessionID),
		zap.String("user_id", client.UserID),
	)
	return true
}

// release drops a reserved session whose connection never came up.
func (h *Hub) release(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.Sessions[client.SessionID]; ok && existing == client {
		delete(h.Sessions, client.SessionID)
	}
}

// attach sets the connection of a reserved session.
func (h *Hub) attach(client *Client, conn *websocket.Conn) {
	h.mu.Lock()
	client.Conn = conn
	h.mu.Unlock()
}

// Run handles unregister events until Stop is called. It should be launched
// as a goroutine.
func (h *Hub) Run() {
	log := logger.Get()

	for {
		select {
		case client := <-h.Unregister:
			h.mu.Lock()
			if existing, ok := h.Sessions[client.SessionID]; ok && existing == client {
				delete(h.Sessions, client.SessionID)
				close(client.Send)
			}
			h.mu.Unlock()

			log.Info("chat session closed",
				zap.String("session_id", client.SessionID),
				zap.String("user_id", client.UserID),
			)

		case <-h.stop:
			// Closing the connections ends each ReadPump, which then skips
			// unregistering because the hub is stopped.
			h.mu.Lock()
			for id, client := range h.Sessions {
				if client.Conn != nil {
					client.Conn.Close()
				}
				delete(h.Sessions, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every session connection. Run returns afterwards.
func (h *Hub) Stop() {
	close(h.stop)
}

// UserSessions returns how many sessions userID currently holds.
func (h *Hub) UserSessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.Sessions {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

// Count returns the number of active sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Sessions)
}

// ReadPump reads messages from the WebSocket connection. It is intended to be
// run in a per-client goroutine. The provided handler is called for each
// incoming message.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.stop:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("session_id", c.SessionID),
					zap.String("user_id", c.UserID),
					zap.Error(err),
				)
			}
			break
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It is intended to
// be run in a per-client goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
