package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/middleware"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket message types for the chat protocol.
const (
	MsgTypeChatMessage  = "chat_message"  // User asks the assistant something
	MsgTypeChatResponse = "chat_response" // Assistant reply
	MsgTypeReset        = "reset"         // Forget the conversation so far
	MsgTypeResetDone    = "reset_done"    // Conversation forgotten
	MsgTypeError        = "error"         // Error message
	MsgTypeConnected    = "connected"     // Connection confirmed
)

// MaxHistoryMessages bounds the conversation kept per session. Older
// messages are dropped first.
const MaxHistoryMessages = 40

// chatTimeout bounds one assistant turn, including its tool rounds.
const chatTimeout = 60 * time.Second

// WSMessage is the envelope for all messages sent over the chat WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ChatMessagePayload is sent by the client with a question.
type ChatMessagePayload struct {
	Message string `json:"message"`
}

// ChatResponsePayload is sent by the server with the assistant's answer.
type ChatResponsePayload struct {
	Message string `json:"message"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// ChatHandler manages WebSocket chat sessions.
type ChatHandler struct {
	Hub       *Hub
	JwtSecret string
	Chat      *service.ChatService
}

// NewChatHandler returns a new ChatHandler.
func NewChatHandler(hub *Hub, jwtSecret string, chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		Hub:       hub,
		JwtSecret: jwtSecret,
		Chat:      chatService,
	}
}

// upgrader is configured for chat WebSocket upgrades.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		switch origin {
		case "",
			"https://calsnap.app",
			"https://www.calsnap.app":
			return true
		}
		// Allow localhost for development
		if strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost" {
			return true
		}
		return false
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleChatSession upgrades an HTTP request to a WebSocket chat session.
// Authentication is done via a "token" query parameter because WebSocket
// connections cannot easily use Authorization headers.
func (ch *ChatHandler) HandleChatSession(c *gin.Context) {
	log := logger.FromContext(c)

	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}

	userID, err := middleware.ParseIdentityToken(ch.JwtSecret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	client := &Client{
		Hub:       ch.Hub,
		Send:      make(chan []byte, 256),
		SessionID: uuid.NewString(),
		UserID:    userID,
	}

	// The slot is reserved before the upgrade so concurrent dials from one
	// user cannot all pass the limit.
	if !ch.Hub.TryRegister(client) {
		log.Warn("chat session limit reached", zap.String("user_id", userID))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many open chat sessions"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ch.Hub.release(client)
		log.Error("websocket upgrade failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}
	ch.Hub.attach(client, conn)

	client.Send <- envelope(MsgTypeConnected, ConnectedPayload{
		SessionID: client.SessionID,
		UserID:    userID,
	})

	log.Info("chat session started",
		zap.String("session_id", client.SessionID),
		zap.String("user_id", userID),
	)

	go client.WritePump()
	go client.ReadPump(ch.handleMessage)
}

// handleMessage parses an incoming WebSocket message and routes it.
func (ch *ChatHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		ch.sendError(client, "invalid message format")
		return
	}

	logger.Get().Debug("received ws message",
		zap.String("type", msg.Type),
		zap.String("session_id", client.SessionID),
	)

	switch msg.Type {
	case MsgTypeChatMessage:
		ch.handleChatMessage(client, msg.Payload)

	case MsgTypeReset:
		client.History = nil
		client.Send <- envelope(MsgTypeResetDone, nil)

	default:
		ch.sendError(client, "unknown message type: "+msg.Type)
	}
}

// handleChatMessage answers one question and records the exchange in the
// session history.
func (ch *ChatHandler) handleChatMessage(client *Client, payload json.RawMessage) {
	log := logger.Get()

	var chatMsg ChatMessagePayload
	if err := json.Unmarshal(payload, &chatMsg); err != nil {
		ch.sendError(client, "invalid chat message payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()

	reply, err := ch.Chat.Respond(ctx, client.History, chatMsg.Message)
	if err != nil {
		var ve service.ValidationError
		if errors.As(err, &ve) {
			ch.sendError(client, ve.Error())
			return
		}
		log.Error("failed to get chat reply",
			zap.String("session_id", client.SessionID),
			zap.String("user_id", client.UserID),
			zap.Error(err),
		)
		ch.sendError(client, "failed to get chat response")
		return
	}

	client.History = append(client.History,
		ai.Message{Role: ai.RoleUser, Content: strings.TrimSpace(chatMsg.Message)},
		ai.Message{Role: ai.RoleAssistant, Content: reply},
	)
	if over := len(client.History) - MaxHistoryMessages; over > 0 {
		client.History = append([]ai.Message(nil), client.History[over:]...)
	}

	client.Send <- envelope(MsgTypeChatResponse, ChatResponsePayload{Message: reply})
}

// sendError sends an error message to a single client.
func (ch *ChatHandler) sendError(client *Client, message string) {
	client.Send <- envelope(MsgTypeError, ErrorPayload{Message: message})
}

func envelope(msgType string, payload interface{}) []byte {
	msg := WSMessage{Type: msgType}
	if payload != nil {
		msg.Payload, _ = json.Marshal(payload)
	}
	data, _ := json.Marshal(msg)
	return data
}
