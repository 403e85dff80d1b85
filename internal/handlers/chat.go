package handlers

import (
	"net/http"

	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/gin-gonic/gin"
)

// ChatHandler is the handler for stateless recipe assistant requests.
type ChatHandler struct {
	Service *service.ChatService
}

// NewChatHandler is the constructor function for initializing a new ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{Service: chatService}
}

type chatRequest struct {
	UserQuery           string             `json:"userQuery"`
	ConversationHistory []service.ChatTurn `json:"conversationHistory"`
}

// Chat answers one user query given the client-held history.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reply, err := h.Service.Reply(c.Request.Context(), req.UserQuery, req.ConversationHistory)
	if err != nil {
		respondError(c, err, "failed to get chat response")
		return
	}
	c.JSON(http.StatusOK, gin.H{"botResponse": reply})
}
