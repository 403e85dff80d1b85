package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Midoriya12/calsnap/internal/ai"
)

// FallbackReply is sent when the model produces no answer.
const FallbackReply = "I'm sorry, I couldn't process that request. Could you try asking in a different way?"

// Chat roles as the client sends them.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatPart is one text fragment of a turn.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatTurn is one prior message in the conversation.
type ChatTurn struct {
	Role  string     `json:"role"`
	Parts []ChatPart `json:"parts"`
}

// ChatService is the business logic layer for the recipe assistant.
type ChatService struct {
	Provider ai.ChatProvider
	Searcher ai.RecipeSearcher
}

// NewChatService is the constructor function for initializing a new ChatService
func NewChatService(provider ai.ChatProvider, searcher ai.RecipeSearcher) *ChatService {
	return &ChatService{Provider: provider, Searcher: searcher}
}

// ConvertHistory maps client turns, oldest first, onto provider messages.
// Turns without text are skipped.
func ConvertHistory(turns []ChatTurn) ([]ai.Message, error) {
	msgs := make([]ai.Message, 0, len(turns))
	for i, turn := range turns {
		var role string
		switch turn.Role {
		case ChatRoleUser:
			role = ai.RoleUser
		case ChatRoleModel:
			role = ai.RoleAssistant
		default:
			return nil, validationErrorf("conversationHistory[%d]: role must be %q or %q", i, ChatRoleUser, ChatRoleModel)
		}

		var sb strings.Builder
		for _, p := range turn.Parts {
			sb.WriteString(p.Text)
		}
		if strings.TrimSpace(sb.String()) == "" {
			continue
		}
		msgs = append(msgs, ai.Message{Role: role, Content: sb.String()})
	}
	return msgs, nil
}

// Reply answers a query given the client-held history.
func (s *ChatService) Reply(ctx context.Context, query string, history []ChatTurn) (string, error) {
	msgs, err := ConvertHistory(history)
	if err != nil {
		return "", err
	}
	return s.Respond(ctx, msgs, query)
}

// Respond answers a query given provider-ready history. An empty model reply
// becomes FallbackReply.
func (s *ChatService) Respond(ctx context.Context, history []ai.Message, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", validationErrorf("userQuery is required")
	}

	reply, err := s.Provider.Chat(ctx, ai.ChatRequest{
		History:  history,
		Query:    query,
		Searcher: s.Searcher,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat reply: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackReply, nil
	}
	return reply, nil
}
