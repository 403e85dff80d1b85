package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Midoriya12/calsnap/internal/ai"
	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/Midoriya12/calsnap/internal/testutil"
	"github.com/gin-gonic/gin"
)

func newChatRouter(provider *testutil.MockChatProvider) *gin.Engine {
	handler := NewChatHandler(service.NewChatService(provider, nil))
	r := gin.New()
	r.POST("/chat", handler.Chat)
	return r
}

func TestChat_Handler(t *testing.T) {
	provider := &testutil.MockChatProvider{
		ChatFunc: func(ctx context.Context, req ai.ChatRequest) (string, error) {
			return "Carbonara has about 650 calories.", nil
		},
	}
	r := newChatRouter(provider)

	w := doJSON(r, "POST", "/chat", `{"userQuery": "calories in carbonara?", "conversationHistory": [{"role": "user", "parts": [{"text": "hi"}]}, {"role": "model", "parts": [{"text": "hello"}]}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["botResponse"]; got != "Carbonara has about 650 calories." {
		t.Errorf("botResponse = %v", got)
	}
	if n := len(provider.LastRequest().History); n != 2 {
		t.Errorf("history length = %d, want 2", n)
	}
}

func TestChat_EmptyReplyFallback(t *testing.T) {
	provider := &testutil.MockChatProvider{
		ChatFunc: func(ctx context.Context, req ai.ChatRequest) (string, error) { return "", nil },
	}

	w := doJSON(newChatRouter(provider), "POST", "/chat", `{"userQuery": "hello"}`)
	if got := decodeBody(t, w)["botResponse"]; got != service.FallbackReply {
		t.Errorf("botResponse = %v, want fallback", got)
	}
}

func TestChat_Errors(t *testing.T) {
	provider := &testutil.MockChatProvider{
		ChatFunc: func(ctx context.Context, req ai.ChatRequest) (string, error) {
			return "", errors.New("upstream")
		},
	}
	r := newChatRouter(provider)

	if w := doJSON(r, "POST", "/chat", `{"userQuery": ""}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty query status = %d, want 400", w.Code)
	}
	if w := doJSON(r, "POST", "/chat", `{"userQuery": "hi"}`); w.Code != http.StatusInternalServerError {
		t.Errorf("provider error status = %d, want 500", w.Code)
	}
}
