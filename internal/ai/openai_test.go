package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIChatProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIChatProvider(cfg, testPrompts())
}

func writeCompletion(w http.ResponseWriter, message map[string]interface{}, finish string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{{
			"index":         0,
			"message":       message,
			"finish_reason": finish,
		}},
	})
}

func TestOpenAIChat_RunsSearchTool(t *testing.T) {
	var calls int32
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req openai.ChatCompletionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		switch atomic.AddInt32(&calls, 1) {
		case 1:
			if req.Messages[0].Role != openai.ChatMessageRoleSystem {
				t.Errorf("first message role = %s, want system", req.Messages[0].Role)
			}
			if !strings.Contains(req.Messages[0].Content, "searchRecipesTool") {
				t.Errorf("system prompt should name the tool")
			}
			writeCompletion(w, map[string]interface{}{
				"role":    "assistant",
				"content": "",
				"tool_calls": []map[string]interface{}{{
					"id":   "call_1",
					"type": "function",
					"function": map[string]interface{}{
						"name":      "searchRecipesTool",
						"arguments": `{"searchTerm":"vegan"}`,
					},
				}},
			}, "tool_calls")
		default:
			last := req.Messages[len(req.Messages)-1]
			if last.Role != openai.ChatMessageRoleTool || last.ToolCallID != "call_1" {
				t.Errorf("last message = %+v, want tool result for call_1", last)
			}
			if !strings.Contains(last.Content, "Vegan Lentil Soup") {
				t.Errorf("tool result should carry the search output, got %s", last.Content)
			}
			writeCompletion(w, map[string]interface{}{
				"role":    "assistant",
				"content": "The Vegan Lentil Soup is a great pick.",
			}, "stop")
		}
	})

	searcher := &stubSearcher{result: veganResult()}
	reply, err := p.Chat(context.Background(), ChatRequest{Query: "vegan ideas?", Searcher: searcher})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if reply != "The Vegan Lentil Soup is a great pick." {
		t.Errorf("reply = %q", reply)
	}
	if len(searcher.terms) != 1 || searcher.terms[0] != "vegan" {
		t.Errorf("search terms = %v", searcher.terms)
	}
}

func TestOpenAIChat_UnknownToolReportsError(t *testing.T) {
	var calls int32
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req openai.ChatCompletionRequest
		json.Unmarshal(body, &req)

		if atomic.AddInt32(&calls, 1) == 1 {
			writeCompletion(w, map[string]interface{}{
				"role":    "assistant",
				"content": "",
				"tool_calls": []map[string]interface{}{{
					"id": "call_9", "type": "function",
					"function": map[string]interface{}{"name": "deleteEverything", "arguments": "{}"},
				}},
			}, "tool_calls")
			return
		}
		last := req.Messages[len(req.Messages)-1]
		if !strings.Contains(last.Content, "unknown tool") {
			t.Errorf("tool result = %q, want unknown tool error", last.Content)
		}
		writeCompletion(w, map[string]interface{}{"role": "assistant", "content": "Sorry."}, "stop")
	})

	searcher := &stubSearcher{}
	if _, err := p.Chat(context.Background(), ChatRequest{Query: "hi", Searcher: searcher}); err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if len(searcher.terms) != 0 {
		t.Errorf("searcher should not run for unknown tools")
	}
}

func TestOpenAIChat_APIError(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})

	if _, err := p.Chat(context.Background(), ChatRequest{Query: "hi"}); err == nil {
		t.Error("expected error")
	}
}

func TestClassifyOpenAIError(t *testing.T) {
	retry, _ := classifyOpenAIError(&openai.APIError{HTTPStatusCode: 429})
	if !retry {
		t.Error("429 should be retried")
	}
	retry, _ = classifyOpenAIError(&openai.APIError{HTTPStatusCode: 401})
	if retry {
		t.Error("401 should not be retried")
	}
}

func TestOpenAIChat_StopsAfterMaxToolRounds(t *testing.T) {
	var calls int32
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeCompletion(w, map[string]interface{}{
			"role":    "assistant",
			"content": "",
			"tool_calls": []map[string]interface{}{{
				"id": "call_loop", "type": "function",
				"function": map[string]interface{}{"name": "searchRecipesTool", "arguments": `{"searchTerm":"loop"}`},
			}},
		}, "tool_calls")
	})

	searcher := &stubSearcher{}
	if _, err := p.Chat(context.Background(), ChatRequest{Query: "loop forever", Searcher: searcher}); err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != MaxToolRounds+1 {
		t.Errorf("calls = %d, want %d", got, MaxToolRounds+1)
	}
	if len(searcher.terms) != MaxToolRounds {
		t.Errorf("searches = %d, want %d", len(searcher.terms), MaxToolRounds)
	}
}
