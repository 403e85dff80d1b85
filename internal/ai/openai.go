package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/util"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIChatProvider implements ChatProvider using OpenAI function calling.
type OpenAIChatProvider struct {
	client  *openai.Client
	model   string
	prompts *config.Prompts
}

// NewOpenAIChatProvider creates a chat provider from an OpenAI client config,
// usually openai.DefaultConfig(apiKey).
func NewOpenAIChatProvider(clientCfg openai.ClientConfig, prompts *config.Prompts) *OpenAIChatProvider {
	return &OpenAIChatProvider{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   openai.GPT4oMini,
		prompts: prompts,
	}
}

func openAISearchTool() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        search.ToolName,
			Description: search.ToolDescription,
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": searchTermSchema(),
				"required":   []string{"searchTerm"},
			},
		},
	}
}

// Chat answers one user turn, running the recipe search tool whenever the
// model calls it.
func (p *OpenAIChatProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	sysPrompt, err := config.RenderPrompt(p.prompts.Chat.Recipe.System, map[string]interface{}{
		"ToolName": search.ToolName,
	})
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}

	msgs := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: sysPrompt}}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Query})

	var text string
	for round := 0; round <= MaxToolRounds; round++ {
		resp, err := p.createChatCompletionWithRetry(ctx, openai.ChatCompletionRequest{
			Model:    p.model,
			Messages: msgs,
			Tools:    []openai.Tool{openAISearchTool()},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("OpenAI API returned no choices")
		}

		msg := resp.Choices[0].Message
		text = strings.TrimSpace(msg.Content)
		if len(msg.ToolCalls) == 0 {
			return text, nil
		}
		if round == MaxToolRounds {
			break
		}

		msgs = append(msgs, msg)
		for _, call := range msg.ToolCalls {
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    p.runSearchTool(ctx, call, req.Searcher),
			})
		}
	}

	logger.Get().Warn("chat exceeded tool rounds", zap.Int("max_rounds", MaxToolRounds))
	return text, nil
}

func (p *OpenAIChatProvider) runSearchTool(ctx context.Context, call openai.ToolCall, searcher RecipeSearcher) string {
	if call.Function.Name != search.ToolName || searcher == nil {
		return `{"error":"unknown tool"}`
	}
	var in searchToolInput
	if err := util.DeserializeFromJSONString(call.Function.Arguments, &in); err != nil {
		return `{"error":"invalid tool arguments"}`
	}
	content, err := util.SerializeToJSONString(searcher.Search(ctx, in.SearchTerm))
	if err != nil {
		return `{"error":"failed to encode tool output"}`
	}
	return content
}

func (p *OpenAIChatProvider) createChatCompletionWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	const maxRetries = 3
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		shouldRetry, waitTime := classifyOpenAIError(err)
		if !shouldRetry {
			return openai.ChatCompletionResponse{}, fmt.Errorf("OpenAI API error: %w", err)
		}

		logger.Get().Warn("OpenAI API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
		)

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return openai.ChatCompletionResponse{}, ctx.Err()
			case <-time.After(waitTime * time.Duration(i+1)):
			}
		}
	}

	return openai.ChatCompletionResponse{}, fmt.Errorf("OpenAI API: exhausted %d retries: %w", maxRetries, lastErr)
}

// classifyOpenAIError determines whether to retry and the base wait duration.
func classifyOpenAIError(err error) (shouldRetry bool, waitTime time.Duration) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return true, 2 * time.Second
		case 500, 502, 503:
			return true, 2 * time.Second
		default:
			return false, 0
		}
	}
	return false, 0
}
