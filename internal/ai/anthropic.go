package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Midoriya12/calsnap/internal/config"
	"github.com/Midoriya12/calsnap/internal/logger"
	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
	"github.com/Midoriya12/calsnap/internal/util"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// AnthropicProvider implements MealAnalyzer and ChatProvider using Claude.
type AnthropicProvider struct {
	client  anthropic.Client
	model   anthropic.Model
	prompts *config.Prompts
}

// NewAnthropicProvider creates a new AnthropicProvider with the given API key
// and prompt configuration. Extra request options are passed to the client.
func NewAnthropicProvider(apiKey string, prompts *config.Prompts, opts ...option.RequestOption) *AnthropicProvider {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &AnthropicProvider{
		client:  client,
		model:   anthropic.Model("claude-sonnet-4-5"),
		prompts: prompts,
	}
}

// forcedTool builds a tool the model is forced to call so its answer arrives
// as structured input.
func forcedTool(name, description string, properties map[string]interface{}, required []string) (anthropic.ToolUnionParam, anthropic.ToolChoiceUnionParam) {
	tool := anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        name,
			Description: anthropic.String(description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		},
	}
	choice := anthropic.ToolChoiceUnionParam{
		OfTool: &anthropic.ToolChoiceToolParam{
			Name: name,
		},
	}
	return tool, choice
}

// searchRecipesTool is the recipe search tool offered during chat.
func searchRecipesTool() anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        search.ToolName,
			Description: anthropic.String(search.ToolDescription),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: searchTermSchema(),
				Required:   []string{"searchTerm"},
			},
		},
	}
}

// messagesToAnthropicParams converts our Message slice into Claude message params.
func messagesToAnthropicParams(msgs []Message) []anthropic.MessageParam {
	var params []anthropic.MessageParam
	for _, m := range msgs {
		switch m.Role {
		case RoleUser:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return params
}

// imageBlock wraps a decoded photo as a base64 image content block.
func imageBlock(img Image) anthropic.ContentBlockParamUnion {
	return anthropic.NewImageBlockBase64(img.MediaType, base64.StdEncoding.EncodeToString(img.Data))
}

// createMessageWithRetry wraps the Claude API call with exponential backoff.
func (p *AnthropicProvider) createMessageWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	const maxRetries = 5
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		resp, err := p.client.Messages.New(ctx, params)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		shouldRetry, waitTime := classifyAnthropicError(err)
		if !shouldRetry {
			return nil, fmt.Errorf("claude API error: %w", err)
		}

		logger.Get().Warn("claude API error, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
		)

		backoff := waitTime * time.Duration(i+1)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("claude API: exhausted %d retries: %w", maxRetries, lastErr)
}

// classifyAnthropicError determines whether to retry and the base wait duration.
func classifyAnthropicError(err error) (shouldRetry bool, waitTime time.Duration) {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return true, 2 * time.Second
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return true, 2 * time.Second
		default:
			return false, 0
		}
	}
	return false, 0
}

// decodeToolUse parses the input of the named tool_use block into v.
func decodeToolUse(msg *anthropic.Message, name string, v interface{}) error {
	for _, block := range msg.Content {
		if block.Type == "tool_use" && block.Name == name {
			raw, err := json.Marshal(block.Input)
			if err != nil {
				return fmt.Errorf("failed to marshal tool input: %w", err)
			}
			if err := json.Unmarshal(raw, v); err != nil {
				return fmt.Errorf("failed to parse %s tool input: %w", name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("no %s tool_use block found in Claude response", name)
}

// extractTextContent returns the concatenated text blocks from a Claude response.
func extractTextContent(msg *anthropic.Message) string {
	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(text.String())
}

func (p *AnthropicProvider) renderPair(pair config.PromptPair, toolName string) (string, string, error) {
	data := map[string]interface{}{"ToolName": toolName}
	sys, err := config.RenderPrompt(pair.System, data)
	if err != nil {
		return "", "", fmt.Errorf("render system prompt: %w", err)
	}
	user, err := config.RenderPrompt(pair.User, data)
	if err != nil {
		return "", "", fmt.Errorf("render user prompt: %w", err)
	}
	return sys, user, nil
}

// --- MealAnalyzer implementation ---

// AnalyzeMeal estimates dish, calories, ingredients and a recipe idea from a
// meal photo.
func (p *AnthropicProvider) AnalyzeMeal(ctx context.Context, img Image) (*models.MealEstimation, error) {
	sysPrompt, userPrompt, err := p.renderPair(p.prompts.Meal.Analyze, mealEstimateToolName)
	if err != nil {
		return nil, err
	}

	tool, choice := forcedTool(mealEstimateToolName,
		"Record the estimated dish, calories, ingredients and recipe idea for the meal photo.",
		mealEstimateSchema(),
		[]string{"dishName", "estimatedCalories", "ingredients", "recipeIdea"})

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: sysPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(imageBlock(img), anthropic.NewTextBlock(userPrompt)),
		},
		Tools:      []anthropic.ToolUnionParam{tool},
		ToolChoice: choice,
	}

	resp, err := p.createMessageWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var tr mealEstimateToolResult
	if err := decodeToolUse(resp, mealEstimateToolName, &tr); err != nil {
		return nil, err
	}
	if tr.EstimatedCalories < 0 {
		tr.EstimatedCalories = 0
	}

	return &models.MealEstimation{
		DishName:          tr.DishName,
		EstimatedCalories: tr.EstimatedCalories,
		Ingredients:       tr.Ingredients,
		RecipeIdea:        tr.RecipeIdea,
	}, nil
}

// DetectIngredients lists the ingredients visible in a meal photo.
func (p *AnthropicProvider) DetectIngredients(ctx context.Context, img Image) ([]string, error) {
	sysPrompt, userPrompt, err := p.renderPair(p.prompts.Meal.DetectIngredients, ingredientsToolName)
	if err != nil {
		return nil, err
	}

	tool, choice := forcedTool(ingredientsToolName,
		"Record the ingredients detected in the meal photo.",
		ingredientsSchema(),
		[]string{"ingredients"})

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: sysPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(imageBlock(img), anthropic.NewTextBlock(userPrompt)),
		},
		Tools:      []anthropic.ToolUnionParam{tool},
		ToolChoice: choice,
	}

	resp, err := p.createMessageWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var tr ingredientsToolResult
	if err := decodeToolUse(resp, ingredientsToolName, &tr); err != nil {
		return nil, err
	}
	if tr.Ingredients == nil {
		tr.Ingredients = []string{}
	}
	return tr.Ingredients, nil
}

// --- ChatProvider implementation ---

// Chat answers one user turn, running the recipe search tool whenever Claude
// requests it.
func (p *AnthropicProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	sysPrompt, err := config.RenderPrompt(p.prompts.Chat.Recipe.System, map[string]interface{}{
		"ToolName": search.ToolName,
	})
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}

	msgs := messagesToAnthropicParams(req.History)
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Query)))

	var text string
	for round := 0; round <= MaxToolRounds; round++ {
		params := anthropic.MessageNewParams{
			Model:     p.model,
			MaxTokens: 1024,
			System: []anthropic.TextBlockParam{
				{Text: sysPrompt},
			},
			Messages: msgs,
			Tools:    []anthropic.ToolUnionParam{searchRecipesTool()},
		}

		resp, err := p.createMessageWithRetry(ctx, params)
		if err != nil {
			return "", err
		}

		text = extractTextContent(resp)
		if resp.StopReason != anthropic.StopReasonToolUse {
			return text, nil
		}
		if round == MaxToolRounds {
			break
		}

		results := p.runSearchTools(ctx, resp, req.Searcher)
		if len(results) == 0 {
			return text, nil
		}
		msgs = append(msgs, resp.ToParam(), anthropic.NewUserMessage(results...))
	}

	logger.Get().Warn("chat exceeded tool rounds", zap.Int("max_rounds", MaxToolRounds))
	return text, nil
}

// runSearchTools executes every tool_use block of resp and returns the
// matching tool_result blocks.
func (p *AnthropicProvider) runSearchTools(ctx context.Context, resp *anthropic.Message, searcher RecipeSearcher) []anthropic.ContentBlockParamUnion {
	var results []anthropic.ContentBlockParamUnion
	for _, block := range resp.Content {
		if block.Type != "tool_use" {
			continue
		}
		if block.Name != search.ToolName || searcher == nil {
			results = append(results, anthropic.NewToolResultBlock(block.ID, "unknown tool: "+block.Name, true))
			continue
		}

		var in searchToolInput
		raw, _ := json.Marshal(block.Input)
		if err := json.Unmarshal(raw, &in); err != nil {
			results = append(results, anthropic.NewToolResultBlock(block.ID, "invalid tool input: "+err.Error(), true))
			continue
		}

		content, err := util.SerializeToJSONString(searcher.Search(ctx, in.SearchTerm))
		if err != nil {
			results = append(results, anthropic.NewToolResultBlock(block.ID, "failed to encode tool output", true))
			continue
		}
		results = append(results, anthropic.NewToolResultBlock(block.ID, content, false))
	}
	return results
}
