package ai

import (
	"context"

	"github.com/Midoriya12/calsnap/internal/models"
	"github.com/Midoriya12/calsnap/internal/search"
)

// MaxToolRounds bounds how many times a chat turn may call back into the
// recipe search tool before the provider gives up on a final answer.
const MaxToolRounds = 5

// MealAnalyzer handles meal photo tasks (Claude vision).
type MealAnalyzer interface {
	AnalyzeMeal(ctx context.Context, img Image) (*models.MealEstimation, error)
	DetectIngredients(ctx context.Context, img Image) ([]string, error)
}

// ChatProvider answers recipe questions, calling back into the recipe search
// tool when the model asks for it. An empty reply is returned as "".
type ChatProvider interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// RecipeSearcher runs the recipe search tool on behalf of the model.
type RecipeSearcher interface {
	Search(ctx context.Context, term string) search.Result
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatRequest is one assistant turn.
type ChatRequest struct {
	History  []Message // oldest first
	Query    string
	Searcher RecipeSearcher
}
