package search

import (
	"context"
	"fmt"

	"github.com/Midoriya12/calsnap/internal/logger"
	"go.uber.org/zap"
)

// ToolName is the name the search tool is registered under with LLM
// tool-calling runtimes.
const ToolName = "searchRecipesTool"

// ToolDescription tells the model when to call the tool.
const ToolDescription = "Searches the recipe collection by name, cuisine, ingredient or dietary restriction " +
	"(e.g. 'vegan', 'Italian', 'chicken'). Returns up to 5 matching recipes and a summary of the search."

// DefaultLimit is the maximum number of recipes the tool returns.
const DefaultLimit = 5

// Input is the tool-calling argument shape.
type Input struct {
	SearchTerm string `json:"searchTerm" jsonschema:"keyword to look for in recipe names, cuisines, ingredients and dietary restrictions"`
}

// Result is the tool output handed back to the caller.
type Result struct {
	FoundRecipes  []RecipeShort `json:"foundRecipes"`
	SearchSummary string        `json:"searchSummary"`
}

// Tool is the recipe search tool used by the assistant.
type Tool struct {
	Source  RecipeSource
	Matcher Matcher
	Limit   int
}

// NewTool returns a Tool over source using the assistant field selection and
// the default limit.
func NewTool(source RecipeSource) *Tool {
	return &Tool{Source: source, Matcher: ToolMatcher, Limit: DefaultLimit}
}

// Search runs the query. It never fails: data-source errors, including
// panics, are logged and reported in the summary with no recipes.
func (t *Tool) Search(ctx context.Context, term string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("recipe search panicked",
				zap.String("search_term", term),
				zap.String("panic", fmt.Sprint(r)))
			result = Result{FoundRecipes: []RecipeShort{}, SearchSummary: SummarizeFailure(term)}
		}
	}()

	records, err := t.Source.ListRecipes(ctx)
	if err != nil {
		logger.Get().Error("failed to load recipes for search",
			zap.String("search_term", term),
			zap.String("source", fmt.Sprintf("%T", t.Source)),
			zap.Error(err))
		return Result{FoundRecipes: []RecipeShort{}, SearchSummary: SummarizeFailure(term)}
	}

	limit := t.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	matches := t.Matcher.Filter(records, term, limit)
	found := make([]RecipeShort, 0, len(matches))
	for _, r := range matches {
		found = append(found, Project(r))
	}

	return Result{FoundRecipes: found, SearchSummary: Summarize(term, len(found))}
}
