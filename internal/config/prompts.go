package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// PromptPair holds a system and user prompt template.
type PromptPair struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// MealPrompts holds the meal photo prompt templates.
type MealPrompts struct {
	Analyze           PromptPair `yaml:"analyze"`
	DetectIngredients PromptPair `yaml:"detect_ingredients"`
}

// ChatPrompts holds the recipe assistant prompt templates.
type ChatPrompts struct {
	Recipe PromptPair `yaml:"recipe"`
}

// Prompts is the top-level prompt configuration loaded from YAML.
type Prompts struct {
	Meal MealPrompts `yaml:"meal"`
	Chat ChatPrompts `yaml:"chat"`
}

// Check reports the first prompt that is missing from the file.
func (p *Prompts) Check() error {
	required := map[string]string{
		"meal.analyze.system":            p.Meal.Analyze.System,
		"meal.detect_ingredients.system": p.Meal.DetectIngredients.System,
		"chat.recipe.system":             p.Chat.Recipe.System,
	}
	for _, name := range []string{"meal.analyze.system", "meal.detect_ingredients.system", "chat.recipe.system"} {
		if strings.TrimSpace(required[name]) == "" {
			return fmt.Errorf("prompt %s must be set", name)
		}
	}
	return nil
}

// LoadPrompts reads and parses a YAML prompt configuration file.
func LoadPrompts(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var prompts Prompts
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts YAML: %w", err)
	}
	if err := prompts.Check(); err != nil {
		return nil, err
	}

	return &prompts, nil
}

// RenderPrompt executes Go template interpolation on a prompt string.
// The data map provides values for template placeholders like {{.ToolName}}
// and {{.Today}}.
func RenderPrompt(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
