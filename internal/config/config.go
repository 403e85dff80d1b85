package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/caarlos0/env/v11"
)

// Recipe source backends.
const (
	RecipeSourceDatabase = "database"
	RecipeSourceRemote   = "remote"
	RecipeSourceMealDB   = "mealdb"
	RecipeSourceS3       = "s3"
)

// Chat providers.
const (
	ChatProviderAnthropic = "anthropic"
	ChatProviderOpenAI    = "openai"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	DatabaseUrl        string        `env:"DATABASE_URL"`
	IdentityJWTSecret  string        `env:"IDENTITY_JWT_SECRET"`
	AnthropicAPIKey    string        `env:"ANTHROPIC_API_KEY"`
	ChatProvider       string        `env:"CHAT_PROVIDER" envDefault:"anthropic"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY" optional:"true"`
	RecipeSource       string        `env:"RECIPE_SOURCE" envDefault:"database"`
	RecipeSourceURL    string        `env:"RECIPE_SOURCE_URL" optional:"true"`
	MealDBBaseURL      string        `env:"MEALDB_BASE_URL" envDefault:"https://www.themealdb.com/api/json/v1/1" optional:"true"`
	RedisURL           string        `env:"REDIS_URL" optional:"true"`
	CatalogCacheTTL    time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m" optional:"true"`
	AWSRegion          string        `env:"AWS_REGION" optional:"true"`
	AWSAccessKeyID     string        `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket           string        `env:"S3_BUCKET" optional:"true"`
	CatalogS3Key       string        `env:"CATALOG_S3_KEY" envDefault:"catalog/recipes.json" optional:"true"`
	EdamamAppID        string        `env:"EDAMAM_APP_ID" optional:"true"`
	EdamamAppKey       string        `env:"EDAMAM_APP_KEY" optional:"true"`
	PromptsPath        string        `env:"PROMPTS_PATH" envDefault:"configs/prompts.yaml"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

// Validate checks the rules that span more than one variable.
func (c *Config) Validate() error {
	if err := c.ValidateRecipeSource(); err != nil {
		return err
	}

	switch c.EnvVars.ChatProvider {
	case ChatProviderAnthropic:
	case ChatProviderOpenAI:
		if c.EnvVars.OpenAIAPIKey == "" {
			return errors.New("$OPENAI_API_KEY must be set when $CHAT_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("unknown $CHAT_PROVIDER %q", c.EnvVars.ChatProvider)
	}

	if (c.EnvVars.EdamamAppID == "") != (c.EnvVars.EdamamAppKey == "") {
		return errors.New("$EDAMAM_APP_ID and $EDAMAM_APP_KEY must be set together")
	}
	return nil
}

// ValidateRecipeSource checks the settings needed by the configured recipe
// source backend.
func (c *Config) ValidateRecipeSource() error {
	e := c.EnvVars
	switch e.RecipeSource {
	case RecipeSourceDatabase:
		if e.DatabaseUrl == "" {
			return errors.New("$DATABASE_URL must be set when $RECIPE_SOURCE is database")
		}
	case RecipeSourceRemote:
		if !govalidator.IsURL(e.RecipeSourceURL) {
			return fmt.Errorf("$RECIPE_SOURCE_URL must be a valid URL when $RECIPE_SOURCE is remote, got %q", e.RecipeSourceURL)
		}
	case RecipeSourceMealDB:
		if !govalidator.IsURL(e.MealDBBaseURL) {
			return fmt.Errorf("$MEALDB_BASE_URL must be a valid URL, got %q", e.MealDBBaseURL)
		}
	case RecipeSourceS3:
		if e.S3Bucket == "" || e.AWSRegion == "" {
			return errors.New("$S3_BUCKET and $AWS_REGION must be set when $RECIPE_SOURCE is s3")
		}
	default:
		return fmt.Errorf("unknown $RECIPE_SOURCE %q", e.RecipeSource)
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
