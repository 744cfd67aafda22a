package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server recognizes.
// A missing API key leaves the corresponding field empty; the caller is
// expected to disable that integration rather than fail startup.
type Config struct {
	Port int

	// Anthropic
	AnthropicAPIKey string
	AnthropicModel  string

	// Weaviate vector index
	WeaviateHost   string
	WeaviateScheme string
	WeaviateAPIKey string
	WeaviateClass  string

	// USDA FoodData Central
	USDAAPIKey string
}

// Load reads configuration from the environment, loading a .env file
// first if one exists.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port: getEnvInt("PORT", 8000),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		WeaviateHost:   getEnv("WEAVIATE_HOST", ""),
		WeaviateScheme: getEnv("WEAVIATE_SCHEME", "https"),
		WeaviateAPIKey: getEnv("WEAVIATE_API_KEY", ""),
		WeaviateClass:  getEnv("WEAVIATE_CLASS", "NutritionChunk"),

		USDAAPIKey: getEnv("USDA_API_KEY", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
