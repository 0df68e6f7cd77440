package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	// Backend is "gemini" (API key) or "vertex" (project + location).
	Backend  string
	Project  string
	Location string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
			Backend:        getEnv("GEMINI_BACKEND", "gemini"),
			Project:        os.Getenv("GOOGLE_CLOUD_PROJECT"),
			Location:       getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		}
	})
	return geminiConfig
}
