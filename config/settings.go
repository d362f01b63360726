package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Settings is everything the server reads from the environment.
type Settings struct {
	Port     string
	LogLevel string

	// Local mode
	StorePath string
	JWTSecret string
	TokenTTL  time.Duration

	// Remote mode, selected when URL and key are both set
	SupabaseURL       string
	SupabaseKey       string
	SupabaseJWTSecret string

	SeedGoals bool

	LLMProvider  string
	OpenAIKey    string
	OpenAIModel  string
	OpenAIURL    string
	GeminiKey    string
	GeminiModel  string
	GeminiURL    string
	SystemPrompt string
}

// Load reads Settings from the environment, applying defaults.
func Load() (Settings, error) {
	s := Settings{
		Port:              getenv("PORT", "8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		StorePath:         getenv("STORE_PATH", "data/goals.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SupabaseURL:       strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:       os.Getenv("SUPABASE_KEY"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		LLMProvider:       strings.ToLower(getenv("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getenv("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAIURL:         getenv("OPENAI_URL", "https://api.openai.com/v1/responses"),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiURL:         getenv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		SystemPrompt:      os.Getenv("LLM_SYSTEM_PROMPT"),
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "24h"))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return Settings{}, fmt.Errorf("invalid TOKEN_TTL: must be positive")
	}
	s.TokenTTL = ttl

	seeds, err := strconv.ParseBool(getenv("SEED_GOALS", "true"))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid SEED_GOALS: %w", err)
	}
	s.SeedGoals = seeds

	if s.LLMProvider != ProviderOpenAI && s.LLMProvider != ProviderGemini {
		return Settings{}, fmt.Errorf("unsupported LLM_PROVIDER %q (supported: %s, %s)", s.LLMProvider, ProviderOpenAI, ProviderGemini)
	}

	if !s.RemoteEnabled() && s.JWTSecret == "" {
		return Settings{}, fmt.Errorf("JWT_SECRET is required when Supabase is not configured")
	}

	return s, nil
}

// RemoteEnabled reports whether goals and accounts live in Supabase.
func (s Settings) RemoteEnabled() bool {
	return s.SupabaseURL != "" && s.SupabaseKey != ""
}

// LLMKey returns the key for the configured provider.
func (s Settings) LLMKey() string {
	if s.LLMProvider == ProviderGemini {
		return s.GeminiKey
	}
	return s.OpenAIKey
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
