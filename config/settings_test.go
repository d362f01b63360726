package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "STORE_PATH", "JWT_SECRET", "TOKEN_TTL", "SEED_GOALS",
		"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_JWT_SECRET",
		"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_URL",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_URL", "LLM_SYSTEM_PROMPT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "local-secret")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "data/goals.db", s.StorePath)
	assert.Equal(t, 24*time.Hour, s.TokenTTL)
	assert.True(t, s.SeedGoals)
	assert.Equal(t, ProviderOpenAI, s.LLMProvider)
	assert.False(t, s.RemoteEnabled())
}

func TestLoadRequiresSecretInLocalMode(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRemoteMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")
	t.Setenv("SUPABASE_KEY", "anon")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("SEED_GOALS", "false")

	s, err := Load()
	require.NoError(t, err)

	assert.True(t, s.RemoteEnabled())
	assert.Equal(t, "https://project.supabase.co", s.SupabaseURL)
	assert.Equal(t, ProviderGemini, s.LLMProvider)
	assert.Equal(t, "g-key", s.LLMKey())
	assert.False(t, s.SeedGoals)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"ttl":      {"TOKEN_TTL", "soon"},
		"zero ttl": {"TOKEN_TTL", "0s"},
		"seeds":    {"SEED_GOALS", "maybe"},
		"provider": {"LLM_PROVIDER", "claude"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "local-secret")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.ErrorContains(t, err, kv[0])
		})
	}
}

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("GOAL_TRACKER_FROM_FILE=file\nGOAL_TRACKER_PRESET=file\n"), 0o600))

	t.Setenv("GOAL_TRACKER_PRESET", "process")
	t.Cleanup(func() { os.Unsetenv("GOAL_TRACKER_FROM_FILE") })

	LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "file", os.Getenv("GOAL_TRACKER_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("GOAL_TRACKER_PRESET"))
}
