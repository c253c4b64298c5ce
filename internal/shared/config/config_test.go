package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GROQ_CHAT_MODELS", "")
	t.Setenv("PRIMARY_MODELS", "")
	t.Setenv("PRIMARY_PROVIDER", "")
	t.Setenv("USE_OLLAMA_ONLY", "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "groq", cfg.PrimaryProvider)
	assert.Empty(t, cfg.PrimaryModels)
	assert.False(t, cfg.UseOllamaOnly)
}

func TestLoadConfig_ModelListAndFlags(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("GROQ_CHAT_MODELS", " a , b,,c ")
	t.Setenv("USE_OLLAMA_ONLY", "1")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434/")
	t.Setenv("PRIMARY_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.PrimaryModels)
	assert.True(t, cfg.UseOllamaOnly)
	assert.Equal(t, "http://ollama:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "openai", cfg.PrimaryProvider)
	assert.Equal(t, "sk-test", cfg.PrimaryKey())
}

func TestLoadConfig_EmptyOllamaURLDisablesSecondary(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")

	cfg := LoadConfig()
	assert.Empty(t, cfg.OllamaBaseURL)
}

func TestLoadConfig_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "abc")

	cfg := LoadConfig()
	assert.Equal(t, 3001, cfg.Port)
}
