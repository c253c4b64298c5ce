package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port     int
	Env      string
	LogLevel string

	DataDir          string
	PublicDir        string
	KBReloadSchedule string
	FAQStrict        bool

	// Primary (hosted) provider
	PrimaryProvider string
	PrimaryModels   []string
	GroqKey         string
	OpenAIKey       string
	DeepSeekKey     string
	ClaudeKey       string
	GeminiKey       string

	// Secondary (self-hosted) provider
	UseOllamaOnly    bool
	OllamaBaseURL    string
	OllamaModel      string
	OllamaNativeLang string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:             getInt("PORT", 3001),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DataDir:          getEnv("DATA_DIR", "data"),
		PublicDir:        getEnv("PUBLIC_DIR", "public"),
		KBReloadSchedule: os.Getenv("KB_RELOAD_SCHEDULE"),
		FAQStrict:        getBool("FAQ_STRICT"),

		PrimaryProvider: strings.ToLower(getEnv("PRIMARY_PROVIDER", "groq")),
		GroqKey:         os.Getenv("GROQ_API_KEY"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		DeepSeekKey:     os.Getenv("DEEPSEEK_API_KEY"),
		ClaudeKey:       os.Getenv("CLAUDE_API_KEY"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),

		UseOllamaOnly:    getBool("USE_OLLAMA_ONLY"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3.2"),
		OllamaNativeLang: getEnv("OLLAMA_NATIVE_LANGUAGE", "de"),
	}

	// An explicitly empty OLLAMA_BASE_URL disables the secondary provider.
	if v, ok := os.LookupEnv("OLLAMA_BASE_URL"); ok {
		cfg.OllamaBaseURL = strings.TrimRight(strings.TrimSpace(v), "/")
	} else {
		cfg.OllamaBaseURL = "http://localhost:11434"
	}

	models := os.Getenv("GROQ_CHAT_MODELS")
	if models == "" {
		models = os.Getenv("PRIMARY_MODELS")
	}
	cfg.PrimaryModels = splitList(models)

	return cfg
}

// PrimaryKey returns the API key of the configured primary provider.
func (c *Config) PrimaryKey() string {
	switch c.PrimaryProvider {
	case "openai":
		return c.OpenAIKey
	case "deepseek":
		return c.DeepSeekKey
	case "claude":
		return c.ClaudeKey
	case "gemini":
		return c.GeminiKey
	default:
		return c.GroqKey
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("invalid integer, using default")
		return d
	}
	return n
}

func getBool(k string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	return v == "1" || v == "true" || v == "yes"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
