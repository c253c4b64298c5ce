package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/DevAstrumAI/Funia/internal/core/chat"
	"github.com/DevAstrumAI/Funia/internal/core/faq"
	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
	"github.com/DevAstrumAI/Funia/internal/core/llm"
	"github.com/DevAstrumAI/Funia/internal/modules/funia/handlers"
	"github.com/DevAstrumAI/Funia/internal/shared/config"
	"github.com/DevAstrumAI/Funia/internal/shared/metrics"
	"github.com/DevAstrumAI/Funia/internal/shared/utils"

	_ "github.com/DevAstrumAI/Funia/cmd/api/docs"
)

// @title FUNIA Chat API
// @version 1.0
// @description Chat backend for the functiomed FUNIA widget
// @contact.name functiomed AG
// @BasePath /
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	log.Info().Str("env", cfg.Env).Msg("🚀 Starting FUNIA chat API")

	// Knowledge base
	kb, err := knowledge.Load(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to load knowledge base")
	}
	metrics.RecordReload("ok", kb.LoadedAt)

	if issues := faq.Validate(kb.FAQs); len(issues) > 0 {
		for _, issue := range issues {
			log.Warn().Str("issue", issue.String()).Msg("⚠️ FAQ overlap")
		}
		if cfg.FAQStrict {
			log.Fatal().Int("issues", len(issues)).Msg("FAQ_STRICT is set and faqs.json has overlaps")
		}
	}

	// Providers
	orchestrator, primary, ollama := buildOrchestrator(cfg)

	chatService := chat.NewService(kb, orchestrator)

	reloader := chat.NewReloader(chatService, cfg.DataDir)
	if err := reloader.Schedule(cfg.KBReloadSchedule); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule knowledge reload")
	}
	reloader.Start()

	// Handlers
	primaryName := ""
	if primary != nil {
		primaryName = primary.GetProviderName()
	}
	chatHandler := handlers.NewChatHandler(chatService)
	healthHandler := handlers.NewHealthHandler(chatService, primaryName, ollama)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "FUNIA Chat API",
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", healthHandler.GetHealth)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Post("/api/chat", chatHandler.PostChat)

	if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
		app.Static("/", cfg.PublicDir)
		log.Info().Str("dir", cfg.PublicDir).Msg("🗂️ Serving widget files")
	}

	ln, port, err := listen(cfg.Port, maxPortAttempts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to bind")
	}

	go func() {
		if err := app.Listener(ln); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	log.Info().Int("port", port).Msgf("✅ FUNIA running at http://localhost:%d", port)
	log.Info().Msgf("📄 Swagger UI: http://localhost:%d/swagger/", port)
	logProviderWarnings(cfg, primary, ollama)

	// SIGHUP reloads the knowledge base; SIGINT and SIGTERM stop the server.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for s := range sig {
		if s == syscall.SIGHUP {
			log.Info().Msg("🔄 SIGHUP received, reloading knowledge base")
			_ = reloader.ReloadNow()
			continue
		}
		break
	}

	log.Info().Msg("🛑 Shutting down FUNIA...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reloader.Stop(ctx)
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
	log.Info().Msg("👋 Goodbye!")
}

// buildOrchestrator wires the primary provider (nil without credentials or
// with USE_OLLAMA_ONLY) and the Ollama secondary.
func buildOrchestrator(cfg *config.Config) (*llm.Orchestrator, llm.Provider, *llm.Ollama) {
	providerType := llm.ProviderType(cfg.PrimaryProvider)

	var primary llm.Provider
	if !cfg.UseOllamaOnly {
		p, err := llm.NewProvider(&llm.ProviderConfig{Type: providerType, APIKey: cfg.PrimaryKey()})
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ Primary provider disabled")
		} else {
			primary = p
		}
	}

	models := cfg.PrimaryModels
	if len(models) == 0 {
		models = llm.DefaultModels(providerType)
	}

	ollama := llm.NewOllama(llm.OllamaConfig{
		BaseURL:    cfg.OllamaBaseURL,
		Model:      cfg.OllamaModel,
		NativeLang: knowledge.ParseLang(cfg.OllamaNativeLang),
	})

	// A disabled Ollama must stay a nil interface.
	var secondary llm.Secondary
	if ollama.Enabled() {
		secondary = ollama
	}

	orch := llm.NewOrchestrator(llm.OrchestratorConfig{
		Primary:        primary,
		Models:         models,
		Secondary:      secondary,
		SecondaryModel: cfg.OllamaModel,
	})
	return orch, primary, ollama
}

func logProviderWarnings(cfg *config.Config, primary llm.Provider, ollama *llm.Ollama) {
	switch {
	case cfg.UseOllamaOnly:
		log.Info().Msg("🦙 USE_OLLAMA_ONLY is set, answering with Ollama only")
	case primary == nil:
		log.Warn().Msgf("⚠️ No API key for %s. Set it in .env or run Ollama locally (ollama run %s) as fallback.", cfg.PrimaryProvider, cfg.OllamaModel)
	default:
		log.Info().Str("provider", primary.GetProviderName()).Msg("🤖 Primary provider ready")
	}

	if !ollama.Enabled() {
		log.Info().Msg("Ollama fallback disabled (OLLAMA_BASE_URL is empty)")
		return
	}
	log.Info().Str("url", ollama.BaseURL()).Str("model", ollama.Model()).Msg("🦙 Ollama fallback configured")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ollama.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️ Ollama fallback not answering")
	}
}
