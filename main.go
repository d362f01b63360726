package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clementus360/goal-tracker/config"
	"clementus360/goal-tracker/handlers"
	"clementus360/goal-tracker/llm"
	"clementus360/goal-tracker/middleware"
	"clementus360/goal-tracker/routes"
)

func main() {
	config.LoadEnv()

	settings, err := config.Load()
	if err != nil {
		config.Logger.Fatalf("Invalid configuration: %v", err)
	}
	config.InitLogger(settings.LogLevel)

	be, err := newBackend(settings)
	if err != nil {
		config.Logger.Fatalf("Failed to initialize storage: %v", err)
	}
	defer be.close()

	generator, err := llm.New(llm.Model(settings.LLMProvider), llm.Options{
		APIKey:       settings.LLMKey(),
		Model:        llmModel(settings),
		URL:          llmURL(settings),
		SystemPrompt: settings.SystemPrompt,
	})
	if err != nil {
		config.Logger.Fatalf("Failed to initialize LLM client: %v", err)
	}
	if err := generator.Ready(); err != nil {
		config.Logger.Warn(err.Error())
	}

	h := handlers.New(be.accounts, be.openStore, generator).WithSeedOverlay(be.seeds)

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, h)

	server := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           middleware.Chain(middleware.CORSMiddleware, middleware.LoggingMiddleware)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("Server is running on port %s", settings.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		config.Logger.WithError(err).Error("Graceful shutdown failed")
	}
}

func llmModel(s config.Settings) string {
	if s.LLMProvider == config.ProviderGemini {
		return s.GeminiModel
	}
	return s.OpenAIModel
}

func llmURL(s config.Settings) string {
	if s.LLMProvider == config.ProviderGemini {
		return s.GeminiURL
	}
	return s.OpenAIURL
}
