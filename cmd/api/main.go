package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"autostream/internal/gateway"
	"autostream/internal/gateway/elevenlabs"
	"autostream/internal/gateway/firecrawl"
	"autostream/internal/gateway/heygem"
	"autostream/internal/gateway/ollama"
	"autostream/internal/http/handlers"
	"autostream/internal/http/httpapi"
	"autostream/internal/infra"
	"autostream/internal/projects"
	"autostream/internal/storage"
	"autostream/internal/voices"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize file store")
	}

	catalog, err := voices.Load(cfg.VoiceCatalog)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load voice catalog")
	}

	svc := gateway.New(gateway.Options{
		Trends: firecrawl.NewClient(firecrawl.Options{
			APIKey:         cfg.FirecrawlAPIKey,
			BaseURL:        cfg.FirecrawlBaseURL,
			Logger:         logger,
			RequestTimeout: cfg.GatewayTimeout,
		}),
		Script: ollama.NewClient(ollama.Options{
			BaseURL:        cfg.OllamaBaseURL,
			Model:          cfg.OllamaModel,
			Logger:         logger,
			RequestTimeout: cfg.GatewayTimeout,
		}),
		Voice: elevenlabs.NewClient(elevenlabs.Options{
			APIKey:         cfg.ElevenAPIKey,
			BaseURL:        cfg.ElevenBaseURL,
			ModelID:        cfg.ElevenModelID,
			Logger:         logger,
			RequestTimeout: cfg.GatewayTimeout,
		}),
		Video: heygem.NewClient(heygem.Options{
			BaseURL:        cfg.HeyGemBaseURL,
			Logger:         logger,
			RequestTimeout: cfg.RenderTimeout,
		}),
		Store:  store,
		Voices: catalog,
		Logger: logger,
	})

	registry := projects.NewRegistry(svc, store, logger)
	if cfg.DefaultProject != "" {
		registry.Create(cfg.DefaultProject)
	}

	app := handlers.NewApp(registry, svc, catalog, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		UploadsDir:      store.BasePath(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
