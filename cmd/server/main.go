package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ncfqr/internal/config"
	"ncfqr/internal/encoder"
	"ncfqr/internal/handlers"
	"ncfqr/internal/logger"
	"ncfqr/internal/middleware"
	"ncfqr/internal/router"
	"ncfqr/internal/session"
	"ncfqr/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Str("env", cfg.App.Env).Msg("Starting QR generator")

	var store session.Store
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := session.NewRedisClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.Redis.Namespace, cfg.Session.TTL)
		log.Info().Str("namespace", cfg.Redis.Namespace).Msg("Using Redis session store")
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
		log.Info().Msg("Using in-memory session store")
	}

	v := validator.NewValidator()
	enc := encoder.NewEncoder(encoder.NewSymbolEncoder())
	manager := session.NewManager(store, v, enc)
	handler := handlers.NewHandler(manager, v, enc)

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.RegisterRouter(handler, router.Options{
			CORSOrigin:    cfg.Server.CORSOrigin,
			SessionCookie: cfg.Session.CookieName,
			Tokens:        middleware.NewSessionTokens([]byte(cfg.Session.Secret), cfg.Session.TTL),
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
