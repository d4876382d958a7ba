package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/mmuslimabdulj/comuno/internal/config"
	httpHandler "github.com/mmuslimabdulj/comuno/internal/delivery/http"
	"github.com/mmuslimabdulj/comuno/internal/delivery/ws"
	"github.com/mmuslimabdulj/comuno/internal/middleware"
	"github.com/mmuslimabdulj/comuno/internal/party"
	"github.com/mmuslimabdulj/comuno/internal/usecase"
)

func main() {
	// Load .env file (ignored when missing, e.g. in production)
	cfg := config.Load()
	config.SetupLogging(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	registry := party.NewRegistry(party.Defaults{
		Mode:            cfg.Mode,
		Locale:          cfg.Locale,
		LinkBase:        cfg.LinkBase,
		ChatInterval:    cfg.ChatTick,
		AmbientInterval: cfg.AmbientTick,
		ChatRetention:   cfg.ChatRetention,
	})
	directory := usecase.NewStaticDirectory(usecase.SampleFriends(time.Now()))
	hubs := ws.NewHubManager(ctx)
	handler := httpHandler.NewHandler(cfg, registry, directory, hubs)

	apiLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAPI, 2*int(cfg.RateLimitAPI))
	wsLimiter := middleware.NewIPRateLimiter(cfg.RateLimitWS, 2*int(cfg.RateLimitWS))

	var background conc.WaitGroup
	background.Go(func() { apiLimiter.Run(ctx) })
	background.Go(func() { wsLimiter.Run(ctx) })

	// Apply security headers and request logging to all requests
	secured := middleware.SecurityHeaders(middleware.RequestLogger(handler.Routes(apiLimiter, wsLimiter)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      secured,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	background.Go(func() {
		log.Info().Str("port", cfg.Port).Str("mode", string(cfg.Mode)).Msgf("COMUNO watch party core running at http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	})

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	registry.CloseAll()
	background.Wait()

	log.Info().Msg("server exited gracefully")
}
