package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/artisan-content-agent/internal/a2a"
	"github.com/BerylCAtieno/artisan-content-agent/internal/analyzer"
	"github.com/BerylCAtieno/artisan-content-agent/internal/api"
	"github.com/BerylCAtieno/artisan-content-agent/internal/config"
	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/recommend"
	"github.com/BerylCAtieno/artisan-content-agent/internal/storage"
	"github.com/BerylCAtieno/artisan-content-agent/internal/store"
	"github.com/BerylCAtieno/artisan-content-agent/internal/storyteller"
	"github.com/BerylCAtieno/artisan-content-agent/internal/strategist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(cfg.Server.Mode)

	if err := recommend.ValidateCatalog(); err != nil {
		logging.Fatal().Err(err).Msg("invalid template catalog")
	}

	profiles, err := store.Open(cfg.Store.ProfilesFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open profile store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Left as nil interfaces when a credential is missing so the analyzer and
	// storyteller report themselves unavailable.
	var (
		objects analyzer.ObjectStore
		vision  analyzer.VisionModel
		writer  storyteller.TextModel
	)
	if cfg.StoriesEnabled() {
		geminiClient, err := analyzer.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to create Gemini client")
		}
		defer geminiClient.Close()
		writer = geminiClient

		if cfg.AnalysisEnabled() {
			uploader, err := storage.NewGCSUploader(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
			if err != nil {
				logging.Fatal().Err(err).Msg("failed to create GCS client")
			}
			defer uploader.Close()
			objects, vision = uploader, geminiClient
		} else {
			logging.Warn().Msg("GCS_BUCKET_NAME not set, image analysis disabled")
		}
	} else {
		logging.Warn().Msg("GEMINI_API_KEY not set, image analysis and storytelling disabled")
	}

	svc := strategist.New(profiles, recommend.NewEngine(), analyzer.NewService(objects, vision, cfg.Analysis),
		strategist.WithStoryteller(storyteller.NewService(writer, cfg.Analysis)),
		strategist.WithCalendarLimit(cfg.Calendar.MaxDays),
	)

	publicURL := cfg.Server.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	agent := a2a.NewHandler(svc, a2a.Options{BaseURL: publicURL, CalendarDays: strategist.StrategyCalendarDays})

	router := api.NewRouter(svc, agent, api.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		CalendarDays:   cfg.Calendar.DefaultDays,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Int("profiles", profiles.Len()).
			Bool("analysis_enabled", svc.AnalysisEnabled()).
			Bool("stories_enabled", svc.StoriesEnabled()).
			Int("calendar_max_days", svc.MaxCalendarDays()).
			Msg("Artisan Content Agent starting")
		logging.Info().Msgf("Agent card available at: %s/.well-known/agent.json", publicURL)
		logging.Info().Msgf("A2A endpoint available at: %s/a2a/strategist", publicURL)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
