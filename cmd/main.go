package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"lexisnap/internal/cache"
	"lexisnap/internal/config"
	"lexisnap/internal/handlers"
	"lexisnap/internal/middleware"
	"lexisnap/internal/model"
	"lexisnap/internal/provider"
	"lexisnap/internal/repository"
	"lexisnap/internal/service"
	"lexisnap/internal/session"
	"lexisnap/internal/storage"
	"lexisnap/internal/webutil"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Temporary logger until the configuration decides the real one.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := db.AutoMigrate(
		&model.Word{},
		&model.WordMetadata{},
		&model.Review{},
		&model.ReviewLogEntry{},
		&model.DailyStat{},
	); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Storage, cache and preview sessions.
	files := storage.NewFileStore(cfg.Uploads.Dir)
	contentCache := cache.New(files.CacheDir())
	sessions := session.NewMemoryStore(cfg.PreviewTTL())

	// Providers: live adapters when credentials are present, deterministic
	// offline ones otherwise.
	var extractor provider.Extractor
	var definer provider.Definer
	if cfg.Providers.Gemini.APIKey != "" {
		gemini := provider.NewGeminiClient(cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model, cfg.Providers.Gemini.RetryAttempts)
		defer gemini.Close()
		extractor = gemini
		definer = gemini
		slog.Info("Using Gemini provider", slog.String("model", cfg.Providers.Gemini.Model))
	} else {
		extractor = provider.NewOfflineExtractor()
		definer = provider.NewOfflineDefiner()
		slog.Warn("GEMINI_API_KEY not set, using offline extraction and definitions")
	}

	var synthesizer provider.Synthesizer
	if cfg.Providers.AzureSpeech.APIKey != "" && cfg.Providers.AzureSpeech.Region != "" {
		azure := provider.NewAzureSpeechClient(cfg.Providers.AzureSpeech.APIKey, cfg.Providers.AzureSpeech.Region, cfg.Providers.AzureSpeech.Voice)
		defer azure.Close()
		synthesizer = azure
		slog.Info("Using Azure speech provider", slog.String("region", cfg.Providers.AzureSpeech.Region))
	} else {
		synthesizer = provider.NewOfflineSynthesizer()
		slog.Warn("Azure speech credentials not set, using silent fallback audio")
	}

	// Dependency injection.
	wordRepo := repository.NewGormWordRepository()
	metaRepo := repository.NewGormMetadataRepository()
	reviewRepo := repository.NewGormReviewRepository()
	statsRepo := repository.NewGormStatsRepository()

	enrichmentService := service.NewEnrichmentService(db, wordRepo, metaRepo, definer, synthesizer, contentCache, files, cfg.Providers.AzureSpeech.Voice)
	reviewService := service.NewReviewService(db, reviewRepo, statsRepo, cfg)
	wordService := service.NewWordService(db, wordRepo, enrichmentService, reviewService, extractor, sessions, files, contentCache)
	statsService := service.NewStatsService(db, statsRepo)

	wordHandler := handlers.NewWordHandler(wordService, enrichmentService, logger)
	previewHandler := handlers.NewPreviewHandler(wordService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	statsHandler := handlers.NewStatsHandler(statsService, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"}, logger)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	// Stored images and synthesized audio.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(files.UploadsDir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.Auth.Enabled {
				slog.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(cfg))
			} else {
				slog.Warn("Auth disabled, applying development X-User-ID middleware")
				r.Use(middleware.DevUserContextMiddleware)
			}

			r.Route("/words", func(r chi.Router) {
				r.Post("/", wordHandler.PostWords)
				r.Get("/", wordHandler.GetWords)

				r.Post("/image", wordHandler.PostWordsImage)
				r.Post("/image/preview", previewHandler.PostPreview)
				r.Post("/image/confirm", previewHandler.PostConfirm)
				r.Delete("/image/preview/{upload_id}", previewHandler.DeletePreview)

				r.Route("/{word_id}", func(r chi.Router) {
					r.Get("/", wordHandler.GetWord)
					r.Post("/regenerate", wordHandler.Regenerate)
					r.Get("/audio", wordHandler.GetPronunciationAudio)
					r.Get("/definition-audio", wordHandler.GetDefinitionAudio)
					r.Get("/example-audio", wordHandler.GetExampleAudio)
				})
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", reviewHandler.GetDueReviews)
				r.Post("/{review_id}/result", reviewHandler.PostReviewResult)
			})

			r.Get("/stats/daily", statsHandler.GetDailyStats)
		})
	})

	server := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Graceful shutdown failed, forcing close", slog.Any("error", err))
			if err := server.Close(); err != nil {
				slog.Error("Error closing server", slog.Any("error", err))
			}
		}
	}

	slog.Info("Application stopped.")
}
