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

	"github.com/isdelr/quizmaster-be/internal/api"
	"github.com/isdelr/quizmaster-be/internal/auth"
	"github.com/isdelr/quizmaster-be/internal/config"
	"github.com/isdelr/quizmaster-be/internal/inference"
	"github.com/isdelr/quizmaster-be/internal/logger"
	"github.com/isdelr/quizmaster-be/internal/monitoring"
	"github.com/isdelr/quizmaster-be/internal/payments"
	"github.com/isdelr/quizmaster-be/internal/services"
	"github.com/isdelr/quizmaster-be/internal/store"
	"github.com/rs/zerolog/log"
)

const tokenTTL = 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Set up storage
	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize store")
	}
	defer st.Close()

	// Set up inference client
	llm, err := newInferenceClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.InferenceProvider).Msg("Failed to initialize inference client")
	}
	if cfg.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set; payment requests will fail")
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		if jwtSecret, err = auth.RandomSecret(); err != nil {
			log.Fatal().Err(err).Msg("Failed to generate JWT secret")
		}
		log.Warn().Msg("JWT_SECRET is not set; using a random key, tokens are invalidated on restart")
	}

	// Set up services
	tokens := auth.NewTokenIssuer(jwtSecret, tokenTTL)
	userService := services.NewUserService(st, tokens)
	quizService := services.NewQuizService(st, llm)
	topicService := services.NewTopicService(st, llm)
	paymentService := services.NewPaymentService(
		payments.NewStripeProvider(cfg.StripeSecretKey, nil), cfg.PaymentCurrency, cfg.StripePublishableKey)
	backupService := services.NewBackupService(st, cfg.BackupPath, cfg.BackupRetention)

	// Set up and run the background scheduler
	var scheduler *monitoring.Scheduler
	if cfg.BackupSchedule != "" {
		scheduler, err = monitoring.NewScheduler(backupService, cfg.BackupSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize scheduler")
		}
		scheduler.Start()
	}

	// Set up router
	router := api.NewRouter(api.Deps{
		Users:          userService,
		Quizzes:        quizService,
		Topics:         topicService,
		Payments:       paymentService,
		Backups:        backupService,
		Inference:      llm,
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set up server. Quiz generation can take as long as the inference timeout.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.InferenceTimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("store", cfg.StoreDriver).Str("model", llm.Model()).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return store.OpenSQLiteStore(cfg.DatabasePath)
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		return store.OpenJSONStore(cfg.UsersFile(), cfg.QuizHistoryFile())
	}
}

func newInferenceClient(cfg *config.Config) (inference.Client, error) {
	switch cfg.InferenceProvider {
	case "openai":
		return inference.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.InferenceModel, cfg.InferenceTimeout)
	default:
		return inference.NewOllamaClient(cfg.OllamaURL, cfg.InferenceModel, cfg.InferenceTimeout, nil), nil
	}
}
