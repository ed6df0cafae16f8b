package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/quizmaster-be/internal/api/handlers"
	"github.com/isdelr/quizmaster-be/internal/auth"
	"github.com/isdelr/quizmaster-be/internal/inference"
	"github.com/isdelr/quizmaster-be/internal/logger"
	"github.com/isdelr/quizmaster-be/internal/services"
)

// Deps bundles what the router needs to build its handlers.
type Deps struct {
	Users          services.UserServiceProvider
	Quizzes        services.QuizServiceProvider
	Topics         services.TopicServiceProvider
	Payments       services.PaymentServiceProvider
	Backups        services.BackupServiceProvider
	Inference      inference.Client
	Tokens         *auth.TokenIssuer
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	userHandler := handlers.NewUserHandler(d.Users)
	quizHandler := handlers.NewQuizHandler(d.Quizzes)
	topicHandler := handlers.NewTopicHandler(d.Topics)
	paymentHandler := handlers.NewPaymentHandler(d.Payments)
	systemHandler := handlers.NewSystemHandler(d.Inference)

	r.Get("/test", systemHandler.Test)
	r.Get("/health", systemHandler.Health)
	r.Get("/verify-api", systemHandler.VerifyAPI)

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Post("/updateInterests", userHandler.UpdateInterests)
	r.Get("/profile", userHandler.Profile)

	r.Get("/getQuiz", quizHandler.GetQuiz)
	r.Post("/submitQuiz", quizHandler.Submit)
	r.Get("/getPerformance", quizHandler.GetPerformance)
	r.Get("/getQuizHistory", quizHandler.GetHistory)

	r.Get("/getAvailableTopics", topicHandler.GetAvailable)
	r.Get("/getPendingTopics", topicHandler.GetPending)

	r.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)

	// Token-protected routes
	r.Group(func(r chi.Router) {
		r.Use(d.Tokens.Middleware())
		r.Get("/me", userHandler.GetMe)

		if d.Backups != nil {
			backupHandler := handlers.NewBackupHandler(d.Backups)
			r.Get("/backups", backupHandler.GetAll)
			r.Post("/backups", backupHandler.Create)
		}
	})

	return r
}
