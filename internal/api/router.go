package api

import (
	"net/http"
	"time"

	"codetrack/internal/api/handler"
	"codetrack/internal/app/service"
	"codetrack/internal/common/security"
	"codetrack/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	problemService *service.ProblemService,
	solvedService *service.SolvedService,
	progressService *service.ProgressService,
	recommendationService *service.RecommendationService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Verifies the bearer token and puts claims in context; enforcement
	// happens per route group via middleware.Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(problemService)
		v1.Route("/problems", problemHandler.RegisterRoutes)

		solvedHandler := handler.NewSolvedHandler(solvedService)
		v1.Route("/solved", solvedHandler.RegisterRoutes)

		progressHandler := handler.NewProgressHandler(progressService)
		v1.Route("/progress", progressHandler.RegisterRoutes)

		recommendationHandler := handler.NewRecommendationHandler(recommendationService)
		v1.Route("/recommendations", recommendationHandler.RegisterRoutes)
	})

	return r
}
