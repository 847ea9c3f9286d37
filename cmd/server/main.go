package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codetrack/internal/api"
	"codetrack/internal/app/service"
	"codetrack/internal/common/security"
	"codetrack/internal/domain/repository"
	"codetrack/internal/platform/cache"
	"codetrack/internal/platform/config"
	"codetrack/internal/platform/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Info("configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	solvedRepo := repository.NewPgSolvedRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	problemService := service.NewProblemService(problemRepo, solvedRepo, database.DB)
	solvedService := service.NewSolvedService(solvedRepo, problemRepo, database.DB)
	progressService := service.NewProgressService(progressRepo)
	recommendationService := service.NewRecommendationService(progressRepo, problemRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(
		authService,
		userService,
		problemService,
		solvedService,
		progressService,
		recommendationService,
	)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Info("server stopped gracefully")
}
