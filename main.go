// File: mentorhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorhub/config"
	"mentorhub/cron"
	"mentorhub/database"
	sessionRepoPkg "mentorhub/database/repository/session"
	userRepoPkg "mentorhub/database/repository/user"
	"mentorhub/handlers"
	"mentorhub/metrics"
	"mentorhub/middleware"
	"mentorhub/routes"
	"mentorhub/services/session"
	"mentorhub/services/tasks"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessRepo := sessionRepoPkg.NewMongoSessionRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// summary job queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	dispatcher := &tasks.AsynqSummaryDispatcher{
		Client:   asynqClient,
		MaxRetry: config.AppConfig.SummaryMaxRetries,
	}

	// services.
	sessionService := &session.DefaultSessionService{
		Repo:       sessRepo,
		Users:      userRepo,
		Dispatcher: dispatcher,
		MaxRetries: config.AppConfig.BookingMaxRetries,
	}

	sessionHandler := handlers.NewSessionHandler(sessionService, utils.GetCacheClient(), logger)

	// Register routes.
	routes.RegisterRoutes(router, sessionHandler)

	// Start the summary worker and background monitors.
	cron.InitSummaryWorker(sessRepo, userRepo)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)
	metrics.StartServer(config.AppConfig.MetricsPort, "/metrics")

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
