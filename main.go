// File: fitgrid/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitgrid/config"
	"fitgrid/cron"
	"fitgrid/database"
	scheduleRepoPkg "fitgrid/database/repository/schedule"
	templateRepoPkg "fitgrid/database/repository/template"
	"fitgrid/handlers"
	"fitgrid/middleware"
	"fitgrid/routes"
	"fitgrid/services/schedule"
	"fitgrid/services/template"
	"fitgrid/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	tmplRepo := templateRepoPkg.NewMongoTemplateRepo()
	schedRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	if err := tmplRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure template indexes: %v", err)
	}
	if err := schedRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure schedule indexes: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer asynqClient.Close()

	// services.
	templateService := &template.DefaultTemplateService{
		Repo: tmplRepo,
	}
	scheduleService := &schedule.DefaultScheduleService{
		Templates: tmplRepo,
		Schedules: schedRepo,
		Asynq:     asynqClient,
	}

	cron.InitResetWorker(scheduleService)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(scheduleService, logger),
		Template: handlers.NewTemplateHandler(templateService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
