// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/api"
	"github.com/Akmalwizdom/siprems-backend/internal/cache"
	"github.com/Akmalwizdom/siprems-backend/internal/config"
	"github.com/Akmalwizdom/siprems-backend/internal/holiday"
	"github.com/Akmalwizdom/siprems-backend/internal/mlservice"
	"github.com/Akmalwizdom/siprems-backend/internal/repository/postgres"
	"github.com/Akmalwizdom/siprems-backend/internal/service"
	"github.com/Akmalwizdom/siprems-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	salesRepo := postgres.NewSalesRepository(db.DB)
	productRepo := postgres.NewProductRepository(db.DB)
	calendarRepo := postgres.NewCalendarRepository(db.DB)
	dashboardRepo := postgres.NewDashboardRepository(db.DB)

	// External collaborators
	predictor := mlservice.NewClient(cfg.Forecast.MLServiceURL, time.Duration(cfg.Forecast.MLTimeoutSeconds)*time.Second)
	holidayClient := holiday.NewClient(cfg.Forecast.HolidayAPIURL)

	// Dashboard cache falls back to a noop when redis is unavailable.
	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, continuing without cache")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	// Initialize services
	forecastService := service.NewForecastService(salesRepo, productRepo, calendarRepo, predictor, holidayClient, service.ForecastOptions{
		LookbackDays:   cfg.Forecast.LookbackDays,
		DefaultHorizon: cfg.Forecast.DefaultHorizon,
		LeadTimeDays:   cfg.Forecast.LeadTimeDays,
		ServiceLevel:   cfg.Forecast.ServiceLevel,
	})
	dashboardService := service.NewDashboardService(dashboardRepo, dashboardCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		ForecastService:  forecastService,
		DashboardService: dashboardService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
