package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"campuslink/internal/dbmysql"
	"campuslink/internal/di"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system env variables")
	}

	// Initialize application with dependency injection
	app, err := di.InitializeApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	logger := app.Logger

	if err := dbmysql.Migrate(app.DB); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := app.Locations.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure telemetry indexes")
	}

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", app.Config.Server.Host, app.Config.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(app.Config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("realtime service starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := app.Mongo.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("mongo close failed")
	}
	if err := app.Redis.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close failed")
	}

	logger.Info().Msg("server gracefully stopped")
}
