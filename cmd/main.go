package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studenthub/internal/config"
	"studenthub/internal/handlers"
	"studenthub/internal/logger"
	"studenthub/internal/repository"
	"studenthub/internal/repository/db"
	"studenthub/internal/server"
	"studenthub/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config first: it decides the log level and refuses to run
	// without an explicit signing secret
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)

	// open DB
	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, cfg.JWTSecret)
	apiHandler := handlers.NewHandler(services, log, cfg.CORSOrigin)

	// seed the default admin before accepting connections
	created, err := services.EnsureAdmin()
	if err != nil {
		log.Fatalw("admin bootstrap failed", "err", err)
	}
	if created {
		log.Infow("default admin created", "email", service.DefaultAdminEmail)
	} else {
		log.Infow("admin already exists")
	}

	// start HTTP server
	srv := &server.Server{}
	go func() {
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("server started", "port", cfg.Port)

	waitForShutdown(srv, log)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
