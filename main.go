package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-server/internal/api"
	"github.com/alumnihub/portal-server/internal/auth"
	"github.com/alumnihub/portal-server/internal/config"
	"github.com/alumnihub/portal-server/internal/logger"
	"github.com/alumnihub/portal-server/internal/seed"
	"github.com/alumnihub/portal-server/internal/services"
	"github.com/alumnihub/portal-server/internal/session"
	"github.com/alumnihub/portal-server/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env)

	// Set up the record store
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer st.Close()

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	// Idempotent demo-data bootstrap
	if cfg.SeedDemoData {
		if err := seed.Run(context.Background(), st, hasher); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Set up services
	sessions := session.NewManager(st, cfg.SessionTTL)
	authService := services.NewAuthService(st, sessions, hasher)
	contentService := services.NewContentService(st, authService)

	// Set up and run the background session sweeper
	sweeper := session.NewSweeper(sessions, cfg.SweepInterval)
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(authService, contentService, api.Options{
		ClientKey:  cfg.ClientKey,
		LoginRPS:   1,
		LoginBurst: 10,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
