package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/api"
	"github.com/ekaraslan/portfolio-be/internal/auth"
	"github.com/ekaraslan/portfolio-be/internal/config"
	"github.com/ekaraslan/portfolio-be/internal/database"
	"github.com/ekaraslan/portfolio-be/internal/logger"
	"github.com/ekaraslan/portfolio-be/internal/middleware"
	"github.com/ekaraslan/portfolio-be/internal/monitoring"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/ekaraslan/portfolio-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.IsProduction())
	auth.SetSecret(cfg.JWTSecret)

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadPath, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db)
	eventService := services.NewEventService(db)
	catalogService := services.NewCatalogService(db)
	projectService := services.NewProjectService(db)
	blogService := services.NewBlogService(db)
	contactService := services.NewContactService(db)
	contentService := services.NewContentService(db)

	// Seed the admin account when configured and missing.
	if cfg.AdminEmail != "" {
		if err := userService.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed admin account")
		}
	}

	// Set up the admin event feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Shared mutable state is created here and injected, never package-global.
	blocklist := middleware.NewBlocklist()
	generalLimiter := middleware.NewRateLimiter(100, 15*time.Minute)
	loginLimiter := middleware.NewRateLimiter(5, 15*time.Minute)

	// Set up and run the maintenance janitor
	janitor, err := monitoring.NewJanitor(cfg.JanitorCron, sessionService, generalLimiter, loginLimiter)
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.JanitorCron).Msg("Invalid janitor cron expression")
	}
	go janitor.Run()

	// Set up router
	router := api.NewRouter(&api.Deps{
		Cfg:            cfg,
		Hub:            hub,
		Blocklist:      blocklist,
		GeneralLimiter: generalLimiter,
		LoginLimiter:   loginLimiter,
		Users:          userService,
		Sessions:       sessionService,
		Events:         eventService,
		Catalog:        catalogService,
		Projects:       projectService,
		Blogs:          blogService,
		Contacts:       contactService,
		Content:        contentService,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
