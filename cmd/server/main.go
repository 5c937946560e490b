// Package main initializes and starts the portfolio API server,
// setting up configuration, logging, database connections, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/portfolio/internal/auth"
	"github.com/atinyakov/portfolio/internal/config"
	"github.com/atinyakov/portfolio/internal/db"
	"github.com/atinyakov/portfolio/internal/logger"
	"github.com/atinyakov/portfolio/internal/middleware"
	"github.com/atinyakov/portfolio/internal/repository"
	"github.com/atinyakov/portfolio/internal/server/handler/http"
	"github.com/atinyakov/portfolio/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second

	contactLimit   = 3
	contactWindow  = 15 * time.Minute
	contactLimited = "Too many contact form submissions. Please try again later."
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log.With(zap.String("environment", options.Environment))

	if err := options.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DSN(), db.PoolOptions{
		MaxOpenConns:    options.MaxOpenConns,
		MaxIdleConns:    options.MaxIdleConns,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	tokens, err := auth.NewIssuer(options.JWTSecret, options.TokenTTL)
	if err != nil {
		zapLogger.Fatal("cannot init token issuer", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	skillRepo := repository.NewPostgresSkillRepository(postgresDB)
	experienceRepo := repository.NewPostgresExperienceRepository(postgresDB)
	projectRepo := repository.NewPostgresProjectRepository(postgresDB)
	contactRepo := repository.NewPostgresContactRepository(postgresDB)
	profileRepo := repository.NewPostgresProfileRepository(postgresDB)

	// Initialize business-logic services and wrap them in HTTP handlers.
	handlers := http.Handlers{
		Auth: &http.AuthHandler{
			AuthService: service.NewAuthService(userRepo, tokens, auth.DefaultCost),
			Log:         zapLogger.Named("auth"),
		},
		Skills: &http.SkillHandler{
			Skills: service.NewSkillService(skillRepo),
			Log:    zapLogger.Named("skills"),
		},
		Experience: &http.ExperienceHandler{
			Experience: service.NewExperienceService(experienceRepo),
			Log:        zapLogger.Named("experience"),
		},
		Projects: &http.ProjectHandler{
			Projects: service.NewProjectService(projectRepo),
			Log:      zapLogger.Named("projects"),
		},
		Contact: &http.ContactHandler{
			Contact: service.NewContactService(contactRepo),
			Log:     zapLogger.Named("contact"),
		},
		Profile: &http.ProfileHandler{
			Profile: service.NewProfileService(profileRepo),
			Log:     zapLogger.Named("profile"),
		},
		Health: &http.HealthHandler{
			DB:          postgresDB,
			Environment: options.Environment,
			Log:         zapLogger.Named("health"),
		},
	}

	trustedProxies, err := options.TrustedProxyPrefixes()
	if err != nil {
		zapLogger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handlers, http.RouterOptions{
		Tokens:         tokens,
		ContactLimiter: middleware.NewRateLimiter(contactLimit, contactWindow, contactLimited),
		CORSOrigins:    options.CORSOrigins,
		TrustedProxies: trustedProxies,
		Log:            zapLogger.Named("http"),
	})

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
