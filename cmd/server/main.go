// Package main initializes and starts the secrets access and
// administration server, setting up configuration, logging, the database
// connection, repositories, services, handlers and the router.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"secretstore/internal/common/security"
	"secretstore/internal/config"
	"secretstore/internal/db"
	"secretstore/internal/logger"
	"secretstore/internal/repository"
	"secretstore/internal/server/handler/http"
	"secretstore/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is not configured")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge expired secrets in the background.
	db.StartExpiredSecretCleaner(context.Background(), postgresDB,
		options.CleanerInterval(), zapLogger)

	// Token issuing and verification.
	tokens := security.NewTokenIssuer([]byte(options.JWTSecret), options.TokenTTL())

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	secretRepo := repository.NewPostgresSecretRepository(postgresDB)
	auditRepo := repository.NewPostgresAuditRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, auditRepo, tokens)
	secretService := service.NewSecretService(secretRepo, userRepo, auditRepo)
	userService := service.NewUserService(userRepo, auditRepo)
	statsService := service.NewStatsService(auditRepo)

	// Seed the bootstrap administrator from managed configuration.
	if options.AdminPassword == "" {
		zapLogger.Warn("ADMIN_PASSWORD not set, skipping bootstrap admin")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := userService.EnsureAdmin(ctx, options.AdminUsername, options.AdminPassword); err != nil {
			cancel()
			zapLogger.Fatal("cannot seed bootstrap admin", zap.Error(err))
		}
		cancel()
	}

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	secretHandler := &http.SecretHandler{SecretService: secretService}
	userHandler := &http.UserHandler{UserService: userService}
	statsHandler := &http.StatsHandler{StatsService: statsService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, secretHandler, userHandler, statsHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:         options.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
