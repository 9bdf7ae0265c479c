package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cursorboston/community-api/internal/config"
	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/handler"
	"github.com/cursorboston/community-api/internal/jobs"
	"github.com/cursorboston/community-api/internal/middleware"
	"github.com/cursorboston/community-api/internal/repository"
	"github.com/cursorboston/community-api/internal/service"
	"github.com/cursorboston/community-api/pkg/jwt"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	agentRepo := repository.NewAgentRepository(db)
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	poolRepo := repository.NewPoolRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	inviteRepo := repository.NewInviteRepository(db)

	// Initialize services
	agentService := service.NewAgentService(agentRepo)
	teamService := service.NewTeamService(teamRepo)
	directoryService := service.NewDirectoryService(userRepo, agentRepo)
	seederService := service.NewSeederService(teamRepo, poolRepo, submissionRepo, inviteRepo, userRepo, agentRepo)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Initialize claim expiry job
	claimExpiry := jobs.NewClaimExpiry(agentService, cfg.Jobs.ClaimExpiryInterval)
	claimExpiry.Start()
	defer claimExpiry.Stop()

	// Initialize handlers
	agentHandler := handler.NewAgentHandler(agentService)
	teamHandler := handler.NewTeamHandler(teamService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	adminHandler := handler.NewAdminHandler(seederService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	authMiddleware := middleware.Auth(jwtService)
	optionalAuthMiddleware := middleware.OptionalAuth(jwtService)
	adminMiddleware := middleware.AdminAuth(jwtService)

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /robots.txt", handler.Robots)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Agent claim endpoints. GET works anonymously so the claim page can
	// render before login; POST requires a verified identity.
	mux.Handle("GET /api/agents/claim/{token}", optionalAuthMiddleware(http.HandlerFunc(agentHandler.GetClaimInfo)))
	mux.Handle("POST /api/agents/claim/{token}", authMiddleware(http.HandlerFunc(agentHandler.Claim)))
	mux.Handle("GET /api/agents/user", authMiddleware(http.HandlerFunc(agentHandler.ListOwned)))

	// Hackathon team endpoints
	mux.Handle("PATCH /api/hackathons/team/profile", authMiddleware(http.HandlerFunc(teamHandler.UpdateProfile)))

	// Member directory (public)
	mux.HandleFunc("GET /api/members", directoryHandler.ListMembers)

	// Admin endpoints - requires admin role
	mux.Handle("POST /api/admin/seed/hackathon", adminMiddleware(http.HandlerFunc(adminHandler.SeedHackathon)))
	mux.Handle("GET /api/admin/members/stats", adminMiddleware(http.HandlerFunc(directoryHandler.Stats)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Metrics,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
