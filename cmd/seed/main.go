// Command seed resets and reseeds mock hackathon data for the current
// virtual cycle. Safe to run repeatedly against a development database.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/cursorboston/community-api/internal/config"
	"github.com/cursorboston/community-api/internal/database"
	"github.com/cursorboston/community-api/internal/repository"
	"github.com/cursorboston/community-api/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	seeder := service.NewSeederService(
		repository.NewTeamRepository(db),
		repository.NewPoolRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewInviteRepository(db),
		repository.NewUserRepository(db),
		repository.NewAgentRepository(db),
	)

	result, err := seeder.Seed(ctx)
	if err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed complete",
		slog.String("hackathon", result.HackathonID),
		slog.Int("teamsDeleted", result.TeamsDeleted),
		slog.Int("teams", result.Teams),
		slog.Int("submissions", result.Submissions),
		slog.Int("poolEntries", result.PoolEntries),
		slog.Int("profiles", result.Profiles),
		slog.Int("agents", result.Agents),
	)
}
