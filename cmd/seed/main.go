package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/models"
	"social-service/internal/repositories/postgres"
	"social-service/internal/services"
	"social-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Log.Level, cfg.Log.Format))

	slog.Info("Starting database seeding...")

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories and services
	userRepo := postgres.NewUserRepository(db)
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, nil)
	userService := services.NewUserService(userRepo, tokenService)
	friendService := services.NewFriendService(
		services.NewGormFriendStore(db, cfg.Database.TxRetries),
		services.FriendPolicy{
			RequestLimit:  cfg.Friend.RequestLimit,
			RequestWindow: cfg.Friend.RequestWindow,
			Resolver:      services.ResolverPolicy(cfg.Friend.ResolverPolicy),
		},
		nil,
	)

	ctx := context.Background()

	// Seed users
	seedUsers := []struct {
		email string
		name  string
	}{
		{"admin@social.local", "Admin"},
		{"alice@social.local", "Alice"},
		{"bob@social.local", "Bob"},
		{"charlie@social.local", "Charlie"},
	}

	ids := make(map[string]uint, len(seedUsers))
	for _, u := range seedUsers {
		user, created, err := userService.Signup(ctx, &models.SignupRequest{Email: u.email, Password: "123456"})
		if err != nil {
			slog.Error("Failed to create user", "email", u.email, "error", err)
			os.Exit(1)
		}
		if created {
			if _, err := userService.UpdateName(ctx, user.ID, u.name); err != nil {
				slog.Warn("Failed to set user name", "email", u.email, "error", err)
			}
			slog.Info("Created user", "email", u.email, "id", user.ID)
		} else {
			slog.Info("User already exists", "email", u.email, "id", user.ID)
		}
		ids[u.name] = user.ID
	}

	// Seed friend requests: Alice -> Bob accepted, Alice -> Charlie pending
	seedRequests := []struct {
		from, to string
		accept   bool
	}{
		{"Alice", "Bob", true},
		{"Alice", "Charlie", false},
	}

	for _, r := range seedRequests {
		result, err := friendService.SendRequest(ctx, ids[r.from], ids[r.to])
		if errors.Is(err, services.ErrRateLimited) {
			slog.Warn("Friend request rate limited, run the seeder again later", "from", r.from, "to", r.to)
			continue
		}
		if err != nil {
			slog.Error("Failed to send friend request", "from", r.from, "to", r.to, "error", err)
			os.Exit(1)
		}
		slog.Info("Friend request seeded", "from", r.from, "to", r.to, "outcome", result.Outcome.String())

		if r.accept && result.Outcome == services.OutcomeCreated {
			if _, err := friendService.AcceptRequest(ctx, ids[r.from], result.Request.ID); err != nil {
				slog.Warn("Failed to accept friend request", "request_id", result.Request.ID, "error", err)
			}
		}
	}

	slog.Info("Database seeding completed successfully!")
}
