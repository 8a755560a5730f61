package main

import (
	"context"
	"fmt"

	"mtys/internal/db"
	"mtys/internal/normalize"
	"mtys/internal/seed"
	"mtys/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		norm := normalize.Default()

		logRepo := store.NewLogRepository(pool)
		userRepo := store.NewUserRepository(pool)
		muhtarRepo := store.NewMuhtarRepository(pool, norm)
		requestRepo := store.NewRequestRepository(pool, norm, logRepo)

		logrus.Info("Seeding users...")
		if err := seed.SeedUsers(ctx, userRepo); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		logrus.Info("Seeding muhtar data...")
		if err := seed.SeedMuhtars(ctx, muhtarRepo); err != nil {
			return fmt.Errorf("failed to seed muhtar data: %w", err)
		}

		logrus.Info("Seeding requests...")
		if err := seed.SeedRequests(ctx, requestRepo); err != nil {
			return fmt.Errorf("failed to seed requests: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
