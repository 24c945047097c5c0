// Command migrate manages the database schema with goose.
//
// Usage:
//
//	migrate up|down|status|version
//	migrate up-to <version>
//	migrate create <name>
//	migrate validate
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gestora-app/gestora-backend/pkg/config"
	"github.com/gestora-app/gestora-backend/pkg/db"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/migrate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|status|version|up-to|create|validate> [args]")
	}
	command := os.Args[1]
	args := os.Args[2:]

	// create and validate work without a database
	switch command {
	case "create":
		if len(args) != 1 {
			return fmt.Errorf("usage: migrate create <name>")
		}
		path, err := migrate.CreateSQLMigration(migrate.DefaultDir, args[0])
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	case "validate":
		if err := migrate.ValidateDir(migrate.DefaultDir); err != nil {
			return err
		}
		fmt.Println("migrations ok")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "gestora-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := context.Background()
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}

	dialect := migrate.Dialect(cfg.DB.Driver)

	if command == "up-to" {
		if len(args) != 1 {
			return fmt.Errorf("usage: migrate up-to <version>")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, dialect, migrate.DefaultDir, args[0])
	}

	return migrate.Run(ctx, sqlDB, dialect, migrate.DefaultDir, command, args...)
}
