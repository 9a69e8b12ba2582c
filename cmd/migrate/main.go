package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"go.uber.org/zap"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/database"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/logger"
)

func main() {
	status := flag.Bool("status", false, "List embedded migrations and whether they are applied")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logr, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logr.Sync() }()

	db, raw, err := database.Open(cfg, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer raw.Close()

	if *status {
		if db.Dialector.Name() == "sqlite" {
			fmt.Println("sqlite databases are auto-migrated from the models")
			return
		}
		entries, err := fs.ReadDir(database.Migrations(), ".")
		if err != nil {
			logr.Fatal("failed to read migrations", zap.Error(err))
		}
		for _, e := range entries {
			var applied bool
			err := raw.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations WHERE name = $1)", e.Name()).Scan(&applied)
			if err != nil {
				logr.Fatal("failed to check migration status", zap.Error(err))
			}
			state := "pending"
			if applied {
				state = "applied"
			}
			fmt.Printf("%-40s %s\n", e.Name(), state)
		}
		return
	}

	if err := database.RunMigrations(db, logr); err != nil {
		logr.Fatal("migration failed", zap.Error(err))
	}
	fmt.Println("All migrations applied successfully.")
}
