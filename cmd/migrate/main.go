package main

import (
	"flag"
	"log"

	"learnloop/internal/config"
	"learnloop/internal/database"
	"learnloop/internal/logger"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "directory containing .up.sql migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}
