package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"learnloop/internal/logger"

	_ "github.com/sijms/go-ora/v2" // Ensure go-ora driver is registered
	"go.uber.org/zap"
)

// NewMigrateOracleDB opens a plain database/sql connection for migrations.
func NewMigrateOracleDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return db, nil
}

// RunMigrations executes every .up.sql file in migrationsDir in lexical
// order. File names carry a numeric prefix so order is deterministic.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}

		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	logger.Get().Info("Migrations completed successfully")
	return nil
}
