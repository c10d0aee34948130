package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// NewSQLXOracleDB opens and pings an Oracle connection for the API server.
func NewSQLXOracleDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	return db, nil
}
