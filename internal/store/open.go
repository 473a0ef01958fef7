package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"dbmigrate/internal/config"
)

// Open builds the applied-change log for the given configuration. The table
// name is taken verbatim from configuration and quoted per provider.
func Open(cfg config.DBConfig, table string) (Log, error) {
	if table == "" {
		table = "dbmigrate_log"
	}
	switch strings.ToLower(cfg.Provider) {
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, err
		}
		// modernc's driver serializes writes itself; one connection avoids
		// SQLITE_BUSY on concurrent statements.
		db.SetMaxOpenConns(1)
		return &SQLiteLog{db: db, table: table}, nil
	case "postgres":
		db, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, err
		}
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetMaxOpenConns(5)
		return &PostgresLog{db: db, table: table}, nil
	case "mysql":
		// Validate DSN early to provide actionable errors.
		if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		db, err := sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, err
		}
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetMaxOpenConns(5)
		return &MySQLLog{db: db, table: table}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}
