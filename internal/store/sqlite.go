package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteLog keeps the applied-change log in a local SQLite file. It is the
// default backend and needs no running database server.
type SQLiteLog struct {
	db    *sql.DB
	table string
}

func (s *SQLiteLog) Provider() string { return "sqlite" }

func (s *SQLiteLog) Close() error { return s.db.Close() }

func (s *SQLiteLog) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteLog) EnsureSchema(ctx context.Context) error {
	tableName := quoteIdent(s.table)
	indexName := quoteIdent(s.table + "_name_idx")
	stmt := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id varchar(40) NOT NULL PRIMARY KEY,
	name varchar(255) NOT NULL,
	checksum varchar(64) NOT NULL,
	created_at timestamp NOT NULL
);
CREATE INDEX IF NOT EXISTS %s ON %s(name, created_at);
`, tableName, indexName, tableName)
	return execScript(ctx, s.db, stmt)
}

func (s *SQLiteLog) LatestChecksum(ctx context.Context, name string) (string, bool, error) {
	stmt := fmt.Sprintf(`SELECT checksum FROM %s WHERE name = ? ORDER BY created_at DESC LIMIT 1`, quoteIdent(s.table))
	var checksum string
	err := s.db.QueryRowContext(ctx, stmt, name).Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return checksum, true, nil
}

func (s *SQLiteLog) Append(ctx context.Context, entry Entry) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (id, name, checksum, created_at) VALUES (?, ?, ?, ?)`, quoteIdent(s.table))
	_, err := s.db.ExecContext(ctx, stmt, entry.ID, entry.Name, entry.Checksum, entry.CreatedAt)
	return err
}

func (s *SQLiteLog) Recent(ctx context.Context, limit int) ([]Entry, error) {
	stmt := fmt.Sprintf(`SELECT id, name, checksum, created_at FROM %s ORDER BY created_at DESC LIMIT ?`, quoteIdent(s.table))
	rows, err := s.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *SQLiteLog) ExecScript(ctx context.Context, script string) error {
	return execScript(ctx, s.db, script)
}
