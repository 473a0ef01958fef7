package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PostgresLog keeps the applied-change log in PostgreSQL.
type PostgresLog struct {
	db    *sql.DB
	table string
}

func (p *PostgresLog) Provider() string { return "postgres" }

func (p *PostgresLog) Close() error { return p.db.Close() }

func (p *PostgresLog) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func (p *PostgresLog) EnsureSchema(ctx context.Context) error {
	tableName := quoteIdent(p.table)
	indexName := quoteIdent(p.table + "_name_idx")
	stmt := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id varchar(40) NOT NULL PRIMARY KEY,
	name varchar(255) NOT NULL,
	checksum varchar(64) NOT NULL,
	created_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS %s ON %s(name, created_at);
`, tableName, indexName, tableName)
	return execScript(ctx, p.db, stmt)
}

func (p *PostgresLog) LatestChecksum(ctx context.Context, name string) (string, bool, error) {
	stmt := fmt.Sprintf(`SELECT checksum FROM %s WHERE name = $1 ORDER BY created_at DESC LIMIT 1`, quoteIdent(p.table))
	var checksum string
	err := p.db.QueryRowContext(ctx, stmt, name).Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return checksum, true, nil
}

func (p *PostgresLog) Append(ctx context.Context, entry Entry) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (id, name, checksum, created_at) VALUES ($1, $2, $3, $4)`, quoteIdent(p.table))
	_, err := p.db.ExecContext(ctx, stmt, entry.ID, entry.Name, entry.Checksum, entry.CreatedAt)
	return err
}

func (p *PostgresLog) Recent(ctx context.Context, limit int) ([]Entry, error) {
	stmt := fmt.Sprintf(`SELECT id, name, checksum, created_at FROM %s ORDER BY created_at DESC LIMIT $1`, quoteIdent(p.table))
	rows, err := p.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (p *PostgresLog) ExecScript(ctx context.Context, script string) error {
	return execScript(ctx, p.db, script)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Checksum, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
