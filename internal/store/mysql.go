package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// MySQLLog keeps the applied-change log in MySQL.
type MySQLLog struct {
	db    *sql.DB
	table string
}

func (m *MySQLLog) Provider() string { return "mysql" }

func (m *MySQLLog) Close() error { return m.db.Close() }

func (m *MySQLLog) Ping(ctx context.Context) error { return m.db.PingContext(ctx) }

func (m *MySQLLog) EnsureSchema(ctx context.Context) error {
	tableName := quoteIdentMySQL(m.table)
	stmt := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id varchar(40) NOT NULL PRIMARY KEY,
	name varchar(255) NOT NULL,
	checksum varchar(64) NOT NULL,
	created_at timestamp(6) NOT NULL,
	INDEX dbmigrate_log_name_idx (name, created_at)
) ENGINE=InnoDB;
`, tableName)
	return execScript(ctx, m.db, stmt)
}

func (m *MySQLLog) LatestChecksum(ctx context.Context, name string) (string, bool, error) {
	stmt := fmt.Sprintf(`SELECT checksum FROM %s WHERE name = ? ORDER BY created_at DESC LIMIT 1`, quoteIdentMySQL(m.table))
	var checksum string
	err := m.db.QueryRowContext(ctx, stmt, name).Scan(&checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return checksum, true, nil
}

func (m *MySQLLog) Append(ctx context.Context, entry Entry) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (id, name, checksum, created_at) VALUES (?, ?, ?, ?)`, quoteIdentMySQL(m.table))
	_, err := m.db.ExecContext(ctx, stmt, entry.ID, entry.Name, entry.Checksum, entry.CreatedAt)
	return err
}

func (m *MySQLLog) Recent(ctx context.Context, limit int) ([]Entry, error) {
	stmt := fmt.Sprintf(`SELECT id, name, checksum, created_at FROM %s ORDER BY created_at DESC LIMIT ?`, quoteIdentMySQL(m.table))
	rows, err := m.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (m *MySQLLog) ExecScript(ctx context.Context, script string) error {
	return execScript(ctx, m.db, script)
}

func quoteIdentMySQL(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
