package backend

import (
	"context"
	"fmt"
	"os"

	"dbmigrate/internal/change"
	"dbmigrate/internal/store"
)

// Database executes change files against the same connection that holds the
// applied-change log.
type Database struct {
	Log store.Log
}

func (d *Database) ApplyMigration(ctx context.Context, m change.Migration) error {
	return d.exec(ctx, m.Record)
}

func (d *Database) ApplyScript(ctx context.Context, s change.Script) error {
	return d.exec(ctx, s.Record)
}

func (d *Database) exec(ctx context.Context, rec change.Record) error {
	contents, err := os.ReadFile(rec.Source)
	if err != nil {
		return fmt.Errorf("read %s: %w", rec.Source, err)
	}
	return d.Log.ExecScript(ctx, string(contents))
}
