package backend

import (
	"context"

	"dbmigrate/internal/change"
)

// Backend makes a change take effect against the target system. The
// orchestrator records the applied-change log entry separately, after the
// backend returns; a crash between the two causes a re-attempt on the next
// run, which is safe only for idempotently written migrations.
type Backend interface {
	ApplyMigration(ctx context.Context, m change.Migration) error
	ApplyScript(ctx context.Context, s change.Script) error
}
