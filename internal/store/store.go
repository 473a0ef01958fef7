package store

import (
	"context"
	"errors"
	"time"
)

var ErrUnsupportedProvider = errors.New("unsupported database provider")

// Entry is one row of the applied-change log. The log is append-only;
// the current state of a name is its entry with the latest CreatedAt.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// Log is the durable applied-change record. It is shared across separate
// runs (for example concurrent deployments); this package provides no
// cross-run locking, integrators must serialize runs themselves.
type Log interface {
	Provider() string
	Close() error
	Ping(ctx context.Context) error

	// EnsureSchema idempotently creates the backing table.
	EnsureSchema(ctx context.Context) error
	// LatestChecksum returns the most recent checksum recorded for name,
	// or ok=false when the name has never been applied.
	LatestChecksum(ctx context.Context, name string) (checksum string, ok bool, err error)
	// Append durably inserts one log entry.
	Append(ctx context.Context, entry Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// ExecScript applies raw SQL against the target database inside a
	// single transaction.
	ExecScript(ctx context.Context, script string) error
}
