package runner

import (
	"context"
	"fmt"
	"time"

	"dbmigrate/internal/backend"
	"dbmigrate/internal/change"
	"dbmigrate/internal/graph"
	"dbmigrate/internal/store"
)

// Logger is the reporting capability injected into a Runner; *slog.Logger
// satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Runner orchestrates one migration run: discover change files, decide what
// needs applying, order scripts by their declared dependencies, dispatch to
// the backend and record each application in the log.
type Runner struct {
	store   store.Log
	backend backend.Backend
	logger  Logger
	dryRun  bool
	now     func() time.Time
}

type Options struct {
	// DryRun skips the durable log append after each application. Used with
	// the console backend, which renders the insert instead.
	DryRun bool
	// Now overrides the log-entry timestamp source.
	Now func() time.Time
}

func New(log store.Log, be backend.Backend, logger Logger, opts Options) *Runner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		store:   log,
		backend: be,
		logger:  logger,
		dryRun:  opts.DryRun,
		now:     now,
	}
}

// Run applies all pending migrations, then all pending scripts in dependency
// order. Any failure aborts the run; nothing is retried.
func (r *Runner) Run(ctx context.Context, migrationsDir, scriptsDir string) error {
	if err := r.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure log schema: %w", err)
	}

	migrations, err := change.DiscoverMigrations(migrationsDir)
	if err != nil {
		return fmt.Errorf("discover migrations: %w", err)
	}
	pending, err := r.pendingMigrations(ctx, migrations)
	if err != nil {
		return err
	}

	scripts, err := change.DiscoverScripts(scriptsDir)
	if err != nil {
		return fmt.Errorf("discover scripts: %w", err)
	}
	pendingScripts, err := r.pendingScripts(ctx, scripts)
	if err != nil {
		return err
	}

	// The graph covers every discovered script, not just the pending ones:
	// an unchanged script is still a legitimate prerequisite for its
	// dependents.
	order, err := graph.Sort(graph.Build(scripts))
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := r.backend.ApplyMigration(ctx, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
		if err := r.record(ctx, m.Record); err != nil {
			return fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		r.logger.Info("migration applied", "name", m.Name, "checksum", m.Checksum)
	}

	discovered := make(map[string]struct{}, len(scripts))
	for _, s := range scripts {
		discovered[s.Name] = struct{}{}
	}

	for _, name := range order {
		s, ok := pendingScripts[name]
		if !ok {
			if _, known := discovered[name]; known {
				r.logger.Info("script unchanged, skipped", "name", name)
				continue
			}
			r.logger.Warn("no script file for graph node", "name", name)
			continue
		}
		if err := r.backend.ApplyScript(ctx, s); err != nil {
			return fmt.Errorf("apply script %s: %w", s.Name, err)
		}
		if err := r.record(ctx, s.Record); err != nil {
			return fmt.Errorf("record script %s: %w", s.Name, err)
		}
		r.logger.Info("script applied", "name", s.Name, "checksum", s.Checksum)
	}
	return nil
}

func (r *Runner) pendingMigrations(ctx context.Context, migrations []change.Migration) ([]change.Migration, error) {
	var pending []change.Migration
	for _, m := range migrations {
		apply, err := r.shouldApplyMigration(ctx, m.Name, m.Checksum)
		if err != nil {
			return nil, err
		}
		if apply {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

func (r *Runner) pendingScripts(ctx context.Context, scripts []change.Script) (map[string]change.Script, error) {
	pending := make(map[string]change.Script)
	for _, s := range scripts {
		apply, err := r.shouldApplyScript(ctx, s.Name, s.Checksum)
		if err != nil {
			return nil, err
		}
		if apply {
			pending[s.Name] = s
		}
	}
	return pending, nil
}

func (r *Runner) record(ctx context.Context, rec change.Record) error {
	if r.dryRun {
		return nil
	}
	return r.store.Append(ctx, store.Entry{
		ID:        rec.ID,
		Name:      rec.Name,
		Checksum:  rec.Checksum,
		CreatedAt: r.now().UTC(),
	})
}
