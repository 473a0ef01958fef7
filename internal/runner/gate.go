package runner

import (
	"context"
	"fmt"
)

// shouldApplyMigration decides whether a migration must run. Migrations are
// one-shot historical steps: once a name has any log entry it never reruns.
// A differing checksum means an already-applied migration was edited; that
// is drift worth flagging, not a reason to rerun.
func (r *Runner) shouldApplyMigration(ctx context.Context, name, checksum string) (bool, error) {
	prior, ok, err := r.store.LatestChecksum(ctx, name)
	if err != nil {
		return false, fmt.Errorf("look up migration %s: %w", name, err)
	}
	if !ok {
		return true, nil
	}
	if prior != checksum {
		r.logger.Warn("applied migration has changed on disk",
			"name", name, "logged_checksum", prior, "file_checksum", checksum)
	}
	return false, nil
}

// shouldApplyScript decides whether a script must run. Scripts are
// re-creatable objects gated purely by content equality: never seen or
// changed content means apply, identical content means skip.
func (r *Runner) shouldApplyScript(ctx context.Context, name, checksum string) (bool, error) {
	prior, ok, err := r.store.LatestChecksum(ctx, name)
	if err != nil {
		return false, fmt.Errorf("look up script %s: %w", name, err)
	}
	if !ok {
		return true, nil
	}
	return prior != checksum, nil
}
