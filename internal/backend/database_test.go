package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbmigrate/internal/change"
	"dbmigrate/internal/store"
)

type scriptRecorder struct {
	executed []string
}

func (r *scriptRecorder) Provider() string { return "fake" }
func (r *scriptRecorder) Close() error { return nil }
func (r *scriptRecorder) Ping(ctx context.Context) error { return nil }

func (r *scriptRecorder) EnsureSchema(ctx context.Context) error { return nil }

func (r *scriptRecorder) LatestChecksum(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

func (r *scriptRecorder) Append(ctx context.Context, entry store.Entry) error { return nil }

func (r *scriptRecorder) Recent(ctx context.Context, limit int) ([]store.Entry, error) {
	return nil, nil
}

func (r *scriptRecorder) ExecScript(ctx context.Context, script string) error {
	r.executed = append(r.executed, script)
	return nil
}

func TestDatabase_ExecutesFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.sql")
	contents := "-- depends: base\ncreate view v as select 1;\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	rec := &scriptRecorder{}
	db := &Database{Log: rec}

	s := change.Script{Record: change.Record{Source: path, Name: "v"}}
	require.NoError(t, db.ApplyScript(context.Background(), s))

	m := change.Migration{Record: change.Record{Source: path, Name: "v"}}
	require.NoError(t, db.ApplyMigration(context.Background(), m))

	assert.Equal(t, []string{contents, contents}, rec.executed)
}

func TestDatabase_MissingFileFails(t *testing.T) {
	db := &Database{Log: &scriptRecorder{}}
	m := change.Migration{Record: change.Record{Source: filepath.Join(t.TempDir(), "gone.sql")}}
	assert.Error(t, db.ApplyMigration(context.Background(), m))
}
