package change

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestDiscoverMigrations_RecursiveAndNamed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "001_init.sql"), "create table a (id int);")
	writeFile(t, filepath.Join(dir, "sub", "002_more.sql"), "create table b (id int);")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a migration")

	migrations, err := DiscoverMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	names := []string{migrations[0].Name, migrations[1].Name}
	assert.ElementsMatch(t, []string{"001_init", "002_more"}, names)
	for _, m := range migrations {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Checksum)
		assert.FileExists(t, m.Source)
	}
}

func TestDiscoverMigrations_FreshIDsPerPass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "001_init.sql"), "create table a (id int);")

	first, err := DiscoverMigrations(dir)
	require.NoError(t, err)
	second, err := DiscoverMigrations(dir)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Checksum, second[0].Checksum)
}

func TestDiscoverScripts_ExtractsDirectives(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "report_view.sql"),
		"-- depends: users, orders\n-- sources: raw_events\ncreate view report_view as select 1;")

	scripts, err := DiscoverScripts(dir)
	require.NoError(t, err)
	require.Len(t, scripts, 1)

	s := scripts[0]
	assert.Equal(t, "report_view", s.Name)
	assert.Equal(t, []string{"users", "orders"}, s.DependsOn)
	assert.Equal(t, []string{"raw_events"}, s.Sources)
}

func TestDiscoverScripts_DuplicateNameRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "v.sql"), "select 1;")
	writeFile(t, filepath.Join(dir, "sub", "v.sql"), "select 2;")

	_, err := DiscoverScripts(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate change name "v"`)
}

func TestDiscoverMigrations_MissingRootFails(t *testing.T) {
	_, err := DiscoverMigrations(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
