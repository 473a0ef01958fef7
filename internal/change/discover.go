package change

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverMigrations walks root recursively and builds a Migration record
// for every .sql file. Duplicate logical names are a configuration error:
// the name is the join key against the applied-change log, so a second file
// with the same stem would silently shadow the first.
func DiscoverMigrations(root string) ([]Migration, error) {
	var migrations []Migration
	err := walkSQL(root, func(path string, contents []byte) error {
		migrations = append(migrations, NewMigration(path, contents))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkUniqueNames(migrationNames(migrations)); err != nil {
		return nil, err
	}
	return migrations, nil
}

// DiscoverScripts walks root recursively and builds a Script record,
// including directive extraction, for every .sql file.
func DiscoverScripts(root string) ([]Script, error) {
	var scripts []Script
	err := walkSQL(root, func(path string, contents []byte) error {
		scripts = append(scripts, NewScript(path, contents))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkUniqueNames(scriptNames(scripts)); err != nil {
		return nil, err
	}
	return scripts, nil
}

func walkSQL(root string, fn func(path string, contents []byte) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".sql") {
			return nil
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return fn(path, contents)
	})
}

func checkUniqueNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate change name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func migrationNames(migrations []Migration) []string {
	names := make([]string, len(migrations))
	for i, m := range migrations {
		names[i] = m.Name
	}
	return names
}

func scriptNames(scripts []Script) []string {
	names := make([]string, len(scripts))
	for i, s := range scripts {
		names[i] = s.Name
	}
	return names
}
