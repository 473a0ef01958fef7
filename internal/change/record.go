package change

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Record identifies a single discovered change file. Records are built fresh
// on every run; the ID is never reused for the same file across runs.
type Record struct {
	ID       string
	Source   string
	Name     string
	Checksum string
}

// Migration is a one-shot change file, applied at most once per checksum.
type Migration struct {
	Record
}

// Script is a re-creatable SQL object (view, function), reapplied whenever
// its content changes. Dependencies are declared inside the file with
// "-- depends:" and "-- sources:" directive lines.
type Script struct {
	Record
	DependsOn []string
	Sources   []string
}

func NewMigration(source string, contents []byte) Migration {
	return Migration{Record: newRecord(source, contents)}
}

func NewScript(source string, contents []byte) Script {
	text := string(contents)
	return Script{
		Record:    newRecord(source, contents),
		DependsOn: ExtractDependsOn(text),
		Sources:   ExtractSources(text),
	}
}

func newRecord(source string, contents []byte) Record {
	return Record{
		ID:       uuid.NewString(),
		Source:   source,
		Name:     nameOf(source),
		Checksum: Checksum(contents),
	}
}

// nameOf derives the logical change name: the base filename without its
// extension. It is the join key against the applied-change log.
func nameOf(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
