package backend

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"dbmigrate/internal/change"
)

// Console prints each change file followed by the log insert it would
// produce, instead of executing anything. Used by the plan command.
type Console struct {
	Out   io.Writer
	Table string
	Now   func() time.Time
}

func (c *Console) ApplyMigration(ctx context.Context, m change.Migration) error {
	return c.render(m.Record)
}

func (c *Console) ApplyScript(ctx context.Context, s change.Script) error {
	return c.render(s.Record)
}

func (c *Console) render(rec change.Record) error {
	contents, err := os.ReadFile(rec.Source)
	if err != nil {
		return fmt.Errorf("read %s: %w", rec.Source, err)
	}

	table := c.Table
	if table == "" {
		table = "dbmigrate_log"
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	fmt.Fprintln(c.Out, string(contents))
	fmt.Fprintf(c.Out, "insert into %s (id, name, checksum, created_at) values (%s, %s, %s, %s);\n",
		table,
		quoted(rec.ID),
		quoted(rec.Name),
		quoted(rec.Checksum),
		quoted(now().UTC().Format(time.RFC3339)),
	)
	return nil
}

func quoted(input string) string {
	return "'" + strings.ReplaceAll(input, "'", "''") + "'"
}
