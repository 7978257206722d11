// Package stdoutbackend renders every provisioning and insert statement
// as plain SQL text instead of executing it, for bulk-loading into a
// server the ingest process never itself connects to. It keeps no
// persisted schema between runs and cannot answer a query; both are
// documented limitations rather than partial implementations.
package stdoutbackend

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"wdqsbe/internal/backend"
	"wdqsbe/internal/tabledef"
)

// Manifest is the optional .toml header a dump file may be preceded by,
// naming the database the emitted statements target. Write writes it as
// a leading comment block if non-nil.
type Manifest struct {
	Database string `toml:"database"`
	Engine   string `toml:"engine"`
}

// LoadManifest reads and decodes a manifest file at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("stdoutbackend: decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

// Backend writes every statement it's asked to run to out, with driver
// bind parameters inlined as literal SQL text since there is no real
// connection to bind them against.
type Backend struct {
	out *bufio.Writer
}

// New wraps out (os.Stdout if nil). If manifest is non-nil its fields
// are emitted as a leading SQL comment block before anything else.
func New(out io.Writer, manifest *Manifest) *Backend {
	if out == nil {
		out = os.Stdout
	}
	b := &Backend{out: bufio.NewWriter(out)}
	if manifest != nil {
		fmt.Fprintf(b.out, "-- database: %s\n-- engine: %s\n", manifest.Database, manifest.Engine)
	}
	return b
}

// Flush drains any buffered output. Callers should call this once after
// the run completes.
func (b *Backend) Flush() error { return b.out.Flush() }

// InitSchema writes the texts and table_list side-table CREATE
// statements as a preamble, before anything else is emitted. Without
// this, every interned-text INSERT IGNORE INTO texts the dump later
// emits would reference a table the dump never creates, and the
// persisted-state contract's table_list would never appear in the
// stream either.
func (b *Backend) InitSchema(ctx context.Context) error {
	_, err := fmt.Fprintf(b.out, "%s;\n%s;\n", backend.TextsDDL, backend.TableListDDL)
	return err
}

// ProvisionTable writes def's CREATE TABLE statement, satisfying
// registry.Backend. Table collisions are never detected across runs
// since nothing is persisted; InitFromPersistence against this backend
// always rehydrates an empty registry, the documented cost of a
// connectionless backend.
func (b *Backend) ProvisionTable(ctx context.Context, def tabledef.TableDef) error {
	_, err := fmt.Fprintf(b.out, "%s;\n", def.CreateStatement(nil))
	return err
}

// LoadTableDefs always returns an empty set: stdout output carries no
// state a later run could read back.
func (b *Backend) LoadTableDefs(ctx context.Context) ([]tabledef.TableDef, error) {
	return nil, nil
}

// ExecContext renders query with args substituted in for its "?"
// placeholders as literal SQL, satisfying cache.Execer.
func (b *Backend) ExecContext(ctx context.Context, query string, args ...any) error {
	rendered, err := inline(query, args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(b.out, "%s;\n", rendered)
	return err
}

// RunQuery is unsupported: a stream of SQL text has nothing to run
// queries against.
func (b *Backend) RunQuery(ctx context.Context, query string, binds []any) ([]map[string]sql.NullString, error) {
	return nil, fmt.Errorf("stdoutbackend: run_query is unsupported")
}

// Connect reports that this backend never holds a live connection,
// mirroring the execution-backend contract's get_connection operation.
func (b *Backend) Connect(ctx context.Context) error {
	return fmt.Errorf("stdoutbackend: get_connection is unsupported")
}

// inline substitutes each "?" in query, in order, with its bound
// argument rendered as a literal: quoted and minimally escaped for
// strings, verbatim for anything else. query's placeholders are only
// ever produced by sqlvalue.Value.Placeholder(), which never emits a
// literal '?' outside of a true bind site, so a straight split is safe.
func inline(query string, args []any) (string, error) {
	parts := strings.Split(query, "?")
	if len(parts)-1 != len(args) {
		return "", fmt.Errorf("stdoutbackend: %d placeholders but %d args", len(parts)-1, len(args))
	}
	var b strings.Builder
	for i, part := range parts {
		b.WriteString(part)
		if i < len(args) {
			b.WriteString(literal(args[i]))
		}
	}
	return b.String(), nil
}

func literal(arg any) string {
	s, ok := arg.(string)
	if !ok {
		return fmt.Sprintf("%v", arg)
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
