// Package cache batches pending row inserts per backing table so the
// ingest pipeline issues a handful of multi-row INSERT IGNORE statements
// instead of one round trip per triple. It also handles the text-table
// interning pre-pass a row's columns may depend on.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"wdqsbe/internal/sqlvalue"
	"wdqsbe/internal/tabledef"
)

// textChunkSize bounds how many interned-text placeholders land in a
// single statement, keeping well clear of the backend's max packet
// size. defaultRowChunkSize is the fallback for rowChunkSize (rows per
// multi-row INSERT) when a caller passes 0, matching insert_chunk_size's
// documented default.
const (
	textChunkSize       = 100
	defaultRowChunkSize = 100
)

// Execer is the minimal driver surface a flush needs. Concrete
// implementations (a live MySQL connection, or the stdout bulk-load
// renderer) live in package backend.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) error
}

// Table accumulates pending rows for one backing table. Safe for
// concurrent use: Add and ForceFlush may be called from different
// ingest workers writing the same shape.
type Table struct {
	def            tabledef.TableDef
	flushThreshold int
	rowChunkSize   int

	mu        sync.Mutex
	rows      [][]sqlvalue.Value
	numValues int
}

// NewTable builds a Table for def. flushThreshold is the row count at
// which AddAndMaybeFlush triggers ForceFlush automatically; a caller that
// wants manual control only can pass 0 and call ForceFlush itself.
// rowChunkSize bounds how many rows land in a single multi-row INSERT
// during a flush (insert_chunk_size); 0 applies defaultRowChunkSize.
func NewTable(def tabledef.TableDef, flushThreshold, rowChunkSize int) *Table {
	if rowChunkSize <= 0 {
		rowChunkSize = defaultRowChunkSize
	}
	return &Table{def: def, flushThreshold: flushThreshold, rowChunkSize: rowChunkSize}
}

// Add appends one row of already-encoded column values. Every row added
// to a given Table must carry the same width: a mismatch is a
// programmer error in the caller's column derivation, not a recoverable
// condition, so it is returned rather than silently truncated.
func (t *Table) Add(values []sqlvalue.Value) error {
	if len(values) == 0 {
		return fmt.Errorf("cache: table %s: add called with no values", t.def.Name)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.numValues == 0 {
		t.numValues = len(values)
	}
	if t.numValues != len(values) {
		return fmt.Errorf("cache: table %s: expected %d values, got %d", t.def.Name, t.numValues, len(values))
	}
	t.rows = append(t.rows, values)
	return nil
}

// PendingRows reports how many rows are currently buffered.
func (t *Table) PendingRows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// AddAndMaybeFlush adds values and, if the buffer has reached
// flushThreshold, forces a flush before returning.
func (t *Table) AddAndMaybeFlush(ctx context.Context, exec Execer, values []sqlvalue.Value) error {
	if err := t.Add(values); err != nil {
		return err
	}
	if t.flushThreshold > 0 && t.PendingRows() >= t.flushThreshold {
		return t.ForceFlush(ctx, exec)
	}
	return nil
}

func (t *Table) insertCommand() string {
	keyCols, valueCols := t.def.ColumnNames()
	cols := append(append([]string{}, keyCols...), valueCols...)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
	}
	return fmt.Sprintf("INSERT IGNORE INTO `%s` (%s) VALUES ", t.def.Name, join(quoted, ","))
}

// ForceFlush interns any pending text values, then writes every buffered
// row in chunks of rowChunkSize, clearing the buffer on success. A
// partially-failed flush leaves already-exec'd chunks committed and
// returns the first error; the caller decides whether to retry the
// (now-smaller) remaining buffer.
func (t *Table) ForceFlush(ctx context.Context, exec Execer) error {
	t.mu.Lock()
	rows := t.rows
	t.rows = nil
	t.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}

	if err := internText(ctx, exec, rows); err != nil {
		t.mu.Lock()
		t.rows = append(rows, t.rows...)
		t.mu.Unlock()
		return fmt.Errorf("cache: table %s: interning text: %w", t.def.Name, err)
	}

	command := t.insertCommand()
	for len(rows) > 0 {
		n := t.rowChunkSize
		if n > len(rows) {
			n = len(rows)
		}
		chunk := rows[:n]
		rows = rows[n:]

		placeholders := make([]string, len(chunk))
		var args []any
		for i, parts := range chunk {
			cells := make([]string, len(parts))
			for j, v := range parts {
				cells[j] = v.Placeholder()
				if p, ok := v.BindParam(); ok {
					args = append(args, p)
				}
			}
			placeholders[i] = "(" + join(cells, ",") + ")"
		}
		sql := command + join(placeholders, ",")
		if err := exec.ExecContext(ctx, sql, args...); err != nil {
			t.mu.Lock()
			t.rows = append(chunk, append(rows, t.rows...)...)
			t.mu.Unlock()
			return fmt.Errorf("cache: table %s: flushing %d rows: %w", t.def.Name, len(chunk), err)
		}
	}
	return nil
}

// internText pre-inserts every distinct interned-text value referenced by
// rows into the texts side table, deduplicated and chunked, before the
// rows themselves are written; a row's "(SELECT id FROM texts WHERE
// value=?)" subquery would otherwise match nothing on first sight of a
// new string.
func internText(ctx context.Context, exec Execer, rows [][]sqlvalue.Value) error {
	seen := make(map[string]struct{})
	var texts []string
	for _, row := range rows {
		for _, v := range row {
			if !v.IsInternedText() {
				continue
			}
			s := v.TextValue()
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return nil
	}
	sort.Strings(texts)

	for len(texts) > 0 {
		n := textChunkSize
		if n > len(texts) {
			n = len(texts)
		}
		chunk := texts[:n]
		texts = texts[n:]

		placeholders := make([]string, len(chunk))
		args := make([]any, len(chunk))
		for i, s := range chunk {
			placeholders[i] = "(?)"
			args[i] = s
		}
		sql := "INSERT IGNORE INTO `texts` (`value`) VALUES " + join(placeholders, ",")
		if err := exec.ExecContext(ctx, sql, args...); err != nil {
			return err
		}
	}
	return nil
}

func join(parts []string, sep string) string {
	var b []byte
	for i, p := range parts {
		if i > 0 {
			b = append(b, sep...)
		}
		b = append(b, p...)
	}
	return string(b)
}

// Cache multiplexes one Table per backing table name, so ingest workers
// writing distinct shapes never contend on the same buffer.
type Cache struct {
	exec           Execer
	flushThreshold int
	rowChunkSize   int

	mu     sync.RWMutex
	tables map[string]*Table
}

// New builds an empty Cache. flushThreshold and rowChunkSize are passed
// through to every Table it creates (insert_batch_size and
// insert_chunk_size respectively).
func New(exec Execer, flushThreshold, rowChunkSize int) *Cache {
	return &Cache{exec: exec, flushThreshold: flushThreshold, rowChunkSize: rowChunkSize, tables: make(map[string]*Table)}
}

// Add buffers one row for def's table, auto-flushing once that table's
// buffer reaches the configured threshold.
func (c *Cache) Add(ctx context.Context, def tabledef.TableDef, values []sqlvalue.Value) error {
	return c.tableFor(def).AddAndMaybeFlush(ctx, c.exec, values)
}

func (c *Cache) tableFor(def tabledef.TableDef) *Table {
	c.mu.RLock()
	t, ok := c.tables[def.Name]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[def.Name]; ok {
		return t
	}
	t = NewTable(def, c.flushThreshold, c.rowChunkSize)
	c.tables[def.Name] = t
	return t
}

// FlushAll force-flushes every table with pending rows. Tables flush
// concurrently; the first error encountered is returned once every
// flush has finished, following errgroup's first-error semantics rather
// than aborting sibling flushes on the first failure.
func (c *Cache) FlushAll(ctx context.Context) error {
	c.mu.RLock()
	tables := make([]*Table, 0, len(c.tables))
	for _, t := range c.tables {
		tables = append(tables, t)
	}
	c.mu.RUnlock()

	var g errgroup.Group
	for _, t := range tables {
		t := t
		g.Go(func() error { return t.ForceFlush(ctx, c.exec) })
	}
	return g.Wait()
}
