package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdqsbe/internal/element"
	"wdqsbe/internal/sqlvalue"
	"wdqsbe/internal/tabledef"
)

type recordedExec struct {
	query string
	args  []any
}

type mockExecer struct {
	mu      sync.Mutex
	execs   []recordedExec
	failOn  func(query string) bool
}

func (m *mockExecer) ExecContext(ctx context.Context, query string, args ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil && m.failOn(query) {
		return fmt.Errorf("mock: forced failure")
	}
	m.execs = append(m.execs, recordedExec{query: query, args: args})
	return nil
}

func sampleDef() tabledef.TableDef {
	return tabledef.New(element.ParseEntityKey("Q42"), element.NewPropertyDirect("P31"), element.ParseEntityKey("Q5"))
}

func TestTableAddRejectsWidthMismatch(t *testing.T) {
	table := NewTable(sampleDef(), 0, 0)
	require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.Int(1)}))
	err := table.Add([]sqlvalue.Value{sqlvalue.Int(1), sqlvalue.Int(2)})
	assert.Error(t, err)
}

func TestTableAddRejectsEmptyRow(t *testing.T) {
	table := NewTable(sampleDef(), 0, 0)
	err := table.Add(nil)
	assert.Error(t, err)
}

func TestForceFlushWritesChunkedInsert(t *testing.T) {
	table := NewTable(sampleDef(), 0, 0)
	for i := 0; i < 3; i++ {
		require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.Int(int64(i)), sqlvalue.Int(int64(i + 100))}))
	}
	exec := &mockExecer{}
	require.NoError(t, table.ForceFlush(context.Background(), exec))

	require.Len(t, exec.execs, 1)
	assert.Contains(t, exec.execs[0].query, "INSERT IGNORE INTO `data__PropertyDirect_P31__EntityItem__EntityItem`")
	assert.Equal(t, 0, table.PendingRows())
}

func TestForceFlushSplitsRowsAcrossConfiguredChunkSize(t *testing.T) {
	table := NewTable(sampleDef(), 0, 2)
	for i := 0; i < 5; i++ {
		require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.Int(int64(i)), sqlvalue.Int(int64(i + 100))}))
	}
	exec := &mockExecer{}
	require.NoError(t, table.ForceFlush(context.Background(), exec))

	require.Len(t, exec.execs, 3, "5 rows at chunk size 2 must split into ceil(5/2) statements")
	assert.Equal(t, 0, table.PendingRows())
}

func TestNewTableDefaultsRowChunkSizeTo100(t *testing.T) {
	table := NewTable(sampleDef(), 0, 0)
	for i := 0; i < 150; i++ {
		require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.Int(int64(i)), sqlvalue.Int(int64(i + 1000))}))
	}
	exec := &mockExecer{}
	require.NoError(t, table.ForceFlush(context.Background(), exec))

	require.Len(t, exec.execs, 2, "150 rows at the default chunk size of 100 must split into 2 statements")
}

func TestForceFlushInternsTextBeforeRows(t *testing.T) {
	table := NewTable(sampleDef(), 0, 0)
	require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.InternedText("hello"), sqlvalue.Int(1)}))
	require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.InternedText("hello"), sqlvalue.Int(2)}))
	require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.InternedText("world"), sqlvalue.Int(3)}))

	exec := &mockExecer{}
	require.NoError(t, table.ForceFlush(context.Background(), exec))

	require.Len(t, exec.execs, 2)
	assert.Contains(t, exec.execs[0].query, "INSERT IGNORE INTO `texts`")
	assert.ElementsMatch(t, []any{"hello", "world"}, exec.execs[0].args, "duplicate interned text deduplicated")
	assert.Contains(t, exec.execs[1].query, "INSERT IGNORE INTO `data__")
}

func TestForceFlushRestoresBufferOnError(t *testing.T) {
	table := NewTable(sampleDef(), 0, 0)
	require.NoError(t, table.Add([]sqlvalue.Value{sqlvalue.Int(1), sqlvalue.Int(2)}))

	exec := &mockExecer{failOn: func(query string) bool { return true }}
	err := table.ForceFlush(context.Background(), exec)
	assert.Error(t, err)
	assert.Equal(t, 1, table.PendingRows(), "failed flush must not lose buffered rows")
}

func TestCacheAddAutoFlushesAtThreshold(t *testing.T) {
	exec := &mockExecer{}
	c := New(exec, 2, 0)
	def := sampleDef()

	require.NoError(t, c.Add(context.Background(), def, []sqlvalue.Value{sqlvalue.Int(1), sqlvalue.Int(2)}))
	assert.Empty(t, exec.execs, "below threshold, no flush yet")

	require.NoError(t, c.Add(context.Background(), def, []sqlvalue.Value{sqlvalue.Int(3), sqlvalue.Int(4)}))
	assert.Len(t, exec.execs, 1, "threshold reached, auto-flush fires")
}

func TestCacheFlushAllFlushesEveryTable(t *testing.T) {
	exec := &mockExecer{}
	c := New(exec, 0, 0)

	defA := sampleDef()
	defB := tabledef.New(element.ParseEntityKey("Q1"), element.NewPropertyDirect("P21"), element.ParseEntityKey("Q6581072"))

	require.NoError(t, c.Add(context.Background(), defA, []sqlvalue.Value{sqlvalue.Int(1), sqlvalue.Int(2)}))
	require.NoError(t, c.Add(context.Background(), defB, []sqlvalue.Value{sqlvalue.Int(1), sqlvalue.Int(2)}))

	require.NoError(t, c.FlushAll(context.Background()))
	assert.Len(t, exec.execs, 2)
}
