package stmtsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSeparatesStatementsOnSemicolons(t *testing.T) {
	s := New()
	stmts := s.Split("CREATE TABLE a (id INT); INSERT INTO a (id) VALUES (1);")
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE")
	assert.Contains(t, stmts[1], "INSERT INTO")
}

func TestSplitKeepsSemicolonInsideStringLiteralIntact(t *testing.T) {
	s := New()
	stmts := s.Split(`INSERT INTO texts (value) VALUES ('a;b'); SELECT 1;`)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "a;b")
}

func TestClassifyDropTableIsDestructiveAndUnsafe(t *testing.T) {
	s := New()
	got := s.Classify("DROP TABLE data__PropertyDirect_P31__EntityItem__EntityItem;")
	require.Len(t, got, 1)
	assert.True(t, got[0].Destructive)
	assert.False(t, got[0].TransactionSafe)
	assert.Equal(t, "DROP TABLE", got[0].Type)
}

func TestClassifyCreateTableIsNonTransactionalButNotDestructive(t *testing.T) {
	s := New()
	got := s.Classify("CREATE TABLE t (id INT PRIMARY KEY);")
	require.Len(t, got, 1)
	assert.False(t, got[0].Destructive)
	assert.False(t, got[0].TransactionSafe)
	assert.Equal(t, "CREATE TABLE", got[0].Type)
}

func TestClassifyInsertIsTransactionSafe(t *testing.T) {
	s := New()
	got := s.Classify("INSERT IGNORE INTO t (id) VALUES (1);")
	require.Len(t, got, 1)
	assert.False(t, got[0].Destructive)
	assert.True(t, got[0].TransactionSafe)
	assert.Equal(t, "INSERT", got[0].Type)
}

func TestClassifyTruncateIsDestructive(t *testing.T) {
	s := New()
	got := s.Classify("TRUNCATE TABLE t;")
	require.Len(t, got, 1)
	assert.True(t, got[0].Destructive)
	assert.False(t, got[0].TransactionSafe)
}
